// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// symbolRegex matches exchange tickers, including suffixed ones like BRK.B.
var symbolRegex = regexp.MustCompile(`^[A-Za-z0-9.\-]{1,12}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("symbol", validateSymbol)
		_ = v.RegisterValidation("decision", validateDecision)
	}
}

func validateSymbol(fl validator.FieldLevel) bool {
	return symbolRegex.MatchString(fl.Field().String())
}

func validateDecision(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "APPROVE", "REJECT":
		return true
	}
	return false
}
