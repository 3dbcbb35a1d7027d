package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"tradesim/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a USER-role user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email, models.RoleUser)
}

// CreateTestAdmin creates an ADMIN-role user.
func CreateTestAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("admin%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email, models.RoleAdmin)
}

// CreateTestUserWithEmail creates a user with the given email and role.
// The password is always "password123".
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		Role:     role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestPosition creates a position row for the user.
func CreateTestPosition(t *testing.T, db *gorm.DB, userID uint, symbol string, quantity, averagePrice float64) *models.Position {
	t.Helper()

	position := &models.Position{
		UserID:       userID,
		Symbol:       symbol,
		Quantity:     quantity,
		AveragePrice: &averagePrice,
	}
	if err := db.Create(position).Error; err != nil {
		t.Fatalf("failed to create test position: %v", err)
	}
	return position
}

// CreateTestFundAccount creates a fund account with the given balance.
func CreateTestFundAccount(t *testing.T, db *gorm.DB, userID uint, balance float64) *models.FundAccount {
	t.Helper()

	account := &models.FundAccount{UserID: userID, Balance: balance}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test fund account: %v", err)
	}
	return account
}

// CreateTestRequest creates a PENDING action request with raw additional_info.
func CreateTestRequest(t *testing.T, db *gorm.DB, userID uint, requestType models.RequestType, additionalInfo string) *models.ActionRequest {
	t.Helper()

	request := &models.ActionRequest{
		UserID:         userID,
		RequestType:    requestType,
		Status:         models.RequestStatusPending,
		AdditionalInfo: additionalInfo,
	}
	if err := db.Create(request).Error; err != nil {
		t.Fatalf("failed to create test request: %v", err)
	}
	return request
}
