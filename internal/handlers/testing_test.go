package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tradesim/internal/middleware"
	"tradesim/internal/models"
	"tradesim/internal/services"
	"tradesim/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

// injectIdentity stands in for RequireAuth in handler tests.
func injectIdentity(userID uint, email string, role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextEmail, email)
		c.Set(middleware.ContextRole, role)
		c.Next()
	}
}

func performJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response body %q: %v", recorder.Body.String(), err)
	}
	return body
}

func assertErrorCode(t *testing.T, recorder *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if recorder.Code != status {
		t.Errorf("expected status %d, got %d: %s", status, recorder.Code, recorder.Body.String())
	}
	body := decodeBody(t, recorder)
	errObj, ok := body["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected an error object, got %s", recorder.Body.String())
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %s, got %v", code, errObj["code"])
	}
}

// mockUserService implements services.UserServicer with overridable funcs.
type mockUserService struct {
	createUserFn     func(email, password string, role models.Role) (*models.User, error)
	getUserByEmailFn func(email string) (*models.User, error)
	getUserByIDFn    func(id uint) (*models.User, error)
	verifyPasswordFn func(user *models.User, password string) bool
	resetPasswordFn  func(tx *gorm.DB, email, newPassword string) error
}

func (m *mockUserService) CreateUser(email, password string, role models.Role) (*models.User, error) {
	return m.createUserFn(email, password, role)
}

func (m *mockUserService) GetUserByEmail(email string) (*models.User, error) {
	return m.getUserByEmailFn(email)
}

func (m *mockUserService) GetUserByID(id uint) (*models.User, error) {
	return m.getUserByIDFn(id)
}

func (m *mockUserService) VerifyPassword(user *models.User, password string) bool {
	return m.verifyPasswordFn(user, password)
}

func (m *mockUserService) ResetPassword(tx *gorm.DB, email, newPassword string) error {
	return m.resetPasswordFn(tx, email, newPassword)
}

// mockPortfolioService implements services.PortfolioServicer with overridable funcs.
type mockPortfolioService struct {
	applyTradeFn   func(userID uint, symbol string, quantityDelta float64, price *float64) (*models.Position, error)
	getPositionsFn func(userID uint) ([]models.Position, error)
}

func (m *mockPortfolioService) ApplyTrade(userID uint, symbol string, quantityDelta float64, price *float64) (*models.Position, error) {
	return m.applyTradeFn(userID, symbol, quantityDelta, price)
}

func (m *mockPortfolioService) ApplyTradeTx(tx *gorm.DB, userID uint, symbol string, quantityDelta float64, price *float64) (*models.Position, error) {
	return m.applyTradeFn(userID, symbol, quantityDelta, price)
}

func (m *mockPortfolioService) GetPositions(userID uint) ([]models.Position, error) {
	return m.getPositionsFn(userID)
}

// mockFundsService implements services.FundsServicer with overridable funcs.
type mockFundsService struct {
	depositFn    func(tx *gorm.DB, userID uint, amount float64) (*models.FundAccount, error)
	withdrawFn   func(tx *gorm.DB, userID uint, amount float64) (*models.FundAccount, error)
	getBalanceFn func(userID uint) (float64, error)
}

func (m *mockFundsService) Deposit(tx *gorm.DB, userID uint, amount float64) (*models.FundAccount, error) {
	return m.depositFn(tx, userID, amount)
}

func (m *mockFundsService) Withdraw(tx *gorm.DB, userID uint, amount float64) (*models.FundAccount, error) {
	return m.withdrawFn(tx, userID, amount)
}

func (m *mockFundsService) GetBalance(userID uint) (float64, error) {
	return m.getBalanceFn(userID)
}

// mockRequestService implements services.RequestServicer with overridable funcs.
type mockRequestService struct {
	submitFn      func(userID uint, requestType models.RequestType, payload json.RawMessage) (*models.ActionRequest, error)
	listFn        func() ([]models.ActionRequest, error)
	getByIDFn     func(id uint) (*models.ActionRequest, error)
	getByUserIDFn func(userID uint) ([]models.ActionRequest, error)
	resolveFn     func(id, adminID uint, decision services.Decision, clientIP string) (*models.ActionRequest, error)
}

func (m *mockRequestService) Submit(userID uint, requestType models.RequestType, payload json.RawMessage) (*models.ActionRequest, error) {
	return m.submitFn(userID, requestType, payload)
}

func (m *mockRequestService) List() ([]models.ActionRequest, error) {
	return m.listFn()
}

func (m *mockRequestService) GetByID(id uint) (*models.ActionRequest, error) {
	return m.getByIDFn(id)
}

func (m *mockRequestService) GetByUserID(userID uint) ([]models.ActionRequest, error) {
	return m.getByUserIDFn(userID)
}

func (m *mockRequestService) Resolve(id, adminID uint, decision services.Decision, clientIP string) (*models.ActionRequest, error) {
	return m.resolveFn(id, adminID, decision, clientIP)
}

var _ services.UserServicer = (*mockUserService)(nil)
var _ services.PortfolioServicer = (*mockPortfolioService)(nil)
var _ services.FundsServicer = (*mockFundsService)(nil)
var _ services.RequestServicer = (*mockRequestService)(nil)
