package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tradesim/internal/handlers"
	"tradesim/internal/logger"
	"tradesim/internal/middleware"
	"tradesim/internal/models"
	"tradesim/internal/quote"
	"tradesim/internal/services"
	"tradesim/internal/testutil"
	"tradesim/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Position{},
		&models.ActionRequest{},
		&models.FundAccount{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	userService := services.NewUserService(db)
	portfolioService := services.NewPortfolioService(db)
	fundsService := services.NewFundsService(db)
	auditService := services.NewAuditService(db)
	requestService := services.NewRequestService(db, portfolioService, fundsService, userService, auditService)
	quoteService := quote.NewService(quote.NewMockProvider(), nil, time.Second)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService, fundsService)
	requestHandler := handlers.NewRequestHandler(requestService)
	quoteHandler := handlers.NewQuoteHandler(quoteService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())
	router.NoRoute(handlers.NotFound)

	auth := router.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)

	authed := auth.Group("/")
	authed.Use(middleware.RequireAuth())
	authed.GET("/me", authHandler.Me)
	authed.GET("/portfolio", portfolioHandler.GetPortfolio)

	adminPortfolio := authed.Group("/portfolio")
	adminPortfolio.Use(middleware.RequireRole(models.RoleAdmin))
	adminPortfolio.GET("/:id/buy", portfolioHandler.Buy)
	adminPortfolio.GET("/:id/sell", portfolioHandler.Sell)

	quotes := router.Group("/quote")
	quotes.GET("/ticker/:symbol", quoteHandler.Ticker)
	quotes.GET("/history/:symbol", quoteHandler.History)

	requests := router.Group("/request")
	requests.Use(middleware.RequireAuth())
	requests.POST("/add", requestHandler.Submit)
	requests.GET("/mine", requestHandler.Mine)

	adminRequests := requests.Group("", middleware.RequireRole(models.RoleAdmin))
	adminRequests.GET("", requestHandler.List)
	adminRequests.GET("/:id", requestHandler.GetByID)
	adminRequests.POST("/accept/:id", requestHandler.Resolve)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// sessionToken pulls the token cookie set on a response.
func sessionToken(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "token" && cookie.Value != "" {
			return cookie.Value
		}
	}
	t.Fatalf("no session cookie on response: %s", rec.Body.String())
	return ""
}

// signupUser registers a new user and returns the signup session token.
func (app *testApp) signupUser(t *testing.T, email, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/auth/signup", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup failed: %d %s", rec.Code, rec.Body.String())
	}
	return sessionToken(t, rec)
}

// loginUser logs in and returns the session token.
func (app *testApp) loginUser(t *testing.T, email, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	return sessionToken(t, rec)
}

// loginAdmin creates an admin directly in the database and logs in as them.
func (app *testApp) loginAdmin(t *testing.T) (string, *models.User) {
	t.Helper()
	admin := testutil.CreateTestAdmin(t, app.DB)
	return app.loginUser(t, admin.Email, "password123"), admin
}
