package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/atriumlabs/atrium/backend/internal/auth"
	"github.com/atriumlabs/atrium/backend/internal/config"
	"github.com/atriumlabs/atrium/backend/internal/logger"
	"github.com/atriumlabs/atrium/backend/internal/response"
	"github.com/atriumlabs/atrium/backend/internal/user"
	"github.com/atriumlabs/atrium/backend/testhelper"
)

// envelope mirrors the API response wire format for assertions.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
	Detail  string          `json:"detail,omitempty"`
}

func setupTestRouter(t *testing.T) (*gin.Engine, *auth.Service, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	db := testhelper.SetupTestDB(t)

	log, err := logger.NewService(&logger.Config{Level: "error", Format: "console", Development: true})
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	appAuthConfig := &config.AuthConfig{}
	appAuthConfig.JWT.Secret = "test-secret-key"
	appAuthConfig.JWT.AccessTokenTTL = time.Hour
	appAuthConfig.JWT.RefreshTokenTTL = time.Hour * 24 * 7
	authConfig := auth.NewConfigFromAuthConfig(appAuthConfig)

	userRepo := user.NewRepository(db)
	jwtService := auth.NewJWTService(authConfig)
	tokenRepo := auth.NewRefreshTokenRepository(db, log)
	authService := auth.NewService(userRepo, tokenRepo, jwtService, testhelper.NewMemoryCache(), nil, log, authConfig)

	router := gin.New()
	responseHandler := response.NewHandler(log)
	authHandler := auth.NewHandler(authService, responseHandler)
	authHandler.RegisterRoutes(router)

	return router, authService, db
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload interface{}, bearer string) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	return env
}

func TestRegisterAPI(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	register := auth.RegisterRequest{
		Username: "testuser",
		Email:    "test@example.com",
		Password: "Passw0rd!",
		FullName: "Test User",
	}

	t.Run("Successful Registration", func(t *testing.T) {
		w := postJSON(t, router, "/api/v1/auth/register", register, "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}

		env := decode(t, w)
		if env.Code != http.StatusOK {
			t.Errorf("envelope code = %d", env.Code)
		}

		var created user.User
		if err := json.Unmarshal(env.Data, &created); err != nil {
			t.Fatalf("invalid user payload: %v", err)
		}
		if created.Username != "testuser" {
			t.Errorf("username = %q", created.Username)
		}
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		dup := register
		dup.Username = "otheruser"
		w := postJSON(t, router, "/api/v1/auth/register", dup, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("Weak Password", func(t *testing.T) {
		weak := register
		weak.Username = "weakuser"
		weak.Email = "weak@example.com"
		weak.Password = "password"
		w := postJSON(t, router, "/api/v1/auth/register", weak, "")
		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("status = %d, want 422", w.Code)
		}
	})
}

func TestLoginAPI(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	register := auth.RegisterRequest{
		Username: "loginuser",
		Email:    "login@example.com",
		Password: "Passw0rd!",
	}
	if w := postJSON(t, router, "/api/v1/auth/register", register, ""); w.Code != http.StatusOK {
		t.Fatalf("registration failed: %s", w.Body.String())
	}

	t.Run("Login With Email", func(t *testing.T) {
		w := postJSON(t, router, "/api/v1/auth/login", auth.LoginRequest{
			Identifier: "login@example.com",
			Password:   "Passw0rd!",
		}, "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}

		env := decode(t, w)
		var login auth.LoginResponse
		if err := json.Unmarshal(env.Data, &login); err != nil {
			t.Fatalf("invalid login payload: %v", err)
		}
		if login.AccessToken == "" || login.RefreshToken == "" {
			t.Error("expected both tokens in login response")
		}
		if login.TokenType != "bearer" {
			t.Errorf("tokenType = %q", login.TokenType)
		}
	})

	t.Run("Login With Username", func(t *testing.T) {
		w := postJSON(t, router, "/api/v1/auth/login", auth.LoginRequest{
			Identifier: "loginuser",
			Password:   "Passw0rd!",
		}, "")
		if w.Code != http.StatusOK {
			t.Errorf("status = %d", w.Code)
		}
	})

	t.Run("Wrong Password", func(t *testing.T) {
		w := postJSON(t, router, "/api/v1/auth/login", auth.LoginRequest{
			Identifier: "loginuser",
			Password:   "WrongPass1!",
		}, "")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
		env := decode(t, w)
		if env.Data != nil {
			t.Error("error envelope must not carry data")
		}
	})
}

func TestRefreshAndLogoutAPI(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	register := auth.RegisterRequest{
		Username: "sessionuser",
		Email:    "session@example.com",
		Password: "Passw0rd!",
	}
	if w := postJSON(t, router, "/api/v1/auth/register", register, ""); w.Code != http.StatusOK {
		t.Fatalf("registration failed: %s", w.Body.String())
	}

	w := postJSON(t, router, "/api/v1/auth/login", auth.LoginRequest{
		Identifier: "sessionuser",
		Password:   "Passw0rd!",
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %s", w.Body.String())
	}
	var login auth.LoginResponse
	if err := json.Unmarshal(decode(t, w).Data, &login); err != nil {
		t.Fatalf("invalid login payload: %v", err)
	}

	t.Run("Refresh Rotates Token", func(t *testing.T) {
		w := postJSON(t, router, "/api/v1/auth/refresh", auth.RefreshRequest{
			RefreshToken: login.RefreshToken,
		}, "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}

		var rotated auth.LoginResponse
		if err := json.Unmarshal(decode(t, w).Data, &rotated); err != nil {
			t.Fatalf("invalid refresh payload: %v", err)
		}

		// The presented refresh token is single-use.
		w = postJSON(t, router, "/api/v1/auth/refresh", auth.RefreshRequest{
			RefreshToken: login.RefreshToken,
		}, "")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("reused refresh token: status = %d, want 401", w.Code)
		}

		login = rotated
	})

	t.Run("Logout With Revoked Refresh Token Succeeds", func(t *testing.T) {
		second := postJSON(t, router, "/api/v1/auth/login", auth.LoginRequest{
			Identifier: "sessionuser",
			Password:   "Passw0rd!",
		}, "")
		if second.Code != http.StatusOK {
			t.Fatalf("second login failed: %s", second.Body.String())
		}
		var other auth.LoginResponse
		if err := json.Unmarshal(decode(t, second).Data, &other); err != nil {
			t.Fatalf("invalid login payload: %v", err)
		}

		w := postJSON(t, router, "/api/v1/auth/logout", auth.LogoutRequest{
			RefreshToken: other.RefreshToken,
		}, other.AccessToken)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}

		// Presenting the same, now revoked, refresh token from a live
		// session still succeeds: logout leaves the same state either way.
		third := postJSON(t, router, "/api/v1/auth/login", auth.LoginRequest{
			Identifier: "sessionuser",
			Password:   "Passw0rd!",
		}, "")
		if third.Code != http.StatusOK {
			t.Fatalf("third login failed: %s", third.Body.String())
		}
		var live auth.LoginResponse
		if err := json.Unmarshal(decode(t, third).Data, &live); err != nil {
			t.Fatalf("invalid login payload: %v", err)
		}

		w = postJSON(t, router, "/api/v1/auth/logout", auth.LogoutRequest{
			RefreshToken: other.RefreshToken,
		}, live.AccessToken)
		if w.Code != http.StatusOK {
			t.Errorf("logout with revoked refresh token: status = %d, want 200, body = %s", w.Code, w.Body.String())
		}
	})

	t.Run("Logout Revokes Session", func(t *testing.T) {
		w := postJSON(t, router, "/api/v1/auth/logout", auth.LogoutRequest{
			RefreshToken: login.RefreshToken,
		}, login.AccessToken)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}

		// The blacklisted access token no longer authenticates.
		w = postJSON(t, router, "/api/v1/auth/logout", auth.LogoutRequest{
			RefreshToken: login.RefreshToken,
		}, login.AccessToken)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("blacklisted token accepted: status = %d", w.Code)
		}
	})
}
