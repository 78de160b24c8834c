package user_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/atriumlabs/atrium/backend/internal/config"
	"github.com/atriumlabs/atrium/backend/internal/response"
	"github.com/atriumlabs/atrium/backend/internal/user"
)

// fakeStorage records uploads and returns a deterministic URL.
type fakeStorage struct {
	uploads []string
}

func (f *fakeStorage) UploadStream(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	f.uploads = append(f.uploads, key)
	return "https://storage.example.com/" + key, nil
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
	Detail  string          `json:"detail,omitempty"`
}

type pagedUsers struct {
	Items []user.User       `json:"items"`
	Meta  response.PageMeta `json:"meta"`
}

// asUser is a stand-in for the auth middleware that stores a fixed user
// in the request context.
func asUser(u *user.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(user.ContextUserKey, u)
		c.Next()
	}
}

func allow() gin.HandlerFunc {
	return func(c *gin.Context) { c.Next() }
}

type nopHandlerLogger struct{}

func (nopHandlerLogger) LogWarn(message string, fields map[string]interface{}) {}
func (nopHandlerLogger) LogError(err error, msg string) error                  { return err }

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	return env
}

func TestGetMeAPI(t *testing.T) {
	service, repo, _, _ := setupUserService(t)
	current := createTestUser(t, repo, "meuser")

	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := user.NewHandler(service, &fakeStorage{}, config.PaginationConfig{DefaultSize: 20, MaxSize: 100}, response.NewHandler(nopHandlerLogger{}))
	handler.RegisterRoutes(router, asUser(current), allow())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/users/me", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var got user.User
	if err := json.Unmarshal(decodeEnvelope(t, w).Data, &got); err != nil {
		t.Fatalf("invalid user payload: %v", err)
	}
	if got.ID != current.ID {
		t.Errorf("id = %s, want %s", got.ID, current.ID)
	}
	if bytes.Contains(w.Body.Bytes(), []byte("password")) {
		t.Error("response body leaks the password field")
	}
}

func TestListUsersAPI(t *testing.T) {
	service, repo, _, _ := setupUserService(t)
	current := createTestUser(t, repo, "listadmin")
	for i := 0; i < 4; i++ {
		createTestUser(t, repo, fmt.Sprintf("member%d", i))
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := user.NewHandler(service, &fakeStorage{}, config.PaginationConfig{DefaultSize: 20, MaxSize: 100}, response.NewHandler(nopHandlerLogger{}))
	handler.RegisterRoutes(router, asUser(current), allow())

	t.Run("Paged Listing", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/users?page=1&size=2", nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}

		var paged pagedUsers
		if err := json.Unmarshal(decodeEnvelope(t, w).Data, &paged); err != nil {
			t.Fatalf("invalid page payload: %v", err)
		}
		if paged.Meta.Total != 5 {
			t.Errorf("total = %d, want 5", paged.Meta.Total)
		}
		if paged.Meta.Pages != 3 {
			t.Errorf("pages = %d, want 3", paged.Meta.Pages)
		}
		if !paged.Meta.HasNext {
			t.Error("expected has_next on first of three pages")
		}
		if paged.Meta.HasPrev {
			t.Error("expected no has_prev on first page")
		}
		if len(paged.Items) != 2 {
			t.Errorf("len(items) = %d, want 2", len(paged.Items))
		}
	})

	t.Run("Size Above Maximum", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/users?page=1&size=500", nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("status = %d, want 422", w.Code)
		}
	})

	t.Run("Zero Page", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/users?page=0&size=10", nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("status = %d, want 422", w.Code)
		}
	})
}

func TestGetUserByIDAPI(t *testing.T) {
	storage := &fakeStorage{}
	router, repo := setupUserRouterWithAdmin(t, storage)
	target := createTestUser(t, repo, "target")

	t.Run("Found", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/users/"+target.ID.String(), nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("status = %d, body = %s", w.Code, w.Body.String())
		}
	})

	t.Run("Malformed ID", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/users/not-a-uuid", nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("status = %d, want 422", w.Code)
		}
	})

	t.Run("Unknown ID", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/users/00000000-0000-0000-0000-000000000001", nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})
}

func setupUserRouterWithAdmin(t *testing.T, storage *fakeStorage) (*gin.Engine, *user.Repository) {
	service, repo, _, _ := setupUserService(t)
	current := createTestUser(t, repo, "adminuser")

	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := user.NewHandler(service, storage, config.PaginationConfig{DefaultSize: 20, MaxSize: 100}, response.NewHandler(nopHandlerLogger{}))
	handler.RegisterRoutes(router, asUser(current), allow())
	return router, repo
}

func TestUploadAvatarAPI(t *testing.T) {
	service, repo, _, _ := setupUserService(t)
	current := createTestUser(t, repo, "avatarapi")
	storage := &fakeStorage{}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := user.NewHandler(service, storage, config.PaginationConfig{DefaultSize: 20, MaxSize: 100}, response.NewHandler(nopHandlerLogger{}))
	handler.RegisterRoutes(router, asUser(current), allow())

	multipartRequest := func(t *testing.T, filename string) *http.Request {
		t.Helper()
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("failed to build form: %v", err)
		}
		if _, err := part.Write([]byte("fake image bytes")); err != nil {
			t.Fatalf("failed to write form: %v", err)
		}
		writer.Close()

		req, _ := http.NewRequest("POST", "/api/v1/users/me/avatar", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		return req
	}

	t.Run("Accepted Extension", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, multipartRequest(t, "photo.png"))

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}
		if len(storage.uploads) != 1 {
			t.Fatalf("uploads = %d, want 1", len(storage.uploads))
		}

		var updated user.User
		if err := json.Unmarshal(decodeEnvelope(t, w).Data, &updated); err != nil {
			t.Fatalf("invalid user payload: %v", err)
		}
		if updated.AvatarURL == "" {
			t.Error("expected avatar URL on profile")
		}
	})

	t.Run("Rejected Extension", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, multipartRequest(t, "script.svg"))

		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("status = %d, want 422", w.Code)
		}
	})
}
