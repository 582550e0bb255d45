package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postboard-backend/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(m *jwt.Manager, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware(m)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		id, ok := UserIDFromContext(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.String(http.StatusOK, id.String()+"|"+c.GetString(ContextUsername))
	})
	r.GET("/private", handlers...)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	m := jwt.NewManager("secret", time.Hour)
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID.String(), "leo", "user")
	require.NoError(t, err)

	badSubject, err := m.GenerateAccessToken("not-a-uuid", "leo", "user")
	require.NoError(t, err)

	tests := []struct {
		name     string
		header   string
		wantCode int
		wantBody string
	}{
		{name: "missing header", header: "", wantCode: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + token, wantCode: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer abc.def.ghi", wantCode: http.StatusUnauthorized},
		{name: "non-uuid subject", header: "Bearer " + badSubject, wantCode: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer " + token, wantCode: http.StatusOK, wantBody: userID.String() + "|leo"},
		{name: "lowercase scheme", header: "bearer " + token, wantCode: http.StatusOK, wantBody: userID.String() + "|leo"},
	}

	router := newAuthRouter(m)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestAdminMiddleware(t *testing.T) {
	m := jwt.NewManager("secret", time.Hour)
	router := newAuthRouter(m, AdminMiddleware())

	userToken, err := m.GenerateAccessToken(uuid.NewString(), "leo", "user")
	require.NoError(t, err)
	adminToken, err := m.GenerateAccessToken(uuid.NewString(), "root", RoleAdmin)
	require.NoError(t, err)

	for token, want := range map[string]int{
		userToken:  http.StatusForbidden,
		adminToken: http.StatusOK,
	} {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code)
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextRequestID))
	})

	t.Run("keeps client id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", w.Body.String())
		assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
	})

	t.Run("generates when missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		_, err := uuid.Parse(w.Body.String())
		assert.NoError(t, err)
	})
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Recovery())
	r.GET("/panic", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "SYS_001")
}
