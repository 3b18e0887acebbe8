package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizapi/models"
)

const testSecret = "test-secret"

func issueToken(t *testing.T, email string, roles []string) string {
	t.Helper()
	claims := &Claims{
		Email: email,
		Name:  "Test User",
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "auth0|123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func newTestRouter(role string, captured *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/", AuthMiddleware(testSecret))
	if role != "" {
		group.Use(RequireRole(role))
	}
	group.GET("/probe", func(c *gin.Context) {
		if user, ok := GetUser(c); ok && captured != nil {
			*captured = user
		}
		c.Status(http.StatusOK)
	})
	return router
}

func probe(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_AttachesClaims(t *testing.T) {
	var user models.User
	router := newTestRouter("", &user)

	token := issueToken(t, "user@example.com", []string{"user", "admin"})
	w := probe(router, "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user@example.com", user.Email)
	assert.Equal(t, "auth0|123", user.SubjectID)
	assert.Equal(t, []string{"user", "admin"}, user.Roles)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	router := newTestRouter("", nil)
	w := probe(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MalformedToken(t *testing.T) {
	router := newTestRouter("", nil)
	w := probe(router, "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_WrongSignature(t *testing.T) {
	claims := &Claims{Email: "user@example.com", Roles: []string{"user"}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	router := newTestRouter("", nil)
	w := probe(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	router := newTestRouter("admin", nil)

	adminToken := issueToken(t, "admin@example.com", []string{"admin"})
	assert.Equal(t, http.StatusOK, probe(router, "Bearer "+adminToken).Code)

	userToken := issueToken(t, "user@example.com", []string{"user"})
	assert.Equal(t, http.StatusForbidden, probe(router, "Bearer "+userToken).Code)
}
