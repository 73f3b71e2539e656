package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/modgate/modgate/internal/tokens"
)

const testSecret = "testsecret123456789012345678901234"

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", ModeratorAuth(testSecret), func(c *gin.Context) {
		claims, _ := c.Get("claims")
		c.JSON(http.StatusOK, gin.H{"claims": claims})
	})
	return r
}

func TestModeratorAuth_ValidToken(t *testing.T) {
	r := authRouter()
	tok, err := tokens.GenerateModeratorToken(testSecret, "mod-1", time.Minute)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestModeratorAuth_MissingHeader(t *testing.T) {
	r := authRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/protected", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestModeratorAuth_BadToken(t *testing.T) {
	r := authRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestModeratorAuth_WrongRole(t *testing.T) {
	claims := jwt.MapClaims{
		"sub":  "user-1",
		"role": "viewer",
		"exp":  time.Now().Add(time.Minute).Unix(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	r := authRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusForbidden, w.Code)
}
