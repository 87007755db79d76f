package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	os.Setenv("GO_ENV", "test")
	utils.InitJWT()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newProtectedRouter() *gin.Engine {
	router := gin.New()
	router.Use(AuthMiddleware())
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	})
	return router
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(utils.JWTSecretKey))
	require.NoError(t, err)
	return signed
}

func TestAuthMiddleware(t *testing.T) {
	router := newProtectedRouter()

	validToken, err := services.GenerateToken("user-42")
	require.NoError(t, err)

	tests := []struct {
		name         string
		authHeader   string
		expectedCode int
	}{
		{
			name:         "Valid Token",
			authHeader:   "Bearer " + validToken,
			expectedCode: http.StatusOK,
		},
		{
			name:         "Missing Header",
			authHeader:   "",
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "Wrong Scheme",
			authHeader:   "Basic " + validToken,
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "Garbage Token",
			authHeader:   "Bearer not-a-token",
			expectedCode: http.StatusUnauthorized,
		},
		{
			name: "Refresh Token Rejected",
			authHeader: "Bearer " + func() string {
				token, err := services.GenerateRefreshToken("user-42")
				require.NoError(t, err)
				return token
			}(),
			expectedCode: http.StatusUnauthorized,
		},
		{
			name: "Expired Token",
			authHeader: "Bearer " + signToken(t, jwt.MapClaims{
				"user_id": "user-42",
				"iss":     "docdex",
				"exp":     time.Now().Add(-time.Hour).Unix(),
			}),
			expectedCode: http.StatusUnauthorized,
		},
		{
			name: "Wrong Issuer",
			authHeader: "Bearer " + signToken(t, jwt.MapClaims{
				"user_id": "user-42",
				"iss":     "someone-else",
				"exp":     time.Now().Add(time.Hour).Unix(),
			}),
			expectedCode: http.StatusUnauthorized,
		},
		{
			name: "Missing User ID",
			authHeader: "Bearer " + signToken(t, jwt.MapClaims{
				"iss": "docdex",
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
			expectedCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestAuthMiddlewareSetsUserID(t *testing.T) {
	router := newProtectedRouter()

	token, err := services.GenerateToken("user-99")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-99")
}
