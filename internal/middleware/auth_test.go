package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/receivables_app/internal/core/domain"
	"github.com/SscSPs/receivables_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret-key-that-is-long-enough"
	testIssuer = "receivables-test"
)

func signToken(t *testing.T, claims middleware.CallerClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims(role string) middleware.CallerClaims {
	return middleware.CallerClaims{
		CompanyID: "company-1",
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.AuthMiddleware(testSecret, testIssuer))
	r.GET("/whoami", func(c *gin.Context) {
		caller, ok := middleware.GetCallerFromCtx(c.Request.Context())
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": caller.UserID, "company": caller.CompanyID, "role": caller.Role})
	})
	return r
}

func doWhoami(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	r := newAuthRouter()

	w := doWhoami(r, "Bearer "+signToken(t, validClaims(string(domain.RoleAccounting)), testSecret))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"user-1","company":"company-1","role":"accounting"}`, w.Body.String())
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	r := newAuthRouter()

	expired := validClaims(string(domain.RoleSalesRep))
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	wrongIssuer := validClaims(string(domain.RoleSalesRep))
	wrongIssuer.Issuer = "someone-else"

	noCompany := validClaims(string(domain.RoleSalesRep))
	noCompany.CompanyID = ""

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic abc"},
		{name: "garbage token", header: "Bearer not-a-jwt"},
		{name: "wrong secret", header: "Bearer " + signToken(t, validClaims("accounting"), "other-secret")},
		{name: "expired", header: "Bearer " + signToken(t, expired, testSecret)},
		{name: "wrong issuer", header: "Bearer " + signToken(t, wrongIssuer, testSecret)},
		{name: "unknown role", header: "Bearer " + signToken(t, validClaims("superuser"), testSecret)},
		{name: "missing company", header: "Bearer " + signToken(t, noCompany, testSecret)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doWhoami(r, tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestSignCallerToken_RoundTrip(t *testing.T) {
	r := newAuthRouter()
	caller := domain.Caller{UserID: "user-9", CompanyID: "company-3", Role: domain.RoleCompanyAdmin}

	token, err := middleware.SignCallerToken(caller, testSecret, testIssuer, time.Hour)
	require.NoError(t, err)

	w := doWhoami(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"user-9","company":"company-3","role":"company_admin"}`, w.Body.String())
}
