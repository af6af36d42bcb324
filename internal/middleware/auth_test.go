package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timeasy-io/timeasy/internal/modules/model"
	"github.com/timeasy-io/timeasy/internal/pkg/identity"
)

const testSecret = "test-secret"

func hmacToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func authRouter(v *TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", BearerAuth(v), func(c *gin.Context) {
		who, ok := CurrentIdentity(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, who)
	})
	return r
}

func TestBearerAuth_HMAC(t *testing.T) {
	v := NewTokenVerifier(testSecret, nil, "", "", identity.NewResolver(identity.DefaultAdminRole))
	r := authRouter(v)
	exp := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "keycloak style admin",
			header:     "Bearer " + hmacToken(t, testSecret, jwt.MapClaims{"sub": "u1", "exp": exp, "realm_access": map[string]interface{}{"roles": []string{"ADMIN"}}}),
			wantStatus: http.StatusOK,
			wantBody:   `{"user_id":"u1","is_admin":true}`,
		},
		{
			name:       "legacy user",
			header:     "Bearer " + hmacToken(t, testSecret, jwt.MapClaims{"user_id": "u2", "user_roles": "USER", "exp": exp}),
			wantStatus: http.StatusOK,
			wantBody:   `{"user_id":"u2","is_admin":false}`,
		},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{
			name:       "wrong secret",
			header:     "Bearer " + hmacToken(t, "other", jwt.MapClaims{"sub": "u1", "exp": exp}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired",
			header:     "Bearer " + hmacToken(t, testSecret, jwt.MapClaims{"sub": "u1", "exp": time.Now().Add(-time.Minute).Unix()}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "no subject",
			header:     "Bearer " + hmacToken(t, testSecret, jwt.MapClaims{"exp": exp}),
			wantStatus: http.StatusUnauthorized,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestTokenVerifier_JWKSAndClaimChecks(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	jwks := func(*jwt.Token) (interface{}, error) { return &key.PublicKey, nil }
	v := NewTokenVerifier("", jwks, "https://id.example/realms/timeasy", "timeasy-api", identity.NewResolver("ADMIN"))

	sign := func(claims jwt.MapClaims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}
	exp := time.Now().Add(time.Hour).Unix()

	who, err := v.Verify(sign(jwt.MapClaims{"sub": "u1", "exp": exp, "iss": "https://id.example/realms/timeasy", "aud": "timeasy-api"}))
	require.NoError(t, err)
	assert.Equal(t, model.Identity{UserID: "u1"}, who)

	_, err = v.Verify(sign(jwt.MapClaims{"sub": "u1", "exp": exp, "iss": "https://evil.example", "aud": "timeasy-api"}))
	assert.ErrorContains(t, err, "issuer")

	_, err = v.Verify(sign(jwt.MapClaims{"sub": "u1", "exp": exp, "iss": "https://id.example/realms/timeasy", "aud": "other"}))
	assert.ErrorContains(t, err, "audience")

	_, err = v.Verify(hmacToken(t, testSecret, jwt.MapClaims{"sub": "u1", "exp": exp}))
	assert.Error(t, err, "hmac tokens are refused without a shared secret")
}
