package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"servify/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	hashes map[string]string
}

func (v *fakeVerifier) VerifyTokenHash(userID, tokenHash string) error {
	if v.hashes[userID] != tokenHash {
		return fmt.Errorf("token has been revoked")
	}
	return nil
}

func authRouter(verifier TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", JWTAuthMiddleware(verifier), func(c *gin.Context) {
		userID, _ := c.Get("userID")
		c.JSON(http.StatusOK, gin.H{"userID": userID})
	})
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware_AcceptsCurrentToken(t *testing.T) {
	token, err := utils.GenerateToken("user1", "customer", time.Hour)
	require.NoError(t, err)

	verifier := &fakeVerifier{hashes: map[string]string{"user1": utils.HashToken(token)}}
	w := doRequest(authRouter(verifier), "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user1")
}

func TestJWTAuthMiddleware_RejectsRevokedToken(t *testing.T) {
	token, err := utils.GenerateToken("user1", "customer", time.Hour)
	require.NoError(t, err)

	// A valid signature is not enough once the stored hash is gone.
	verifier := &fakeVerifier{hashes: map[string]string{}}
	w := doRequest(authRouter(verifier), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddleware_RejectsSupersededToken(t *testing.T) {
	oldToken, err := utils.GenerateToken("user1", "customer", time.Hour)
	require.NoError(t, err)
	newToken, err := utils.GenerateToken("user1", "customer", 2*time.Hour)
	require.NoError(t, err)

	verifier := &fakeVerifier{hashes: map[string]string{"user1": utils.HashToken(newToken)}}
	r := authRouter(verifier)

	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "Bearer "+oldToken).Code)
	assert.Equal(t, http.StatusOK, doRequest(r, "Bearer "+newToken).Code)
}

func TestJWTAuthMiddleware_RejectsMissingOrMalformedHeader(t *testing.T) {
	r := authRouter(&fakeVerifier{hashes: map[string]string{}})

	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "Bearer not-a-token").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "Basic abc").Code)
}
