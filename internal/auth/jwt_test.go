// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/asset-portal/internal/core"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newTestJWTManager(t)
	identity := core.Identity{
		UserID:     42,
		Email:      "jane@example.com",
		Name:       "Jane Doe",
		EmployeeID: "E100",
		Role:       "user",
	}

	token, exp, err := m.CreateAccessToken(identity)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.VerifyAccessToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, identity, claims.Identity)
	assert.WithinDuration(t, exp, claims.ExpiresAt, time.Second)
}

func TestVerifyRejectsForeignKey(t *testing.T) {
	issuer := newTestJWTManager(t)
	verifier := newTestJWTManager(t)

	token, _, err := issuer.CreateAccessToken(core.Identity{UserID: 1, Email: "a@example.com"})
	require.NoError(t, err)

	_, err = verifier.VerifyAccessToken(context.Background(), token)
	require.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := newTestJWTManager(t)

	_, err := m.VerifyAccessToken(context.Background(), "not.a.token")
	require.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestJWKSHandler(t *testing.T) {
	m := newTestJWTManager(t)

	rec := httptest.NewRecorder()
	m.GetJWKSHandler()(rec, httptest.NewRequest(http.MethodGet, "/.well-known/jwks.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var set struct {
		Keys []map[string]any `json:"keys"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &set))
	require.Len(t, set.Keys, 1)
	assert.Equal(t, m.GetKeyID(), set.Keys[0]["kid"])
	assert.NotContains(t, set.Keys[0], "d")
}
