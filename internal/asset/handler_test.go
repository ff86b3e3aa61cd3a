// AngelaMos | 2026
// handler_test.go

package asset

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/asset-portal/internal/core"
	"github.com/carterperez-dev/asset-portal/internal/middleware"
)

func asUser(identity core.Identity) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := middleware.WithClaims(r.Context(), &middleware.AccessTokenClaims{
				Identity:  identity,
				TokenID:   "test",
				ExpiresAt: time.Now().Add(time.Hour),
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newTestRouter(t *testing.T) (*chi.Mux, *memRepo) {
	t.Helper()

	repo := newMemRepo()
	h := NewHandler(NewService(repo, fixedClock(2024, time.July, 10)))

	r := chi.NewRouter()
	h.RegisterRoutes(r, asUser(admin))
	return r, repo
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *core.ErrorBody `json:"error"`
	Meta    *core.ListMeta  `json:"meta"`
}

func do(t *testing.T, h http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestHandlerCreateAndGet(t *testing.T) {
	r, _ := newTestRouter(t)

	rec, env := do(t, r, http.MethodPost, "/assets", createReq("E100", "2024-07-01", "Jane Doe", "Pune"))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)

	var created AssetResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "admin@example.com", created.EnteredBy)
	assert.Nil(t, created.UpdatedBy)
	assert.True(t, created.Active)

	rec, env = do(t, r, http.MethodGet, "/assets/E100", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"remove_date":null`)
}

func TestHandlerCreateDuplicate(t *testing.T) {
	r, _ := newTestRouter(t)

	rec, _ := do(t, r, http.MethodPost, "/assets", createReq("E100", "2024-07-01", "Jane Doe", "Pune"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := do(t, r, http.MethodPost, "/assets", createReq("E100", "2024-07-01", "Jane Doe", "Pune"))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "DUPLICATE", env.Error.Code)
}

func TestHandlerCreateInvalid(t *testing.T) {
	r, repo := newTestRouter(t)

	req := createReq("E100", "2024-13-01", "Jane Doe", "Pune")
	rec, env := do(t, r, http.MethodPost, "/assets", req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Zero(t, repo.writes)

	rec, _ = do(t, r, http.MethodPost, "/assets", "not an object")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerUpdateAndRemove(t *testing.T) {
	r, _ := newTestRouter(t)

	rec, _ := do(t, r, http.MethodPost, "/assets", createReq("E100", "2024-07-01", "Jane Doe", "Pune"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := do(t, r, http.MethodPut, "/assets/E100", UpdateAssetRequest{Fields: validFields("Jane Doe", "Goa")})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated AssetResponse
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	require.NotNil(t, updated.UpdatedBy)
	assert.Equal(t, "admin@example.com", *updated.UpdatedBy)
	assert.Equal(t, "2024-07-10", updated.UpdateDate.String())

	rec, env = do(t, r, http.MethodDelete, "/assets/E100", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var removed AssetResponse
	require.NoError(t, json.Unmarshal(env.Data, &removed))
	assert.False(t, removed.Active)

	rec, env = do(t, r, http.MethodGet, "/assets", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, env.Meta.Total)
}

func TestHandlerUnknownAsset(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, tc := range []struct{ method string }{
		{http.MethodGet}, {http.MethodDelete},
	} {
		rec, env := do(t, r, tc.method, "/assets/E404", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, tc.method)
		assert.Equal(t, "asset not found", env.Error.Message)
	}

	rec, _ := do(t, r, http.MethodPut, "/assets/E404", UpdateAssetRequest{Fields: validFields("X", "Y")})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerListSearch(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, req := range []CreateAssetRequest{
		createReq("E1", "2024-07-01", "Jane Doe", "Pune"),
		createReq("E2", "2024-07-01", "Ravi Kumar", "Delhi"),
	} {
		rec, _ := do(t, r, http.MethodPost, "/assets", req)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec, env := do(t, r, http.MethodGet, "/assets", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, env.Meta.Total)

	rec, env = do(t, r, http.MethodGet, "/assets?location=del", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, env.Meta.Total)

	var list []AssetResponse
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, "E2", list[0].EmployeeID)
}
