package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"labour-dashboard/internal/ctxkeys"
	"labour-dashboard/internal/models"
	"labour-dashboard/internal/store"
)

const testSecret = "test-secret"

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(store.NewMemoryBlobStore())
}

// authedRequest builds a request carrying the identity the auth middleware
// would have injected.
func authedRequest(method, target string, body interface{}, user models.UserAccount) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)

	ctx := context.WithValue(req.Context(), ctxkeys.UserID, user.ID)
	ctx = context.WithValue(ctx, ctxkeys.UserRole, string(user.Role))
	return req.WithContext(ctx)
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

// seededUser fetches one of the seed accounts by id.
func seededUser(t *testing.T, s *store.Store, id string) models.UserAccount {
	t.Helper()
	u, err := s.Get(id)
	require.NoError(t, err)
	return u
}

// storeFixture wraps a store for handler tests that need account lookups.
type storeFixture struct {
	s *store.Store
}

func (f *storeFixture) user(t *testing.T, id string) models.UserAccount {
	return seededUser(t, f.s, id)
}
