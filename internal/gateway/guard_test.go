package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payetonkawa/internal/models"
	"payetonkawa/internal/session"
)

func newGuardedRouter(t *testing.T, store *session.Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	protected := r.Group("/", RequireSession(store))
	protected.GET("/dashboard", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"page": "dashboard"})
	})
	return r
}

func TestRequireSessionRedirectsAnonymousToEntry(t *testing.T) {
	storage := session.NewFileStorage(t.TempDir())
	store := session.NewStore(storage, nil)
	store.Hydrate()

	r := newGuardedRouter(t, store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestRequireSessionPassesAuthenticatedRequests(t *testing.T) {
	dir := t.TempDir()
	storage := session.NewFileStorage(dir)

	raw, err := json.Marshal(models.User{ID: "abc123", Nom: "Martin", Email: "martin@example.com", Type: models.TypeParticulier})
	require.NoError(t, err)
	require.NoError(t, storage.Save("t1", raw))

	store := session.NewStore(storage, nil)
	store.Hydrate()
	require.NotNil(t, store.User())

	r := newGuardedRouter(t, store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
