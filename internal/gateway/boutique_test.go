package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payetonkawa/internal/apiclient"
	"payetonkawa/internal/models"
	"payetonkawa/internal/session"
)

func newBoutiqueFixture(t *testing.T, backendURL string, user *models.User) (*gin.Engine, *session.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	storage := session.NewFileStorage(t.TempDir())
	if user != nil {
		raw, err := json.Marshal(user)
		require.NoError(t, err)
		require.NoError(t, storage.Save("t1", raw))
	}

	store := session.NewStore(storage, nil)
	store.Hydrate()

	api := apiclient.New(apiclient.Config{
		ClientsURL:    backendURL,
		ProduitsURL:   backendURL,
		CommandesURL:  backendURL,
		Timeout:       2 * time.Second,
		RetryAttempts: 0,
	}, storage)

	r := gin.New()
	New(store, api).MountBoutique(r)
	return r, store
}

// A concurrent logout or 401 teardown can empty the process-wide session
// between the guard check and the handler body. The guarded pages must fall
// back to the entry redirect instead of dereferencing a missing user.
func TestGuardedPagesSurviveConcurrentSessionTeardown(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[],"total":0,"page":1,"limit":500,"totalPages":0}`))
	}))
	defer backend.Close()

	user := models.User{ID: "abc123", Nom: "Martin", Email: "martin@example.com", Type: models.TypeParticulier}
	r, store := newBoutiqueFixture(t, backend.URL, &user)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			store.HandleUnauthorized()
			if err := store.RefreshUser(user); err != nil {
				t.Error("restoring session failed:", err)
				return
			}
		}
	}()

	for i := 0; i < 200; i++ {
		for _, path := range []string{"/mes-commandes", "/dashboard", "/profil"} {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, path, nil)
			r.ServeHTTP(w, req)
			if w.Code != http.StatusOK && w.Code != http.StatusFound {
				t.Fatalf("GET %s returned %d", path, w.Code)
			}
		}
	}
	<-done
}

func TestGuardedHandlerRedirectsWhenSessionEmptiedAfterGuard(t *testing.T) {
	gin.SetMode(gin.TestMode)

	storage := session.NewFileStorage(t.TempDir())
	store := session.NewStore(storage, nil)
	store.Hydrate()

	api := apiclient.New(apiclient.Config{
		ClientsURL:    "http://localhost:1",
		ProduitsURL:   "http://localhost:1",
		CommandesURL:  "http://localhost:1",
		Timeout:       time.Second,
		RetryAttempts: 0,
	}, storage)
	gw := New(store, api)

	// Mount without the guard: this is the window where the guard has
	// already passed but the session has since been torn down.
	r := gin.New()
	r.GET("/mes-commandes", gw.MesCommandes)
	r.GET("/dashboard", gw.Dashboard)
	r.GET("/profil", gw.Profil)
	r.PUT("/profil", gw.UpdateProfil)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/mes-commandes"},
		{http.MethodGet, "/dashboard"},
		{http.MethodGet, "/profil"},
		{http.MethodPut, "/profil"},
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(tc.method, tc.path, nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code, "%s %s", tc.method, tc.path)
		assert.Equal(t, "/", w.Header().Get("Location"), "%s %s", tc.method, tc.path)
	}
}

// The storefront catalog pages must follow backend pagination to the end
// rather than rendering only the first page.
func TestBoutiquePageAggregatesAllCataloguePages(t *testing.T) {
	pages := map[string]string{
		"1": `{"data":[{"id":"000000000000000000000001","nom":"Altura","prix":9.5,"stock":4,"origine":"Colombie","intensite":3,"actif":true}],"total":2,"page":1,"limit":500,"totalPages":2}`,
		"2": `{"data":[{"id":"000000000000000000000002","nom":"Moka","prix":11.0,"stock":2,"origine":"Ethiopie","intensite":4,"actif":true}],"total":2,"page":2,"limit":500,"totalPages":2}`,
	}
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Query().Get("page")]
		if !ok {
			body = `{"data":[],"total":2,"page":3,"limit":500,"totalPages":2}`
		}
		w.Write([]byte(body))
	}))
	defer backend.Close()

	r, _ := newBoutiqueFixture(t, backend.URL, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boutique", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Produits []models.Produit `json:"produits"`
		Origines []string         `json:"origines"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.Produits, 2)
	assert.Equal(t, "Altura", resp.Produits[0].Nom)
	assert.Equal(t, "Moka", resp.Produits[1].Nom)
	assert.Equal(t, []string{"tous", "Colombie", "Ethiopie"}, resp.Origines)
}
