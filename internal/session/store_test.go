package session

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payetonkawa/internal/models"
	"payetonkawa/internal/services"
)

type fakeAuth struct {
	loginCalls    int
	registerCalls int
	lastPayload   services.RegisterPayload
	response      services.SessionResponse
	err           error
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (services.SessionResponse, error) {
	f.loginCalls++
	return f.response, f.err
}

func (f *fakeAuth) Register(_ context.Context, payload services.RegisterPayload) (services.SessionResponse, error) {
	f.registerCalls++
	f.lastPayload = payload
	return f.response, f.err
}

func newTestStore(t *testing.T, auth *fakeAuth) (*Store, *FileStorage) {
	t.Helper()
	storage := NewFileStorage(t.TempDir())
	return NewStore(storage, auth), storage
}

func sessionFixture() services.SessionResponse {
	return services.SessionResponse{
		Token: "t1",
		User:  models.User{ID: "u1", Nom: "Jean Kawa", Email: "jean@kawa.fr", Type: models.TypeParticulier},
	}
}

func TestLoginPersistsTokenAndUser(t *testing.T) {
	auth := &fakeAuth{response: sessionFixture()}
	store, storage := newTestStore(t, auth)

	require.NoError(t, store.Login(context.Background(), "jean@kawa.fr", "secret"))

	token, raw, err := storage.Load()
	require.NoError(t, err)
	assert.Equal(t, "t1", token)

	var user models.User
	require.NoError(t, json.Unmarshal(raw, &user))
	assert.Equal(t, "u1", user.ID)

	current := store.User()
	require.NotNil(t, current)
	assert.Equal(t, "u1", current.ID)
}

func TestLoginFailureSurfacesGenericError(t *testing.T) {
	auth := &fakeAuth{err: errors.New("auth endpoint responded 401: invalid credentials")}
	store, storage := newTestStore(t, auth)

	err := store.Login(context.Background(), "jean@kawa.fr", "wrong")
	assert.ErrorIs(t, err, ErrConnexion)
	assert.Nil(t, store.User())

	token, _, loadErr := storage.Load()
	require.NoError(t, loadErr)
	assert.Empty(t, token)
}

func TestRegisterPasswordMismatchNeverReachesNetwork(t *testing.T) {
	auth := &fakeAuth{response: sessionFixture()}
	store, _ := newTestStore(t, auth)

	err := store.Register(context.Background(), Inscription{
		Prenom:          "Jean",
		Nom:             "Kawa",
		Email:           "jean@kawa.fr",
		Password:        "secret-1",
		ConfirmPassword: "secret-2",
	})

	assert.ErrorIs(t, err, ErrMotsDePasseDifferents)
	assert.Zero(t, auth.registerCalls)
}

func TestRegisterProfessionnelRequiresEntreprise(t *testing.T) {
	auth := &fakeAuth{response: sessionFixture()}
	store, _ := newTestStore(t, auth)

	err := store.Register(context.Background(), Inscription{
		Prenom:          "Jean",
		Nom:             "Kawa",
		Email:           "pro@kawa.fr",
		Password:        "secret-1",
		ConfirmPassword: "secret-1",
		Type:            models.TypeProfessionnel,
		Entreprise:      "   ",
		Siret:           "123456789",
	})

	assert.ErrorIs(t, err, ErrEntrepriseRequise)
	assert.Zero(t, auth.registerCalls)
}

func TestRegisterSiretLengthBounds(t *testing.T) {
	tests := []struct {
		siret string
		valid bool
	}{
		{"12345678", false},        // 8
		{"123456789", true},        // 9
		{"12345678901234", true},   // 14
		{"123456789012345", false}, // 15
	}

	for _, tc := range tests {
		auth := &fakeAuth{response: sessionFixture()}
		store, _ := newTestStore(t, auth)

		err := store.Register(context.Background(), Inscription{
			Prenom:          "Jean",
			Nom:             "Kawa",
			Email:           "pro@kawa.fr",
			Password:        "secret-1",
			ConfirmPassword: "secret-1",
			Type:            models.TypeProfessionnel,
			Entreprise:      "Kawa SARL",
			Siret:           tc.siret,
		})

		if tc.valid {
			assert.NoError(t, err, "siret %q should pass local validation", tc.siret)
			assert.Equal(t, 1, auth.registerCalls)
		} else {
			assert.ErrorIs(t, err, ErrSiretInvalide, "siret %q", tc.siret)
			assert.Zero(t, auth.registerCalls)
		}
	}
}

func TestRegisterAutoAuthenticates(t *testing.T) {
	auth := &fakeAuth{response: sessionFixture()}
	store, storage := newTestStore(t, auth)

	require.NoError(t, store.Register(context.Background(), Inscription{
		Prenom:          "Jean",
		Nom:             "Kawa",
		Email:           "jean@kawa.fr",
		Password:        "secret-1",
		ConfirmPassword: "secret-1",
	}))

	token, _, err := storage.Load()
	require.NoError(t, err)
	assert.Equal(t, "t1", token)
	require.NotNil(t, store.User())
}

func TestLogoutClearsEverything(t *testing.T) {
	auth := &fakeAuth{response: sessionFixture()}
	store, storage := newTestStore(t, auth)

	require.NoError(t, store.Login(context.Background(), "jean@kawa.fr", "secret"))
	store.Logout()

	assert.Nil(t, store.User())
	token, user, err := storage.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Empty(t, user)
}

func TestHydrateRestoresStoredSession(t *testing.T) {
	storage := NewFileStorage(t.TempDir())
	raw, err := json.Marshal(models.User{ID: "u1", Nom: "Jean Kawa", Email: "jean@kawa.fr"})
	require.NoError(t, err)
	require.NoError(t, storage.Save("t1", raw))

	store := NewStore(storage, &fakeAuth{})
	assert.False(t, store.Hydrated())

	store.Hydrate()

	assert.True(t, store.Hydrated())
	require.NotNil(t, store.User())
	assert.Equal(t, "u1", store.User().ID)
}

func TestHydrateDiscardsCorruptUserRecord(t *testing.T) {
	dir := t.TempDir()
	storage := NewFileStorage(dir)
	require.NoError(t, storage.Save("t1", []byte("{not json")))

	store := NewStore(storage, &fakeAuth{})
	store.Hydrate()

	assert.True(t, store.Hydrated())
	assert.Nil(t, store.User())

	// both keys are gone, not just the user record
	_, err := os.Stat(filepath.Join(dir, "auth_token"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "user_data.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestHandleUnauthorizedDropsSession(t *testing.T) {
	auth := &fakeAuth{response: sessionFixture()}
	store, storage := newTestStore(t, auth)

	require.NoError(t, store.Login(context.Background(), "jean@kawa.fr", "secret"))
	store.HandleUnauthorized()

	assert.Nil(t, store.User())
	token, _, err := storage.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestLoginModalToggles(t *testing.T) {
	store, _ := newTestStore(t, &fakeAuth{})

	assert.False(t, store.LoginModalOpen())
	store.OpenLoginModal()
	assert.True(t, store.LoginModalOpen())
	store.CloseLoginModal()
	assert.False(t, store.LoginModalOpen())
}

func TestLoginClosesModal(t *testing.T) {
	auth := &fakeAuth{response: sessionFixture()}
	store, _ := newTestStore(t, auth)

	store.OpenLoginModal()
	require.NoError(t, store.Login(context.Background(), "jean@kawa.fr", "secret"))
	assert.False(t, store.LoginModalOpen())
}
