// Package session is the single source of truth for who the current actor
// is. State changes go through Hydrate, Login, Register and Logout only;
// the transport's unauthorized notification feeds back in through
// HandleUnauthorized.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"payetonkawa/internal/models"
	"payetonkawa/internal/services"
)

var (
	ErrMotsDePasseDifferents = errors.New("les mots de passe ne correspondent pas")
	ErrEntrepriseRequise     = errors.New("le nom de l'entreprise est requis")
	ErrSiretInvalide         = errors.New("le SIRET doit contenir entre 9 et 14 caractères")
	// ErrConnexion is the generic failure surfaced to the user; the cause
	// is only logged.
	ErrConnexion = errors.New("erreur de connexion")
)

// AuthClient is implemented by services.Auth.
type AuthClient interface {
	Login(ctx context.Context, email, password string) (services.SessionResponse, error)
	Register(ctx context.Context, payload services.RegisterPayload) (services.SessionResponse, error)
}

// Inscription is the registration form as filled in by the user, validated
// locally before anything goes over the wire.
type Inscription struct {
	Prenom          string
	Nom             string
	Email           string
	Password        string
	ConfirmPassword string
	Telephone       string
	Type            string
	Entreprise      string
	Siret           string
	Adresse         services.RegisterAddress
}

// Validate applies the pre-network rules: matching password confirmation
// and, for professional accounts, a company name plus a 9–14 character
// SIRET.
func (i Inscription) Validate() error {
	if i.Password != i.ConfirmPassword {
		return ErrMotsDePasseDifferents
	}
	if strings.EqualFold(strings.TrimSpace(i.Type), models.TypeProfessionnel) {
		if strings.TrimSpace(i.Entreprise) == "" {
			return ErrEntrepriseRequise
		}
		length := len(strings.TrimSpace(i.Siret))
		if length < 9 || length > 14 {
			return ErrSiretInvalide
		}
	}
	return nil
}

func (i Inscription) payload() services.RegisterPayload {
	payload := services.RegisterPayload{
		LastName:  strings.TrimSpace(i.Nom),
		FirstName: strings.TrimSpace(i.Prenom),
		Email:     strings.TrimSpace(i.Email),
		Password:  i.Password,
		Phone:     strings.TrimSpace(i.Telephone),
		Role:      strings.TrimSpace(i.Type),
		Address:   i.Adresse,
	}
	if strings.EqualFold(payload.Role, models.TypeProfessionnel) {
		payload.Company = services.RegisterCompany{
			Name:  strings.TrimSpace(i.Entreprise),
			Siret: strings.TrimSpace(i.Siret),
		}
	}
	return payload
}

type Store struct {
	mu      sync.RWMutex
	storage Storage
	auth    AuthClient

	user           *models.User
	hydrated       bool
	loginModalOpen bool
}

func NewStore(storage Storage, auth AuthClient) *Store {
	return &Store{storage: storage, auth: auth}
}

// Hydrate restores the session from durable storage. A corrupt user record
// discards both keys and leaves the session signed out; the store counts
// as hydrated either way.
func (s *Store) Hydrate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	defer func() { s.hydrated = true }()

	token, raw, err := s.storage.Load()
	if err != nil {
		log.Println("[SESSION] [ERROR] loading stored session failed:", err)
		return
	}
	if token == "" || len(raw) == 0 {
		return
	}

	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		log.Println("[SESSION] [ERROR] stored user record corrupt, discarding:", err)
		if err := s.storage.Clear(); err != nil {
			log.Println("[SESSION] [ERROR] clearing corrupt session failed:", err)
		}
		return
	}

	s.user = &user
}

func (s *Store) Login(ctx context.Context, email, password string) error {
	session, err := s.auth.Login(ctx, email, password)
	if err != nil {
		log.Println("[SESSION] [ERROR] login failed:", err)
		return ErrConnexion
	}

	if err := s.persist(session); err != nil {
		log.Println("[SESSION] [ERROR] persisting session failed:", err)
		return ErrConnexion
	}
	return nil
}

// Register validates locally first; nothing is sent when validation fails.
// A successful registration authenticates immediately, exactly like login.
func (s *Store) Register(ctx context.Context, form Inscription) error {
	if err := form.Validate(); err != nil {
		return err
	}

	session, err := s.auth.Register(ctx, form.payload())
	if err != nil {
		log.Println("[SESSION] [ERROR] registration failed:", err)
		return fmt.Errorf("%w: inscription", ErrConnexion)
	}

	if err := s.persist(session); err != nil {
		log.Println("[SESSION] [ERROR] persisting session failed:", err)
		return ErrConnexion
	}
	return nil
}

func (s *Store) persist(session services.SessionResponse) error {
	raw, err := json.Marshal(session.User)
	if err != nil {
		return err
	}
	if err := s.storage.Save(session.Token, raw); err != nil {
		return err
	}

	s.mu.Lock()
	user := session.User
	s.user = &user
	s.loginModalOpen = false
	s.mu.Unlock()
	return nil
}

// Logout clears durable storage and memory synchronously. No server call.
func (s *Store) Logout() {
	if err := s.storage.Clear(); err != nil {
		log.Println("[SESSION] [ERROR] clearing session failed:", err)
	}

	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}

// HandleUnauthorized is the transport's 401 subscriber. The token has
// already been wiped by the wrapper; drop the rest of the session.
func (s *Store) HandleUnauthorized() {
	if err := s.storage.Clear(); err != nil {
		log.Println("[SESSION] [ERROR] clearing session failed:", err)
	}

	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}

// RefreshUser replaces the stored user record after a profile update, the
// token stays as it is.
func (s *Store) RefreshUser(user models.User) error {
	token, _, err := s.storage.Load()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.storage.Save(token, raw); err != nil {
		return err
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	return nil
}

// User returns a copy of the signed-in user, or nil.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

func (s *Store) Hydrated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrated
}

func (s *Store) OpenLoginModal() {
	s.mu.Lock()
	s.loginModalOpen = true
	s.mu.Unlock()
}

func (s *Store) CloseLoginModal() {
	s.mu.Lock()
	s.loginModalOpen = false
	s.mu.Unlock()
}

func (s *Store) LoginModalOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loginModalOpen
}
