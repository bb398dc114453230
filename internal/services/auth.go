package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"payetonkawa/internal/models"
)

const authBasePath = "/payetonkawa/api/v1/auth"

// Auth talks to the authentication endpoints on the clients service. It
// deliberately does not ride the shared wrapper: a 401 here means bad
// credentials, not an expired session, and must not wipe stored state.
type Auth struct {
	baseURL string
	http    *http.Client
}

func NewAuth(baseURL string, timeout time.Duration) *Auth {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Auth{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SessionResponse is the {token, user} payload both auth endpoints return.
type SessionResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type RegisterCompany struct {
	Name  string `json:"name,omitempty"`
	Siret string `json:"siret,omitempty"`
}

type RegisterAddress struct {
	Line1      string `json:"line1,omitempty"`
	Line2      string `json:"line2,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	City       string `json:"city,omitempty"`
	Country    string `json:"country,omitempty"`
}

// RegisterPayload is the wire format the registration endpoint expects.
type RegisterPayload struct {
	LastName  string          `json:"last_name"`
	FirstName string          `json:"first_name"`
	Email     string          `json:"email"`
	Password  string          `json:"password"`
	Phone     string          `json:"phone,omitempty"`
	Role      string          `json:"role"`
	Company   RegisterCompany `json:"company"`
	Address   RegisterAddress `json:"address"`
}

func (a *Auth) Login(ctx context.Context, email, password string) (SessionResponse, error) {
	body := map[string]string{"email": email, "password": password}
	return a.post(ctx, authBasePath+"/login", body)
}

func (a *Auth) Register(ctx context.Context, payload RegisterPayload) (SessionResponse, error) {
	return a.post(ctx, authBasePath+"/register", payload)
}

func (a *Auth) post(ctx context.Context, path string, body any) (SessionResponse, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return SessionResponse{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return SessionResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.http.Do(req)
	if err != nil {
		return SessionResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return SessionResponse{}, fmt.Errorf("auth endpoint responded %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var session SessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return SessionResponse{}, err
	}
	return session, nil
}
