package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// AuthService proxies login and registration to the external identity
// provider. Credentials never touch local storage; the provider issues the
// tokens this service's middleware later verifies.
type AuthService struct {
	domain       string
	audience     string
	clientID     string
	clientSecret string
	connection   string
	httpClient   *http.Client
}

func NewAuthService(domain, audience, clientID, clientSecret, connection string) *AuthService {
	return &AuthService{
		domain:       domain,
		audience:     audience,
		clientID:     clientID,
		clientSecret: clientSecret,
		connection:   connection,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

// Login requests tokens from the provider with the password grant. The
// provider's payload and status are returned verbatim for the handler to
// relay.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (map[string]interface{}, int, error) {
	payload := map[string]string{
		"client_id":     s.clientID,
		"client_secret": s.clientSecret,
		"audience":      s.audience,
		"username":      req.Email,
		"password":      req.Password,
		"grant_type":    "password",
		"scope":         "openid offline_access",
	}
	url := fmt.Sprintf("https://%s/oauth/token", s.domain)

	return s.post(ctx, url, payload)
}

// Register creates the account at the provider.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (map[string]interface{}, int, error) {
	payload := map[string]string{
		"client_id":  s.clientID,
		"connection": s.connection,
		"email":      req.Email,
		"password":   req.Password,
		"name":       req.Name,
	}
	url := fmt.Sprintf("https://%s/dbconnections/signup", s.domain)

	return s.post(ctx, url, payload)
}

func (s *AuthService) post(ctx context.Context, url string, payload map[string]string) (map[string]interface{}, int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("identity provider returned unreadable response: %v", err)
	}

	return result, resp.StatusCode, nil
}
