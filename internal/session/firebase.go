package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/iterator"

	"smarttax-backend/internal/logger"
)

const (
	identityToolkitURL = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"
	secureTokenURL     = "https://securetoken.googleapis.com/v1/token"
)

// FirebaseProvider authenticates against Firebase Auth. Account management
// and token verification go through the Admin SDK; password sign-in and
// refresh are not exposed there, so those two calls use the Identity
// Toolkit REST endpoints with the project's web API key.
type FirebaseProvider struct {
	auth      *auth.Client
	webAPIKey string
	http      *http.Client
}

func NewFirebaseProvider(ctx context.Context, app *firebase.App, webAPIKey string) (*FirebaseProvider, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth client: %w", err)
	}
	return &FirebaseProvider{
		auth:      client,
		webAPIKey: webAPIKey,
		http:      &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (p *FirebaseProvider) Register(ctx context.Context, email, password, displayName string) (*Identity, *Tokens, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	logger.ExternalServiceCall("firebase-auth", "CreateUser", "email", email)
	record, err := p.auth.CreateUser(ctx, params)
	logger.ExternalServiceResult("firebase-auth", "CreateUser", err)
	if err != nil {
		// Returned unwrapped so auth.IsEmailAlreadyExists still matches.
		return nil, nil, err
	}

	identity, tokens, err := p.Login(ctx, email, password)
	if err != nil {
		return nil, nil, err
	}
	identity.UID = record.UID
	return identity, tokens, nil
}

func (p *FirebaseProvider) Login(ctx context.Context, email, password string) (*Identity, *Tokens, error) {
	body, err := json.Marshal(map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return nil, nil, err
	}

	endpoint := identityToolkitURL + "?key=" + url.QueryEscape(p.webAPIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	logger.ExternalServiceCall("identity-toolkit", "signInWithPassword", "email", email)
	resp, err := p.http.Do(req)
	if err != nil {
		logger.ExternalServiceResult("identity-toolkit", "signInWithPassword", err)
		return nil, nil, fmt.Errorf("identity toolkit: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.ExternalServiceResult("identity-toolkit", "signInWithPassword", fmt.Errorf("status %d", resp.StatusCode))
		// The endpoint answers 400 for every credential problem.
		return nil, nil, ErrInvalidCredentials
	}

	var result struct {
		LocalID      string `json:"localId"`
		Email        string `json:"email"`
		DisplayName  string `json:"displayName"`
		IDToken      string `json:"idToken"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, nil, fmt.Errorf("identity toolkit response: %w", err)
	}

	identity := &Identity{
		UID:         result.LocalID,
		Email:       result.Email,
		DisplayName: result.DisplayName,
	}
	tokens := &Tokens{
		AccessToken:  result.IDToken,
		RefreshToken: result.RefreshToken,
	}
	return identity, tokens, nil
}

func (p *FirebaseProvider) Refresh(ctx context.Context, refreshToken string) (*Tokens, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
	}

	endpoint := secureTokenURL + "?key=" + url.QueryEscape(p.webAPIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("secure token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrInvalidToken
	}

	var result struct {
		IDToken      string `json:"id_token"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("secure token response: %w", err)
	}
	return &Tokens{AccessToken: result.IDToken, RefreshToken: result.RefreshToken}, nil
}

func (p *FirebaseProvider) Current(ctx context.Context, accessToken string) (*Identity, error) {
	token, err := p.auth.VerifyIDToken(ctx, accessToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	identity := &Identity{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		identity.DisplayName = name
	}
	return identity, nil
}

func (p *FirebaseProvider) Logout(ctx context.Context, uid string) error {
	logger.ExternalServiceCall("firebase-auth", "RevokeRefreshTokens", "uid", uid)
	err := p.auth.RevokeRefreshTokens(ctx, uid)
	logger.ExternalServiceResult("firebase-auth", "RevokeRefreshTokens", err)
	return err
}

// ListUsers pages through every Firebase account.
func (p *FirebaseProvider) ListUsers(ctx context.Context) ([]Identity, error) {
	var out []Identity
	it := p.auth.Users(ctx, "")
	for {
		user, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		out = append(out, Identity{
			UID:         user.UID,
			Email:       user.Email,
			DisplayName: user.DisplayName,
		})
	}
	return out, nil
}

// IsEmailAlreadyExists reports whether a registration failed because the
// address is taken, letting callers fall through to a plain login.
func IsEmailAlreadyExists(err error) bool {
	return auth.IsEmailAlreadyExists(err)
}
