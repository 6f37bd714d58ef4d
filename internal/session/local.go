package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// LocalProvider keeps accounts in process and issues HS256 token pairs.
// It exists for the memory store mode and for tests; nothing about it
// survives a restart.
type LocalProvider struct {
	mu            sync.RWMutex
	users         map[string]*localUser // keyed by email
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

type localUser struct {
	uid          string
	email        string
	displayName  string
	passwordHash string
}

func NewLocalProvider(secret string, accessExpiry, refreshExpiry time.Duration) *LocalProvider {
	return &LocalProvider{
		users:         make(map[string]*localUser),
		secret:        []byte(secret),
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

func (p *LocalProvider) Register(ctx context.Context, email, password, displayName string) (*Identity, *Tokens, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	p.mu.Lock()
	if _, exists := p.users[email]; exists {
		p.mu.Unlock()
		return nil, nil, fmt.Errorf("account already exists for %s", email)
	}
	user := &localUser{
		uid:          uuid.NewString(),
		email:        email,
		displayName:  displayName,
		passwordHash: string(hash),
	}
	p.users[email] = user
	p.mu.Unlock()

	tokens, err := p.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user.identity(), tokens, nil
}

func (p *LocalProvider) Login(ctx context.Context, email, password string) (*Identity, *Tokens, error) {
	p.mu.RLock()
	user, ok := p.users[email]
	p.mu.RUnlock()
	if !ok {
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.passwordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := p.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user.identity(), tokens, nil
}

func (p *LocalProvider) Refresh(ctx context.Context, refreshToken string) (*Tokens, error) {
	claims, err := p.parse(refreshToken, "refresh")
	if err != nil {
		return nil, err
	}

	email, _ := claims["email"].(string)
	p.mu.RLock()
	user, ok := p.users[email]
	p.mu.RUnlock()
	if !ok {
		return nil, ErrInvalidToken
	}
	return p.issueTokens(user)
}

func (p *LocalProvider) Current(ctx context.Context, accessToken string) (*Identity, error) {
	claims, err := p.parse(accessToken, "access")
	if err != nil {
		return nil, err
	}

	uid, _ := claims["sub"].(string)
	if uid == "" {
		return nil, ErrInvalidToken
	}
	identity := &Identity{UID: uid}
	identity.Email, _ = claims["email"].(string)
	identity.DisplayName, _ = claims["name"].(string)
	return identity, nil
}

func (p *LocalProvider) Logout(ctx context.Context, uid string) error {
	// Tokens are stateless here; expiry is the only revocation.
	return nil
}

func (p *LocalProvider) ListUsers(ctx context.Context) ([]Identity, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]Identity, 0, len(p.users))
	for _, user := range p.users {
		out = append(out, *user.identity())
	}
	return out, nil
}

func (u *localUser) identity() *Identity {
	return &Identity{UID: u.uid, Email: u.email, DisplayName: u.displayName}
}

func (p *LocalProvider) issueTokens(user *localUser) (*Tokens, error) {
	now := time.Now()

	accessClaims := jwt.MapClaims{
		"sub":   user.uid,
		"email": user.email,
		"name":  user.displayName,
		"type":  "access",
		"iat":   now.Unix(),
		"exp":   now.Add(p.accessExpiry).Unix(),
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString(p.secret)
	if err != nil {
		return nil, err
	}

	refreshClaims := jwt.MapClaims{
		"sub":   user.uid,
		"email": user.email,
		"type":  "refresh",
		"iat":   now.Unix(),
		"exp":   now.Add(p.refreshExpiry).Unix(),
	}
	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(p.secret)
	if err != nil {
		return nil, err
	}

	return &Tokens{AccessToken: access, RefreshToken: refresh}, nil
}

func (p *LocalProvider) parse(tokenString, wantType string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return p.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid || claims["type"] != wantType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
