package auth

import (
	"fmt"
	"time"

	"calltime-backend/internal/config"
	apperrors "calltime-backend/internal/errors"
	"calltime-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	// RoleManager is the back-office role with full access.
	RoleManager = "manager"
	// RoleClient is a portal login scoped to one client.
	RoleClient = "client"
)

// AuthClaims represents JWT token claims
type AuthClaims struct {
	SessionID string `json:"session_id"`
	Role      string `json:"role"`
	ClientID  uint   `json:"client_id,omitempty"`
	jwt.RegisteredClaims
}

// AuthService issues and validates portal and manager sessions
type AuthService struct {
	cfg      *config.Config
	clients  repository.ClientRepositoryInterface
	sessions SessionStore
}

// NewAuthService creates a new authentication service
func NewAuthService(cfg *config.Config, clients repository.ClientRepositoryInterface, sessions SessionStore) *AuthService {
	return &AuthService{cfg: cfg, clients: clients, sessions: sessions}
}

// LoginResponse represents a successful login
type LoginResponse struct {
	AccessToken           string    `json:"access_token"`
	TokenType             string    `json:"token_type"`
	ExpiresAt             time.Time `json:"expires_at"`
	Role                  string    `json:"role"`
	ClientID              uint      `json:"client_id,omitempty"`
	PasswordResetRequired bool      `json:"password_reset_required,omitempty"`
}

// ManagerLogin checks the configured manager password and issues a manager session
func (s *AuthService) ManagerLogin(password string) (*LoginResponse, error) {
	if s.cfg.ManagerPassword == "" || password != s.cfg.ManagerPassword {
		return nil, apperrors.ErrInvalidCredentials
	}
	return s.issue(RoleManager, 0, false)
}

// ClientLogin checks a client's portal password and issues a client-scoped session
func (s *AuthService) ClientLogin(clientID uint, password string) (*LoginResponse, error) {
	client, err := s.clients.GetByID(clientID)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if client.PasswordHash == "" {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(client.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return s.issue(RoleClient, client.ID, client.PasswordResetRequired)
}

// Logout revokes the session behind a token. Invalid tokens are a no-op.
func (s *AuthService) Logout(tokenString string) {
	claims, err := s.parseJWT(tokenString)
	if err != nil {
		return
	}
	s.sessions.Delete(claims.SessionID)
}

// ValidateToken checks both the JWT signature and the backing session. A valid
// token whose session was revoked or expired is rejected.
func (s *AuthService) ValidateToken(tokenString string) (*Session, error) {
	claims, err := s.parseJWT(tokenString)
	if err != nil {
		return nil, apperrors.ErrSessionExpired
	}
	session, ok := s.sessions.Get(claims.SessionID)
	if !ok {
		return nil, apperrors.ErrSessionExpired
	}
	if session.Role != claims.Role || session.ClientID != claims.ClientID {
		return nil, apperrors.ErrSessionExpired
	}
	return session, nil
}

func (s *AuthService) issue(role string, clientID uint, passwordResetRequired bool) (*LoginResponse, error) {
	now := time.Now()
	session := &Session{
		ID:        uuid.New().String(),
		Role:      role,
		ClientID:  clientID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.SessionTTL()),
	}

	claims := AuthClaims{
		SessionID: session.ID,
		Role:      role,
		ClientID:  clientID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "calltime-backend",
			Subject:   session.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.sessions.Put(session)

	return &LoginResponse{
		AccessToken:           signed,
		TokenType:             "bearer",
		ExpiresAt:             session.ExpiresAt,
		Role:                  role,
		ClientID:              clientID,
		PasswordResetRequired: passwordResetRequired,
	}, nil
}

func (s *AuthService) parseJWT(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
