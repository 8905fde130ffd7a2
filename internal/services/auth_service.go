package services

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"wayfarer/pkg/utils"
)

const apiKeyTTL = 24 * time.Hour

type AuthServiceInterface interface {
	// Login checks the configured admin credentials and issues a short-lived
	// admin token.
	Login(username, password string) (string, error)

	// IssueAPIKey mints an opaque key a client can present in X-API-Key to
	// get its own rate-limit bucket.
	IssueAPIKey() (string, error)
	ValidAPIKey(key string) bool
}

type AuthService struct {
	adminUser    string
	passwordHash string

	mu      sync.RWMutex
	apiKeys map[string]time.Time
}

func NewAuthService(cfg *utils.Config) AuthServiceInterface {
	if cfg.AdminPasswordHash == "" {
		log.Println("ADMIN_PASSWORD_HASH not set; admin login disabled")
	}
	return &AuthService{
		adminUser:    cfg.AdminUser,
		passwordHash: cfg.AdminPasswordHash,
		apiKeys:      make(map[string]time.Time),
	}
}

func (s *AuthService) Login(username, password string) (string, error) {
	if s.passwordHash == "" || username != s.adminUser {
		return "", utils.ErrUnauthorized
	}
	if err := utils.ComparePasswords(s.passwordHash, password); err != nil {
		return "", utils.ErrUnauthorized
	}

	token, err := utils.CreateToken(uuid.New(), "admin")
	if err != nil {
		log.Printf("Error signing token: %v", err)
		return "", errors.New("token signing failed")
	}
	return token, nil
}

func (s *AuthService) IssueAPIKey() (string, error) {
	key, err := utils.GenerateSecureToken(24)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.apiKeys[key] = time.Now().Add(apiKeyTTL)
	s.mu.Unlock()
	return key, nil
}

func (s *AuthService) ValidAPIKey(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	expiry, ok := s.apiKeys[key]
	return ok && time.Now().Before(expiry)
}
