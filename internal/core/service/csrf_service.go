package service

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/brewline/cafe-pos/internal/core/domain"
	"github.com/brewline/cafe-pos/internal/infrastructure/memstore"
)

const defaultCSRFTTL = 60 * time.Minute

// CSRFService issues and validates short-lived, user-bound CSRF tokens held
// in memory.
type CSRFService struct {
	tokens *memstore.Store[string, domain.CSRFToken]
	ttl    time.Duration
	now    func() time.Time
}

func NewCSRFService(ttl time.Duration) *CSRFService {
	if ttl <= 0 {
		ttl = defaultCSRFTTL
	}
	return &CSRFService{
		tokens: memstore.New[string, domain.CSRFToken](),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue creates a token owned by userID.
func (s *CSRFService) Issue(userID string) (domain.CSRFToken, error) {
	for attempt := 0; attempt < 3; attempt++ {
		value, err := randomHex(32)
		if err != nil {
			return domain.CSRFToken{}, fmt.Errorf("issue csrf token: %w", err)
		}
		now := s.now()
		tok := domain.CSRFToken{Value: value, UserID: userID, IssuedAt: now, ExpiresAt: now.Add(s.ttl)}
		if s.tokens.PutIfAbsent(value, tok) {
			return tok, nil
		}
	}
	return domain.CSRFToken{}, fmt.Errorf("issue csrf token: %w", errRandom)
}

// Validate reports whether token exists, belongs to userID and has not expired.
// Expired tokens are purged.
func (s *CSRFService) Validate(token, userID string) bool {
	tok, ok := s.tokens.Get(token)
	if !ok {
		return false
	}
	if !s.now().Before(tok.ExpiresAt) {
		s.tokens.Delete(token)
		return false
	}
	return subtle.ConstantTimeCompare([]byte(tok.UserID), []byte(userID)) == 1
}

// Sweep removes expired tokens and returns how many were dropped.
func (s *CSRFService) Sweep() int {
	now := s.now()
	return s.tokens.DeleteFunc(func(_ string, t domain.CSRFToken) bool {
		return !now.Before(t.ExpiresAt)
	})
}
