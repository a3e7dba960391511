package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/brewline/cafe-pos/internal/core/domain"
	"github.com/brewline/cafe-pos/internal/infrastructure/memstore"
)

const (
	apiKeyPrefix         = "cpk_"
	defaultAPIKeyTTL     = 90 * 24 * time.Hour
	defaultRotationGrace = 7 * 24 * time.Hour
)

// APIKeyService manages service API keys in memory.
type APIKeyService struct {
	keys  *memstore.Store[string, domain.APIKey]
	ttl   time.Duration
	grace time.Duration
	now   func() time.Time
}

func NewAPIKeyService(ttl, grace time.Duration) *APIKeyService {
	if ttl <= 0 {
		ttl = defaultAPIKeyTTL
	}
	if grace <= 0 {
		grace = defaultRotationGrace
	}
	return &APIKeyService{
		keys:  memstore.New[string, domain.APIKey](),
		ttl:   ttl,
		grace: grace,
		now:   time.Now,
	}
}

// Generate creates a new active key for serviceName.
func (s *APIKeyService) Generate(serviceName, description string) (domain.APIKey, error) {
	for attempt := 0; attempt < 3; attempt++ {
		raw, err := randomHex(32)
		if err != nil {
			return domain.APIKey{}, fmt.Errorf("generate api key: %w", err)
		}
		now := s.now()
		key := domain.APIKey{
			Key:         apiKeyPrefix + raw,
			ServiceName: serviceName,
			Description: description,
			CreatedAt:   now,
			ExpiresAt:   now.Add(s.ttl),
			Active:      true,
		}
		if s.keys.PutIfAbsent(key.Key, key) {
			return key, nil
		}
	}
	return domain.APIKey{}, fmt.Errorf("generate api key: %w", errRandom)
}

// Rotate issues a replacement for oldKey and schedules oldKey's deprecation
// after the grace window. The old key keeps working until then. Revoked keys
// cannot be rotated.
func (s *APIKeyService) Rotate(oldKey string) (domain.APIKey, time.Time, error) {
	old, ok := s.keys.Get(oldKey)
	if !ok {
		return domain.APIKey{}, time.Time{}, domain.ErrAPIKeyNotFound
	}
	if !old.Active {
		return domain.APIKey{}, time.Time{}, domain.ErrAPIKeyRevoked
	}

	replacement, err := s.Generate(old.ServiceName, old.Description)
	if err != nil {
		return domain.APIKey{}, time.Time{}, err
	}

	deprecation := s.now().Add(s.grace)
	s.keys.Update(oldKey, func(k domain.APIKey) (domain.APIKey, bool) {
		if k.DeprecatedAt == nil || deprecation.Before(*k.DeprecatedAt) {
			k.DeprecatedAt = &deprecation
		}
		k.ReplacedByKey = replacement.Key
		return k, true
	})
	return replacement, deprecation, nil
}

// Revoke deactivates key immediately. Revoking an already inactive key is
// not an error.
func (s *APIKeyService) Revoke(key string) error {
	found := s.keys.Update(key, func(k domain.APIKey) (domain.APIKey, bool) {
		if !k.Active {
			return k, false
		}
		k.Active = false
		return k, true
	})
	if !found {
		return domain.ErrAPIKeyNotFound
	}
	return nil
}

// Authenticate validates key and records its usage.
func (s *APIKeyService) Authenticate(key string) (domain.APIKey, bool) {
	now := s.now()
	var result domain.APIKey
	usable := false
	s.keys.Update(key, func(k domain.APIKey) (domain.APIKey, bool) {
		if !k.Usable(now) {
			return k, false
		}
		k.RequestCount++
		k.LastUsedAt = &now
		result, usable = k, true
		return k, true
	})
	return result, usable
}

// Get returns the metadata stored for key.
func (s *APIKeyService) Get(key string) (domain.APIKey, error) {
	k, ok := s.keys.Get(key)
	if !ok {
		return domain.APIKey{}, domain.ErrAPIKeyNotFound
	}
	return k, nil
}

// List returns all keys ordered by creation time.
func (s *APIKeyService) List() []domain.APIKey {
	all := s.keys.Values()
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	return all
}

// KeysNeedingRotation returns active keys expiring within threshold.
func (s *APIKeyService) KeysNeedingRotation(threshold time.Duration) []domain.APIKey {
	cutoff := s.now().Add(threshold)
	var due []domain.APIKey
	for _, k := range s.List() {
		if k.Active && k.DeprecatedAt == nil && !k.ExpiresAt.After(cutoff) {
			due = append(due, k)
		}
	}
	return due
}
