package middleware

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/brewline/cafe-pos/internal/core/domain"
	"github.com/brewline/cafe-pos/internal/core/ports"
	"github.com/brewline/cafe-pos/internal/core/service"
)

const testSecret = "secret"

type stubUsers struct {
	ports.UserRepository
	users map[string]*domain.User
}

func newStubUsers(users ...*domain.User) *stubUsers {
	r := &stubUsers{users: map[string]*domain.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *stubUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func newTestGate(users ...*domain.User) (*Gate, *service.TokenService) {
	tokens := service.NewTokenService(testSecret, time.Hour)
	return NewGate(tokens, newStubUsers(users...)), tokens
}

func signed(claims jwt.MapClaims) string {
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		panic(err)
	}
	return s
}

type stubAuditQueue struct {
	entries []*domain.AuditLog
}

func (q *stubAuditQueue) Enqueue(e *domain.AuditLog) bool {
	q.entries = append(q.entries, e)
	return true
}
