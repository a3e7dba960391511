package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/brewline/cafe-pos/internal/core/domain"
	"github.com/brewline/cafe-pos/internal/infrastructure/queue"
)

type discardAudit struct{}

func (discardAudit) Record(context.Context, *domain.AuditLog) error { return nil }

// idleServer has every collaborator built but never started; the clients
// connect lazily so no backing services are needed.
func idleServer(t *testing.T) *Server {
	t.Helper()
	client, err := mongo.Connect(context.Background(), options.Client().
		ApplyURI("mongodb://127.0.0.1:1").
		SetServerSelectionTimeout(50*time.Millisecond))
	require.NoError(t, err)

	return &Server{
		httpServer: &http.Server{Addr: "127.0.0.1:0"},
		mongo:      client,
		redis:      redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}),
		dispatcher: queue.NewDispatcher(1, discardAudit{}, zerolog.Nop()),
		log:        zerolog.Nop(),
		stop:       make(chan struct{}),
	}
}

func TestServer_ShutdownTwice(t *testing.T) {
	s := idleServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	first := s.Shutdown(ctx)
	require.NotPanics(t, func() {
		assert.Equal(t, first, s.Shutdown(ctx))
	})

	select {
	case <-s.stop:
	default:
		t.Fatal("background stop channel left open")
	}
}
