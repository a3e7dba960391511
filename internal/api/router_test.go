package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewline/cafe-pos/internal/api/handler"
	"github.com/brewline/cafe-pos/internal/api/middleware"
	"github.com/brewline/cafe-pos/internal/core/domain"
	"github.com/brewline/cafe-pos/internal/core/ports"
	"github.com/brewline/cafe-pos/internal/core/service"
)

type routerUsers struct {
	ports.UserRepository
	byID map[string]*domain.User
}

func (r *routerUsers) Create(_ context.Context, u *domain.User) error {
	for _, existing := range r.byID {
		if existing.Username == u.Username {
			return domain.ErrUserExists
		}
	}
	clone := *u
	r.byID[u.ID] = &clone
	return nil
}

func (r *routerUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *routerUsers) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type routerOrders struct {
	ports.OrderRepository
}

func (routerOrders) ListByUser(context.Context, string) ([]*domain.Order, error) { return nil, nil }

type openLimiter struct{}

func (openLimiter) Blocked(context.Context, string) (bool, error) { return false, nil }
func (openLimiter) Fail(context.Context, string) error            { return nil }
func (openLimiter) Reset(context.Context, string) error           { return nil }

type recordingQueue struct{ entries []*domain.AuditLog }

func (q *recordingQueue) Enqueue(e *domain.AuditLog) bool {
	q.entries = append(q.entries, e)
	return true
}

type routerFixture struct {
	e      *echo.Echo
	queue  *recordingQueue
	users  *routerUsers
	tokens *service.TokenService
	keys   *service.APIKeyService
}

func newRouterFixture(t *testing.T, log zerolog.Logger) *routerFixture {
	t.Helper()
	f := &routerFixture{
		queue:  &recordingQueue{},
		users:  &routerUsers{byID: map[string]*domain.User{}},
		tokens: service.NewTokenService("router-secret", time.Hour),
		keys:   service.NewAPIKeyService(time.Hour, time.Minute),
	}

	f.e = NewRouter(Services{
		Tokens:     f.tokens,
		Auth:       service.NewAuthService(f.users, f.tokens, openLimiter{}, log),
		Orders:     service.NewOrderService(routerOrders{}, nil, nil, nil, log),
		Offers:     service.NewOfferService(nil),
		APIKeys:    f.keys,
		Resolver:   service.NewOutletResolver(f.users, nil),
		UserRepo:   f.users,
		AuditQueue: f.queue,
		Health: map[string]handler.Pinger{
			"mongo": func(context.Context) error { return nil },
		},
	}, Options{Logger: log, Registry: prometheus.NewRegistry()})
	return f
}

func newTestRouter(t *testing.T) (*echo.Echo, *recordingQueue) {
	f := newRouterFixture(t, zerolog.Nop())
	return f.e, f.queue
}

// staff stores an active user with the given role and outlets and returns a
// bearer token for it.
func (f *routerFixture) staff(t *testing.T, id, role string, outlets ...string) string {
	t.Helper()
	f.users.byID[id] = &domain.User{ID: id, Username: id, Role: role, Active: true, OutletIDs: outlets}
	token, err := f.tokens.Issue(id, id, role)
	require.NoError(t, err)
	return token
}

func do(e *echo.Echo, method, path, body, token string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestRouter_RegisterLoginAndListOwnOrders(t *testing.T) {
	e, queue := newTestRouter(t)

	rec := do(e, http.MethodPost, "/api/auth/register", `{"username":"meera","email":"meera@example.com","password":"secret1"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(e, http.MethodPost, "/api/auth/login", `{"username":"meera","password":"secret1"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	rec = do(e, http.MethodGet, "/api/orders/my", "", login.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(e, http.MethodGet, "/api/auth/me", "", login.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"meera"`)

	// Only the two POSTs are audited.
	require.Len(t, queue.entries, 2)
	assert.Equal(t, "POST /api/auth/register", queue.entries[0].Action)
	assert.Equal(t, http.StatusOK, queue.entries[1].StatusCode)
}

func TestRouter_DuplicateRegistrationConflicts(t *testing.T) {
	e, _ := newTestRouter(t)
	body := `{"username":"meera","email":"meera@example.com","password":"secret1"}`

	require.Equal(t, http.StatusCreated, do(e, http.MethodPost, "/api/auth/register", body, "").Code)
	rec := do(e, http.MethodPost, "/api/auth/register", body, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, domain.ErrUserExists.Error(), errorBody(t, rec))
}

func TestRouter_BadLoginIsUnauthorized(t *testing.T) {
	e, _ := newTestRouter(t)
	rec := do(e, http.MethodPost, "/api/auth/login", `{"username":"nobody","password":"whatever"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid credentials", errorBody(t, rec))
}

func TestRouter_Gates(t *testing.T) {
	e, _ := newTestRouter(t)
	require.Equal(t, http.StatusCreated, do(e, http.MethodPost, "/api/auth/register", `{"username":"ravi","email":"ravi@example.com","password":"secret1"}`, "").Code)
	rec := do(e, http.MethodPost, "/api/auth/login", `{"username":"ravi","password":"secret1"}`, "")
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		status int
		msg    string
	}{
		{"no token", http.MethodGet, "/api/orders/my", "", http.StatusUnauthorized, "invalid or missing token"},
		{"garbage token", http.MethodGet, "/api/auth/me", "not-a-jwt", http.StatusUnauthorized, "invalid or missing token"},
		{"user on admin route", http.MethodGet, "/api/users", login.Token, http.StatusForbidden, "insufficient role"},
		{"user on staff route", http.MethodGet, "/api/inventory", login.Token, http.StatusForbidden, "insufficient role"},
		{"user on security admin", http.MethodGet, "/api/admin/audit-logs", login.Token, http.StatusForbidden, "insufficient role"},
		{"integration without key", http.MethodGet, "/api/integrations/menu", "", http.StatusUnauthorized, "invalid or missing api key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, tt.method, tt.path, "", tt.token)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.msg, errorBody(t, rec))
		})
	}
}

func TestRouter_OpsEndpoints(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(e, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = do(e, http.MethodGet, "/health/ready", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"mongo"`)

	rec = do(e, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "requests_total")
}

func TestRouter_OfferWritesNeedOwnOutlet(t *testing.T) {
	f := newRouterFixture(t, zerolog.Nop())
	manager := f.staff(t, "mgr-x", domain.RoleManager, "X")
	body := `{"code":"FLAT20","discount_percent":20,"active":true}`

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"create", http.MethodPost, "/api/offers", body},
		{"update", http.MethodPut, "/api/offers/off-y", body},
		{"delete", http.MethodDelete, "/api/offers/off-y", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(f.e, tt.method, tt.path, tt.body, manager, middleware.HeaderOutletID, "Y")
			assert.Equal(t, http.StatusForbidden, rec.Code)
			assert.Equal(t, domain.ErrOutletForbidden.Error(), errorBody(t, rec))
		})
	}
}

func TestRouter_RevokeKeepsKeyOutOfLogs(t *testing.T) {
	var logs bytes.Buffer
	f := newRouterFixture(t, zerolog.New(&logs))
	admin := f.staff(t, "root", domain.RoleAdmin)

	key, err := f.keys.Generate("zomato-sync", "")
	require.NoError(t, err)

	rec := do(f.e, http.MethodPost, "/api/admin/api-keys/revoke", `{"key":"`+key.Key+`"}`, admin)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	_, ok := f.keys.Authenticate(key.Key)
	assert.False(t, ok, "revoked key must not authenticate")
	assert.Contains(t, logs.String(), "/api/admin/api-keys/revoke")
	assert.NotContains(t, logs.String(), key.Key)
	require.NotEmpty(t, f.queue.entries)
	assert.NotContains(t, f.queue.entries[len(f.queue.entries)-1].Action, key.Key)

	rec = do(f.e, http.MethodPost, "/api/admin/api-keys/revoke", `{}`, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
