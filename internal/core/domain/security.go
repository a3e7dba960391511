package domain

import "time"

// CSRFToken is a short-lived token bound to one user.
type CSRFToken struct {
	Value     string    `json:"token"`
	UserID    string    `json:"user_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// APIKey is a long-lived credential for service integrations.
type APIKey struct {
	Key           string     `json:"key"`
	ServiceName   string     `json:"service_name"`
	Description   string     `json:"description,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	ExpiresAt     time.Time  `json:"expires_at"`
	LastUsedAt    *time.Time `json:"last_used_at,omitempty"`
	Active        bool       `json:"active"`
	RequestCount  int64      `json:"request_count"`
	DeprecatedAt  *time.Time `json:"deprecated_at,omitempty"`
	ReplacedByKey string     `json:"replaced_by,omitempty"`
}

// Usable reports whether the key may authenticate a request at now.
func (k *APIKey) Usable(now time.Time) bool {
	if !k.Active || !now.Before(k.ExpiresAt) {
		return false
	}
	return k.DeprecatedAt == nil || now.Before(*k.DeprecatedAt)
}

// AuditLog records a state-changing request.
type AuditLog struct {
	ID            string    `json:"id" bson:"_id"`
	ActorID       string    `json:"actor_id,omitempty" bson:"actor_id,omitempty"`
	ActorUsername string    `json:"actor_username,omitempty" bson:"actor_username,omitempty"`
	Action        string    `json:"action" bson:"action"`
	Resource      string    `json:"resource" bson:"resource"`
	ResourceID    string    `json:"resource_id,omitempty" bson:"resource_id,omitempty"`
	OutletID      string    `json:"outlet_id,omitempty" bson:"outlet_id,omitempty"`
	IP            string    `json:"ip,omitempty" bson:"ip,omitempty"`
	StatusCode    int       `json:"status_code" bson:"status_code"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}
