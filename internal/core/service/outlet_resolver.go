package service

import (
	"context"
	"strings"

	"github.com/brewline/cafe-pos/internal/core/domain"
	"github.com/brewline/cafe-pos/internal/core/ports"
)

// OutletResolver decides which outlet scopes a request.
type OutletResolver struct {
	users   ports.UserRepository
	outlets ports.OutletRepository
}

func NewOutletResolver(users ports.UserRepository, outlets ports.OutletRepository) *OutletResolver {
	return &OutletResolver{users: users, outlets: outlets}
}

// ResolveForRead returns the outlet a read should be filtered by. An empty
// result means all outlets and is only produced for admins without an
// explicit outlet.
func (r *OutletResolver) ResolveForRead(ctx context.Context, header string, id domain.Identity) (string, error) {
	header = strings.TrimSpace(header)
	if id.IsAdmin() {
		if header == "" {
			return "", nil
		}
		return r.existing(ctx, header)
	}

	user, err := r.users.FindByID(ctx, id.UserID)
	if err != nil {
		return "", err
	}
	if header != "" {
		if !user.HasOutlet(header) {
			return "", domain.ErrOutletForbidden
		}
		return header, nil
	}
	if len(user.OutletIDs) == 0 {
		return "", domain.ErrOutletRequired
	}
	return user.OutletIDs[0], nil
}

// ResolveForWrite returns exactly one outlet the caller may write into.
// Admins may target any existing outlet explicitly; everyone else is limited
// to their assigned outlets.
func (r *OutletResolver) ResolveForWrite(ctx context.Context, header string, id domain.Identity) (string, error) {
	header = strings.TrimSpace(header)
	user, err := r.users.FindByID(ctx, id.UserID)
	if err != nil {
		return "", err
	}

	if header == "" {
		if len(user.OutletIDs) == 0 {
			return "", domain.ErrOutletRequired
		}
		return user.OutletIDs[0], nil
	}

	if id.IsAdmin() {
		return r.existing(ctx, header)
	}
	if !user.HasOutlet(header) {
		return "", domain.ErrOutletForbidden
	}
	return header, nil
}

// ResolveForOrder picks the outlet a customer order is placed at: any
// existing active outlet may take orders.
func (r *OutletResolver) ResolveForOrder(ctx context.Context, header string, id domain.Identity) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return r.ResolveForWrite(ctx, header, id)
	}
	o, err := r.outlets.FindByID(ctx, header)
	if err != nil {
		return "", err
	}
	if !o.Active {
		return "", domain.ErrOutletNotFound
	}
	return o.ID, nil
}

func (r *OutletResolver) existing(ctx context.Context, outletID string) (string, error) {
	o, err := r.outlets.FindByID(ctx, outletID)
	if err != nil {
		return "", err
	}
	return o.ID, nil
}
