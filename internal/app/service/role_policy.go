package service

import (
	"context"
	"slices"

	"signup_portal/internal/domain/model"
)

// RolePolicy decides which role a new account receives for a requested
// role. It returns the role to store, or ErrInvalidRole / ErrRoleForbidden.
type RolePolicy interface {
	Authorize(ctx context.Context, requested string) (string, error)
}

// PassThroughRolePolicy stores whatever role was submitted.
type PassThroughRolePolicy struct{}

func (PassThroughRolePolicy) Authorize(_ context.Context, requested string) (string, error) {
	return requested, nil
}

// AllowedRolePolicy accepts any known role and defaults an empty one to
// model.RoleUser. Suitable for trusted callers such as the operator CLI.
type AllowedRolePolicy struct{}

func (AllowedRolePolicy) Authorize(_ context.Context, requested string) (string, error) {
	return normalizeRole(requested)
}

// CallerRoleFunc extracts the authenticated caller's role from ctx.
type CallerRoleFunc func(ctx context.Context) (string, bool)

// CallerRolePolicy grants model.RoleAdmin only to callers that are
// themselves admins. Anonymous signups are limited to model.RoleUser.
type CallerRolePolicy struct {
	callerRole CallerRoleFunc
}

func NewCallerRolePolicy(callerRole CallerRoleFunc) *CallerRolePolicy {
	return &CallerRolePolicy{callerRole: callerRole}
}

func (p *CallerRolePolicy) Authorize(ctx context.Context, requested string) (string, error) {
	role, err := normalizeRole(requested)
	if err != nil {
		return "", err
	}
	if role != model.RoleAdmin {
		return role, nil
	}
	if caller, ok := p.callerRole(ctx); ok && caller == model.RoleAdmin {
		return role, nil
	}
	return "", ErrRoleForbidden
}

func normalizeRole(requested string) (string, error) {
	if requested == "" {
		return model.RoleUser, nil
	}
	if !slices.Contains(model.Roles(), requested) {
		return "", ErrInvalidRole
	}
	return requested, nil
}
