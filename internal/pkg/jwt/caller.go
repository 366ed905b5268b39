package jwt

import (
	"context"

	"github.com/go-chi/jwtauth/v5"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/user"
)

// Caller is the identity carried by a verified access token.
type Caller struct {
	UserID    string
	Role      user.Role
	CompanyID string
}

// CallerFromContext returns the caller of a request that went through jwtauth.Verifier.
// ok is false when the context carries no token, as for background jobs.
func CallerFromContext(ctx context.Context) (Caller, bool) {
	token, claims, err := jwtauth.FromContext(ctx)
	if token == nil || err != nil {
		return Caller{}, false
	}

	var c Caller
	c.UserID, _ = claims["user_id"].(string)
	role, _ := claims["role"].(string)
	c.Role = user.Role(role)
	c.CompanyID, _ = claims["company_id"].(string)
	return c, true
}

// IsManager reports whether the caller may act on behalf of other users.
func (c Caller) IsManager() bool {
	return c.Role == user.RoleManager || c.Role == user.RoleAdmin
}

// unrestricted callers are admins and tokens without a company.
func (c Caller) unrestricted() bool {
	return c.Role == user.RoleAdmin || c.CompanyID == ""
}

// ScopedCompanyID pins the caller to the company in their token. Admins keep requested,
// which may be empty for all companies.
func (c Caller) ScopedCompanyID(requested string) string {
	if c.unrestricted() {
		return requested
	}
	return c.CompanyID
}

// CanAccess reports whether u belongs to the caller's company.
func (c Caller) CanAccess(u user.User) bool {
	if c.unrestricted() {
		return true
	}
	return u.CompanyID != nil && *u.CompanyID == c.CompanyID
}

// Authorize returns user.ErrOtherCompany when ctx carries a caller who may not act on u.
// Contexts without a token are not restricted.
func Authorize(ctx context.Context, u user.User) error {
	if caller, ok := CallerFromContext(ctx); ok && !caller.CanAccess(u) {
		return user.ErrOtherCompany
	}
	return nil
}
