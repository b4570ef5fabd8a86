package identity

import (
	"context"

	"github.com/trustmarket/trustmarket/pkg/middleware"
)

// Profile is the session-scoped identity used to pre-fill author and contact
// fields. Profile values are mutable defaults: the user may override any of
// them before submitting.
type Profile struct {
	UserID string
	Name   string
	Email  string
	Phone  string
}

// Provider supplies the current session profile, if any.
type Provider interface {
	Current(ctx context.Context) (Profile, bool)
}

// ClaimsProvider resolves the profile from auth claims stored in the request
// context by the auth middleware.
type ClaimsProvider struct{}

// NewClaimsProvider creates a context-claims-backed identity provider.
func NewClaimsProvider() *ClaimsProvider {
	return &ClaimsProvider{}
}

// Current returns the profile derived from request claims. Requests without
// claims have no session profile.
func (p *ClaimsProvider) Current(ctx context.Context) (Profile, bool) {
	userID := middleware.UserIDFromContext(ctx)
	if userID == "" {
		return Profile{}, false
	}

	return Profile{
		UserID: userID,
		Name:   middleware.NameFromContext(ctx),
		Email:  middleware.EmailFromContext(ctx),
	}, true
}

// Static is a fixed-profile provider used in tests and local development.
type Static struct {
	Profile Profile
}

// Current returns the fixed profile.
func (s Static) Current(context.Context) (Profile, bool) {
	return s.Profile, s.Profile.UserID != ""
}
