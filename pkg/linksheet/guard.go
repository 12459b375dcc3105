package linksheet

import (
	"context"
	"fmt"
	"strings"
)

// AuthorizationProvider reports who owns the sheet and who is acting.
type AuthorizationProvider interface {
	Owners(ctx context.Context) ([]string, error)
	ActingIdentity(ctx context.Context) (string, error)
}

// Guard admits only owners of the sheet.
type Guard struct {
	provider AuthorizationProvider
}

// NewGuard creates a Guard backed by provider.
func NewGuard(provider AuthorizationProvider) *Guard {
	return &Guard{provider: provider}
}

// Check returns an *AuthorizationError carrying prompt when the acting
// identity is not among the owners. Identities compare case-insensitively.
func (g *Guard) Check(ctx context.Context, prompt string) error {
	actor, err := g.provider.ActingIdentity(ctx)
	if err != nil {
		return fmt.Errorf("acting identity: %w", err)
	}
	owners, err := g.provider.Owners(ctx)
	if err != nil {
		return fmt.Errorf("owners: %w", err)
	}
	for _, owner := range owners {
		if actor != "" && strings.EqualFold(strings.TrimSpace(owner), strings.TrimSpace(actor)) {
			return nil
		}
	}
	return &AuthorizationError{Actor: actor, Owners: owners, Prompt: prompt}
}
