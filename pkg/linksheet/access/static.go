package access

import "context"

// IdentityFunc returns the acting identity.
type IdentityFunc func(ctx context.Context) (string, error)

// Static compares a configured owner list with an identity looked up at
// check time. It serves workbooks that have no owner metadata of their own.
type Static struct {
	owners   []string
	identity IdentityFunc
}

// NewStatic returns a Static provider.
func NewStatic(owners []string, identity IdentityFunc) *Static {
	return &Static{owners: owners, identity: identity}
}

// Owners returns the configured owners.
func (s *Static) Owners(context.Context) ([]string, error) {
	return s.owners, nil
}

// ActingIdentity returns the identity reported by the identity function.
func (s *Static) ActingIdentity(ctx context.Context) (string, error) {
	return s.identity(ctx)
}
