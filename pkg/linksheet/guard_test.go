package linksheet

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenAuth struct{}

func (brokenAuth) Owners(context.Context) ([]string, error) { return nil, errors.New("drive down") }
func (brokenAuth) ActingIdentity(context.Context) (string, error) {
	return "owner@example.com", nil
}

func TestGuardCheck(t *testing.T) {
	tests := []struct {
		name   string
		owners []string
		actor  string
		allow  bool
	}{
		{"owner", []string{"owner@example.com"}, "owner@example.com", true},
		{"case insensitive", []string{"Owner@Example.com"}, "owner@example.COM", true},
		{"co-owner", []string{"a@example.com", "b@example.com"}, "b@example.com", true},
		{"stranger", []string{"owner@example.com"}, "x@example.com", false},
		{"no owners", nil, "owner@example.com", false},
		{"anonymous", []string{""}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewGuard(fakeAuth{owners: tt.owners, actor: tt.actor}).Check(context.Background(), "nope")
			if tt.allow {
				assert.NoError(t, err)
				return
			}
			var authErr *AuthorizationError
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, "nope", authErr.Prompt)
		})
	}
}

func TestGuardProviderError(t *testing.T) {
	err := NewGuard(brokenAuth{}).Check(context.Background(), "nope")

	require.Error(t, err)
	var authErr *AuthorizationError
	assert.False(t, errors.As(err, &authErr))
}

func TestStorageErrorUnwrap(t *testing.T) {
	inner := errors.New("disk full")
	err := NewStorageError("Data", "flush", inner)

	assert.ErrorIs(t, err, inner)
	assert.Equal(t, `storage error in sheet "Data" (flush): disk full`, err.Error())
}
