package provider

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

// GoogleClientOption returns the client option authenticating Google API
// services. With credentialsFile empty, Application Default Credentials
// are used.
func GoogleClientOption(ctx context.Context, credentialsFile string, scopes ...string) (option.ClientOption, error) {
	if credentialsFile == "" {
		creds, err := google.FindDefaultCredentials(ctx, scopes...)
		if err != nil {
			return nil, fmt.Errorf("failed to find default credentials: %w", err)
		}
		return option.WithTokenSource(creds.TokenSource), nil
	}

	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}
	return option.WithTokenSource(creds.TokenSource), nil
}
