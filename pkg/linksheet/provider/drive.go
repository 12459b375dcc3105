package provider

import (
	"context"
	"fmt"

	"google.golang.org/api/drive/v3"
)

// Drive looks up document names in Google Drive.
type Drive struct {
	svc *drive.Service
}

// NewDrive wraps a Drive service.
func NewDrive(svc *drive.Service) *Drive {
	return &Drive{svc: svc}
}

// DocumentTitle returns the name of the file with the given id. Files the
// caller cannot see and resource types Drive does not serve (forms, for
// instance) return an error.
func (d *Drive) DocumentTitle(ctx context.Context, id string) (string, error) {
	f, err := d.svc.Files.Get(id).
		Fields("name").
		SupportsAllDrives(true).
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("drive file %s: %w", id, err)
	}
	return f.Name, nil
}
