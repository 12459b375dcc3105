// Package access provides the identities used to decide whether the acting
// user may mutate the link sheet.
package access

import (
	"context"
	"fmt"

	"google.golang.org/api/drive/v3"
)

// DriveOwnership reads the owners of a Drive file and the acting user from
// the Drive API.
type DriveOwnership struct {
	svc    *drive.Service
	fileID string
}

// NewDriveOwnership checks ownership of the file with the given ID.
func NewDriveOwnership(svc *drive.Service, fileID string) *DriveOwnership {
	return &DriveOwnership{svc: svc, fileID: fileID}
}

// Owners returns the email addresses of the file's owners. Files on shared
// drives have none.
func (d *DriveOwnership) Owners(ctx context.Context) ([]string, error) {
	f, err := d.svc.Files.Get(d.fileID).
		Fields("owners(emailAddress)").
		SupportsAllDrives(true).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("owners of %s: %w", d.fileID, err)
	}
	owners := make([]string, 0, len(f.Owners))
	for _, o := range f.Owners {
		owners = append(owners, o.EmailAddress)
	}
	return owners, nil
}

// ActingIdentity returns the email address of the authenticated user.
func (d *DriveOwnership) ActingIdentity(ctx context.Context) (string, error) {
	about, err := d.svc.About.Get().Fields("user(emailAddress)").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("about: %w", err)
	}
	if about.User == nil {
		return "", fmt.Errorf("about: no user in response")
	}
	return about.User.EmailAddress, nil
}
