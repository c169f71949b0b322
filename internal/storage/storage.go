package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Service stores user uploaded files in remote object storage.
type Service interface {
	// Upload writes body under key and returns the public URL of the object.
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	// Delete removes the object stored under key.
	Delete(ctx context.Context, key string) error
}

// PictureKey builds a collision free object key for a user's profile picture,
// keeping the extension of the uploaded file name.
func PictureKey(prefix string, userID int64, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	key := fmt.Sprintf("user-%d/%s%s", userID, uuid.NewString(), ext)
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return key
	}
	return prefix + "/" + key
}
