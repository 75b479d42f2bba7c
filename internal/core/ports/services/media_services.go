package services

import "context"

// MediaStorageSvc uploads local files to the media bucket and returns their
// public URL. Callers own the lifecycle of the local file.
type MediaStorageSvc interface {
	Upload(ctx context.Context, localPath string, keyPrefix string) (string, error)
}
