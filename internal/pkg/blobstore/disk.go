package blobstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DiskStore is the local-development fallback used when no B2
// credentials are configured.
type DiskStore struct {
	dir     string
	baseURL string
}

func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll -> %w", err)
	}

	return &DiskStore{dir: dir, baseURL: baseURL}, nil
}

func (s *DiskStore) Put(ctx context.Context, name string, r io.Reader) (Descriptor, error) {
	key := objectKey(filepath.Base(name))

	f, err := os.Create(filepath.Join(s.dir, key))
	if err != nil {
		return Descriptor{}, fmt.Errorf("os.Create -> %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, r)
	if err != nil {
		return Descriptor{}, fmt.Errorf("io.Copy -> %w", err)
	}

	return Descriptor{
		URL:  s.baseURL + "/" + key,
		Name: name,
		Size: size,
	}, nil
}
