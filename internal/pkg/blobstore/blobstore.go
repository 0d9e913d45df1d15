// Package blobstore is the content store for file submissions. The
// portal never inspects stored bytes again; it only hands the resulting
// descriptor back to the client for use in a submission.
package blobstore

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/kurin/blazer/b2"
)

type Descriptor struct {
	URL  string `json:"url"`
	Name string `json:"name"`
	Size int64  `json:"size"`
}

type Store interface {
	Put(ctx context.Context, name string, r io.Reader) (Descriptor, error)
}

type B2Store struct {
	bucket *b2.Bucket
}

func NewB2Store(ctx context.Context, keyID, key, bucketName string) (*B2Store, error) {
	client, err := b2.NewClient(ctx, keyID, key)
	if err != nil {
		return nil, fmt.Errorf("b2.NewClient -> %w", err)
	}

	bucket, err := client.Bucket(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket -> %w", err)
	}

	return &B2Store{bucket: bucket}, nil
}

func (s *B2Store) Put(ctx context.Context, name string, r io.Reader) (Descriptor, error) {
	key := objectKey(name)

	obj := s.bucket.Object(key)
	w := obj.NewWriter(ctx)

	size, err := io.Copy(w, r)
	if err != nil {
		w.Close()

		return Descriptor{}, fmt.Errorf("io.Copy -> %w", err)
	}
	if err = w.Close(); err != nil {
		return Descriptor{}, fmt.Errorf("w.Close -> %w", err)
	}

	return Descriptor{
		URL:  fileURL(s.bucket.BaseURL(), s.bucket.Name(), key),
		Name: name,
		Size: size,
	}, nil
}

// fileURL builds the public download URL for an object, the
// "<base>/file/<bucket>/<key>" form B2 serves bucket files under.
func fileURL(baseURL, bucketName, key string) string {
	return fmt.Sprintf("%s/file/%s/%s", baseURL, bucketName, key)
}

// objectKey prefixes the original name with a timestamp so repeated
// uploads of the same filename never collide.
func objectKey(name string) string {
	return fmt.Sprintf("%d-%s", time.Now().UnixNano(), name)
}
