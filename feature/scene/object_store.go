package scene

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"collbool/core/storage"

	"github.com/minio/minio-go/v7"
)

// ObjectStore keeps scene documents as JSON objects in a bucket under the
// configured scene prefix.
type ObjectStore struct {
	client storage.Client
	cfg    storage.Config
}

// NewObjectStore creates a store backed by client.
func NewObjectStore(client storage.Client, cfg storage.Config) *ObjectStore {
	return &ObjectStore{client: client, cfg: cfg}
}

func (s *ObjectStore) key(name string) string {
	return s.cfg.SceneKey(name, FormatJSON.Ext())
}

func (s *ObjectStore) Load(ctx context.Context, name string) (*Document, error) {
	data, err := storage.ReadObject(ctx, s.client, s.cfg.Bucket, s.key(name))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrSceneNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to download scene %s: %w", name, err)
	}
	return Decode(data, FormatJSON)
}

func (s *ObjectStore) Save(ctx context.Context, doc *Document) error {
	data, err := Encode(doc, FormatJSON)
	if err != nil {
		return err
	}
	_, err = s.client.PutObject(ctx, s.cfg.Bucket, s.key(doc.Name), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to upload scene %s: %w", doc.Name, err)
	}
	return nil
}

func (s *ObjectStore) List(ctx context.Context) ([]string, error) {
	prefix := s.cfg.Prefix()
	var names []string
	for obj := range s.client.ListObjects(ctx, s.cfg.Bucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list scenes: %w", obj.Err)
		}
		name := strings.TrimPrefix(obj.Key, prefix)
		if !strings.HasSuffix(name, FormatJSON.Ext()) || strings.Contains(name, "/") {
			continue
		}
		names = append(names, strings.TrimSuffix(name, FormatJSON.Ext()))
	}
	sort.Strings(names)
	return names, nil
}

func (s *ObjectStore) Delete(ctx context.Context, name string) error {
	if err := s.client.RemoveObject(ctx, s.cfg.Bucket, s.key(name), minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete scene %s: %w", name, err)
	}
	return nil
}
