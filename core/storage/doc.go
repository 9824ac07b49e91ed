// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the Client interface so scene documents
// can live in AWS S3 or a self-hosted MinIO, and so tests can use the
// testify mock in core/storage/mocks.
//
// # Helpers
//
//   - EnsureBucket: creates the configured bucket on first use.
//   - ReadObject: downloads a whole object and maps a missing key to ErrNotFound.
//   - Config.SceneKey: builds the object key of a scene document under ScenePrefix.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	data, err := storage.ReadObject(ctx, client, cfg.Storage.Bucket, cfg.Storage.SceneKey("hull", ".json"))
package storage
