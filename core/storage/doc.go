// Package storage archives relay payloads in S3-compatible object storage.
//
// Client is a narrow view over the MinIO Go client so that tests can use
// the mock in core/storage/mocks. Archive stores JSON documents under
// date-partitioned keys built by Key:
//
//	logs/<category>/<yyyy>/<mm>/<dd>/<ray-id>.json
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	archive := storage.NewArchive(client, cfg.Storage.Bucket)
//	err = archive.Put(ctx, storage.Key("transaction", time.Now(), rayID), payload)
package storage
