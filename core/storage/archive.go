package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
)

// Archive stores JSON payloads in a bucket.
type Archive struct {
	client Client
	bucket string
}

// NewArchive creates an archive over the given bucket.
func NewArchive(client Client, bucket string) *Archive {
	return &Archive{client: client, bucket: bucket}
}

// Bucket returns the bucket name.
func (a *Archive) Bucket() string { return a.bucket }

// EnsureBucket creates the bucket when it does not exist.
func (a *Archive) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", a.bucket, err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", a.bucket, err)
	}
	return nil
}

// Put marshals v to JSON and uploads it under key.
func (a *Archive) Put(ctx context.Context, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	_, err = a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(raw), int64(len(raw)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

// Get downloads key and returns its raw JSON.
func (a *Archive) Get(ctx context.Context, key string) (json.RawMessage, error) {
	obj, err := a.client.GetObject(ctx, a.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	defer obj.Close()

	raw, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("object %s is not valid JSON", key)
	}
	return raw, nil
}

// List returns the keys under prefix, sorted.
func (a *Archive) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", prefix, obj.Err)
		}
		keys = append(keys, obj.Key)
	}
	sort.Strings(keys)
	return keys, nil
}

func categorySegment(category string) string {
	category = strings.Trim(strings.ReplaceAll(category, "/", "_"), ".")
	if category == "" {
		return "unknown"
	}
	return category
}

// Key builds logs/<category>/<yyyy>/<mm>/<dd>/<id>.json in UTC.
func Key(category string, at time.Time, id string) string {
	at = at.UTC()
	return path.Join("logs", categorySegment(category), at.Format("2006"), at.Format("01"), at.Format("02"), id+".json")
}

// CategoryPrefix is the key prefix shared by every Key of category.
func CategoryPrefix(category string) string {
	return "logs/" + categorySegment(category) + "/"
}
