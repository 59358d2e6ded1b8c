package minio

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/dtroode/fuelsupply-server/internal/model"
)

// objectAPI is the subset of *minio.Client used by Archive.
type objectAPI interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucket, key string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	StatObject(ctx context.Context, bucket, key string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
}

// objectGetter opens an object for reading. Kept apart from objectAPI because
// *minio.Object cannot be built outside the SDK.
type objectGetter func(ctx context.Context, bucket, key string) (io.ReadCloser, error)

var _ model.Storage = (*Archive)(nil)

// Archive stores rendered documents in a single bucket.
type Archive struct {
	api    objectAPI
	get    objectGetter
	bucket string
}

// Options contains connection parameters.
type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Connect creates a MinIO client and makes sure the document bucket exists.
func Connect(ctx context.Context, opts Options) (*Archive, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	get := func(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
		return client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	}
	return newArchive(ctx, client, get, opts.Bucket)
}

func newArchive(ctx context.Context, api objectAPI, get objectGetter, bucket string) (*Archive, error) {
	a := &Archive{api: api, get: get, bucket: bucket}

	if err := a.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	return a, nil
}

func (a *Archive) ensureBucket(ctx context.Context) error {
	exists, err := a.api.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}

	if err := a.api.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Upload stores an object. Use size -1 when unknown.
func (a *Archive) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := a.api.PutObject(ctx, a.bucket, key, reader, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}
	return nil
}

// Download opens an object for reading. Missing keys map to model.ErrNotFound.
func (a *Archive) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	ok, err := a.Exists(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, model.ErrNotFound
	}

	obj, err := a.get(ctx, a.bucket, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	return obj, nil
}

func (a *Archive) Exists(ctx context.Context, key string) (bool, error) {
	_, err := a.api.StatObject(ctx, a.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat object: %w", err)
	}
	return true, nil
}
