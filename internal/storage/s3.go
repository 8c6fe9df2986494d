// Package storage provides the object-store and secret-store collaborators
// used by the triggered (Lambda) invocation surface.
package storage

import (
	"context"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rotisserie/eris"
)

// s3API is the subset of the S3 client used here, extracted so tests can
// substitute a fake.
type s3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ObjectStore moves dataset files between local disk and a bucket.
type ObjectStore interface {
	Download(ctx context.Context, bucket, key, localPath string) error
	Upload(ctx context.Context, localPath, bucket, key string) error
}

type s3Store struct {
	client s3API
}

// NewS3Store creates an ObjectStore backed by the given S3 client.
func NewS3Store(client *s3.Client) ObjectStore {
	return &s3Store{client: client}
}

func newS3StoreWithAPI(client s3API) ObjectStore {
	return &s3Store{client: client}
}

func (s *s3Store) Download(ctx context.Context, bucket, key, localPath string) error {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return eris.Wrapf(err, "storage: get s3://%s/%s", bucket, key)
	}
	defer out.Body.Close()

	f, err := os.Create(localPath)
	if err != nil {
		return eris.Wrap(err, "storage: create local file")
	}
	defer f.Close()

	if _, err := io.Copy(f, out.Body); err != nil {
		return eris.Wrap(err, "storage: write local file")
	}
	return nil
}

func (s *s3Store) Upload(ctx context.Context, localPath, bucket, key string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return eris.Wrap(err, "storage: open local file")
	}
	defer f.Close()

	if _, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   f,
	}); err != nil {
		return eris.Wrapf(err, "storage: put s3://%s/%s", bucket, key)
	}
	return nil
}
