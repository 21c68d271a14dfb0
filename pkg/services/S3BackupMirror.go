package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/adampresley/adamgokit/s3"
	"github.com/adampresley/adamgokit/s3/createbucketoptions"
	"github.com/adampresley/adamgokit/s3/getoptions"
	"github.com/adampresley/adamgokit/s3/listoptions"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type S3BackupMirrorConfig struct {
	Bucket   string
	Region   string
	S3Client s3.S3Client
}

// S3BackupMirror stores backup documents in an S3 bucket.
type S3BackupMirror struct {
	bucket   string
	region   string
	s3Client s3.S3Client
}

func NewS3BackupMirror(config S3BackupMirrorConfig) S3BackupMirror {
	return S3BackupMirror{
		bucket:   config.Bucket,
		region:   config.Region,
		s3Client: config.S3Client,
	}
}

// EnsureBucket creates the mirror bucket when it does not exist yet.
func (m S3BackupMirror) EnsureBucket() error {
	var (
		err    error
		exists bool
	)

	if exists, err = m.s3Client.BucketExists(m.bucket); err != nil {
		return fmt.Errorf("error ensuring bucket '%s' exists: %w", m.bucket, err)
	}

	if exists {
		return nil
	}

	slog.Info("creating backup bucket", "bucket", m.bucket)

	if err = m.s3Client.CreateBucket(m.bucket, createbucketoptions.WithRegion(m.region)); err != nil {
		return fmt.Errorf("error creating bucket '%s': %w", m.bucket, err)
	}

	return nil
}

func (m S3BackupMirror) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := m.s3Client.Put(m.bucket, key, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("error uploading backup to bucket '%s': %w", m.bucket, err)
	}

	return nil
}

func (m S3BackupMirror) Get(ctx context.Context, key string) ([]byte, error) {
	var (
		err    error
		object s3.GetObjectResponse
		data   []byte
	)

	object, err = m.s3Client.Get(
		m.bucket,
		key,
		getoptions.WithContext(ctx),
	)

	if err != nil {
		return nil, fmt.Errorf("error getting backup '%s' from bucket '%s': %w", key, m.bucket, err)
	}

	defer object.Body.Close()

	if data, err = io.ReadAll(object.Body); err != nil {
		return nil, fmt.Errorf("error reading backup '%s': %w", key, err)
	}

	return data, nil
}

/*
LatestKey returns the newest backup key under prefix. Mirrored keys start
with a UTC timestamp so the greatest key is the newest backup.
*/
func (m S3BackupMirror) LatestKey(ctx context.Context, prefix string) (string, error) {
	var (
		err      error
		response s3.ListResponse
	)

	if err = ctx.Err(); err != nil {
		return "", err
	}

	response, err = m.s3Client.List(
		m.bucket,
		prefix,
		listoptions.WithGetAll(),
		listoptions.WithFilter(func(obj types.Object) bool {
			return strings.HasSuffix(strings.ToLower(aws.ToString(obj.Key)), ".json")
		}),
	)

	if err != nil {
		return "", fmt.Errorf("error listing backups in bucket '%s': %w", m.bucket, err)
	}

	latest := ""

	for _, object := range response.Objects {
		if object.Key > latest {
			latest = object.Key
		}
	}

	if latest == "" {
		return "", fmt.Errorf("no backups found in bucket '%s' under '%s'", m.bucket, prefix)
	}

	return latest, nil
}
