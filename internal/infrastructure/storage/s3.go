// Package storage handles photo blobs. Uploads never pass through the API
// server: clients receive a presigned S3 PUT URL and upload directly.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const presignTTL = 5 * time.Minute

type PhotoStorage struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
}

func NewPhotoStorage(ctx context.Context, region, bucket string) (*PhotoStorage, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	client := s3.NewFromConfig(cfg)
	return &PhotoStorage{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    bucket,
	}, nil
}

// UploadURL returns a presigned PUT URL and the storage key the photo will
// live under once uploaded.
func (s *PhotoStorage) UploadURL(ctx context.Context, profileID, contentType string) (url, key string, err error) {
	key = fmt.Sprintf("photos/%s/%s", profileID, uuid.NewString())
	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(presignTTL))
	if err != nil {
		return "", "", err
	}
	return req.URL, key, nil
}

// ReadURL returns a presigned GET URL for a stored photo.
func (s *PhotoStorage) ReadURL(ctx context.Context, key string) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignTTL))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

// Delete removes a stored photo object.
func (s *PhotoStorage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}
