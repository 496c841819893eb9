package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"contentgenius/internal/app/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

// Document is a rendered export ready to be stored.
type Document struct {
	Body        []byte
	Extension   string
	ContentType string
}

// MinIOClient archives exported documents and hands out presigned links.
type MinIOClient struct {
	client     *minio.Client
	bucketName string
	urlExpiry  time.Duration
}

// NewMinIOClient connects to MinIO and creates the bucket when it is missing.
func NewMinIOClient(ctx context.Context, cfg config.MinIOConfig) (*MinIOClient, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logrus.Infof("Bucket %s created successfully", cfg.Bucket)
	}

	expiry := cfg.URLExpiry
	if expiry <= 0 {
		expiry = time.Hour
	}

	return &MinIOClient{
		client:     client,
		bucketName: cfg.Bucket,
		urlExpiry:  expiry,
	}, nil
}

// ObjectName places every export of an order under its own prefix.
func ObjectName(orderID uint, ext string, now time.Time) string {
	return fmt.Sprintf("orders/%d/content_%s_%d.%s", orderID, uuid.New().String()[:8], now.Unix(), ext)
}

// Put uploads the document and returns a presigned download URL.
func (m *MinIOClient) Put(ctx context.Context, orderID uint, doc Document) (string, error) {
	name := ObjectName(orderID, doc.Extension, time.Now())

	_, err := m.client.PutObject(ctx, m.bucketName, name, bytes.NewReader(doc.Body), int64(len(doc.Body)), minio.PutObjectOptions{
		ContentType: doc.ContentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	logrus.Infof("File %s uploaded successfully", name)

	url, err := m.client.PresignedGetObject(ctx, m.bucketName, name, m.urlExpiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return url.String(), nil
}
