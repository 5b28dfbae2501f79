package minio

import (
	"context"
	"fmt"
	"io"
	"strings"

	"videotube/pkg/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

type Client struct {
	client   *minio.Client
	bucket   string
	endpoint string
	secure   bool
}

func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	endpoint := strings.TrimPrefix(cfg.AWSEndpoint, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")
	if endpoint == "" {
		return nil, errors.New("AWS_ENDPOINT is required for the minio storage driver")
	}
	secure := cfg.S3UseSSL != "false"

	mc, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		Secure: secure,
		Region: cfg.AWSRegion,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create minio client")
	}

	exists, err := mc.BucketExists(ctx, cfg.S3BucketName)
	if err != nil {
		return nil, errors.Wrap(err, "check bucket")
	}
	if !exists {
		if err := mc.MakeBucket(ctx, cfg.S3BucketName, minio.MakeBucketOptions{Region: cfg.AWSRegion}); err != nil {
			return nil, errors.Wrap(err, "create bucket")
		}
	}

	return &Client{client: mc, bucket: cfg.S3BucketName, endpoint: endpoint, secure: secure}, nil
}

func (c *Client) Upload(ctx context.Context, key string, body io.ReadSeeker, size int64, contentType string) (string, error) {
	_, err := c.client.PutObject(ctx, c.bucket, key, body, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrap(err, "upload file to minio")
	}
	return c.objectURL(key), nil
}

func (c *Client) Delete(ctx context.Context, key string) error {
	if err := c.client.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return errors.Wrap(err, "delete file from minio")
	}
	return nil
}

func (c *Client) KeyFromURL(raw string) (string, error) {
	prefix := c.objectURL("")
	key := strings.TrimPrefix(raw, prefix)
	if key == raw || key == "" {
		return "", errors.Errorf("object URL %q is not served by bucket %s", raw, c.bucket)
	}
	return key, nil
}

func (c *Client) objectURL(key string) string {
	protocol := "http"
	if c.secure {
		protocol = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", protocol, c.endpoint, c.bucket, key)
}
