// Package publish pushes a finished index container to an S3-compatible
// bucket so it can be served over plain HTTPS.
package publish

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in)
	}
)

// S3Target describes where a container gets published. AccessKey/SecretKey
// may be empty, in which case the SDK's default credential chain applies.
// BaseEndpoint supports MinIO and other S3-compatible backends.
type S3Target struct {
	Bucket       string
	Key          string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

// Upload sends the container file at path to the target bucket. The object
// key defaults to the file's base name.
func Upload(ctx context.Context, target S3Target, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read container: %w", err)
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(target.Region)}
	if target.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(target.AccessKey, target.SecretKey, "")))
	}

	cfg, err := loadDefaultAWSConfig(ctx, loadOpts...)
	if err != nil {
		return fmt.Errorf("aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if target.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(target.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	key := target.Key
	if key == "" {
		key = filepath.Base(path)
	}

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(target.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/octet-stream"),
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", target.Bucket, key, err)
	}
	return nil
}
