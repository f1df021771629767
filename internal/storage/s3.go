package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ajadmin/ajadmin/internal/config"
)

// s3API is the part of the S3 client the store uses.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3 stores images as objects of a bucket.
type S3 struct {
	client s3API
	bucket string
	prefix string
}

// NewS3 creates an S3 store. Credentials come from the default AWS chain.
func NewS3(ctx context.Context, cfg config.S3) (*S3, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}

		o.UsePathStyle = cfg.UsePathStyle
	})

	return &S3{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

func (s *S3) key(dir, name string) string {
	return path.Join(s.prefix, dir, name)
}

// Save uploads r as prefix/dir/name.
func (s *S3) Save(ctx context.Context, dir, name string, r io.Reader) error {
	if err := checkName(name); err != nil {
		return err
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(dir, name)),
		Body:   r,
	}

	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		input.ContentType = aws.String(ct)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("failed to upload image to s3: %w", err)
	}

	return nil
}

// Remove deletes prefix/dir/name. S3 reports no error for missing keys.
func (s *S3) Remove(ctx context.Context, dir, name string) error {
	if err := checkName(name); err != nil {
		return err
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(dir, name)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete image from s3: %w", err)
	}

	return nil
}
