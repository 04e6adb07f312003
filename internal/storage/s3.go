// Package storage keeps payment receipts in an S3-compatible bucket.
package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Options configures an S3Client.
type S3Options struct {
	// Endpoint is host[:port] of an S3-compatible server such as MinIO.
	// Empty means AWS S3 in Region.
	Endpoint      string
	Region        string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PublicBaseURL string
}

// S3Client wraps the S3 client for receipt uploads and pre-signed downloads.
type S3Client struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	bucket        string
	publicBaseURL string
}

// NewS3Client creates a new S3 client configured for the given endpoint.
func NewS3Client(opts S3Options) *S3Client {
	region := opts.Region
	if region == "" {
		region = "us-east-1" // MinIO requires a region
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(context.Background(), loadOpts...)
	if err != nil {
		log.Fatalf("Failed to load S3 config: %v", err)
	}

	endpointURL := endpointURL(opts.Endpoint, opts.UseSSL)
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpointURL != "" {
			o.BaseEndpoint = aws.String(endpointURL)
			o.UsePathStyle = true
		}
	})

	if endpointURL != "" {
		log.Printf("Using S3 endpoint %s, bucket %s", endpointURL, opts.Bucket)
	} else {
		log.Printf("Using AWS S3 bucket %s in %s", opts.Bucket, region)
	}

	return &S3Client{
		client:        client,
		presignClient: s3.NewPresignClient(client),
		bucket:        opts.Bucket,
		publicBaseURL: strings.TrimRight(opts.PublicBaseURL, "/"),
	}
}

func endpointURL(endpoint string, useSSL bool) string {
	if endpoint == "" {
		return ""
	}
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	if useSSL {
		return "https://" + endpoint
	}
	return "http://" + endpoint
}

// PutObject uploads an object to the bucket.
func (s *S3Client) PutObject(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// GetPresignedURL generates a pre-signed URL for downloading an object.
func (s *S3Client) GetPresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	request, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", err
	}

	return request.URL, nil
}

// PublicURL returns publicBaseURL/key when a public base URL is configured.
func (s *S3Client) PublicURL(key string) (string, bool) {
	if s.publicBaseURL == "" {
		return "", false
	}
	return s.publicBaseURL + "/" + key, true
}
