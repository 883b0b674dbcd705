package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"media-gallery-api/internal/config"
)

// Kind selects one of the fixed media URI roots.
type Kind string

const (
	Photos Kind = "photos"
	Thumbs Kind = "thumbs"
	Music  Kind = "music"
)

// ParseKind validates a URL path segment as a media kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Photos, Thumbs, Music:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown media kind: %q", s)
}

// Resolver maps a stored filename to the URL it is served from.
type Resolver interface {
	URL(ctx context.Context, kind Kind, name string) (string, error)
}

// NewResolver builds the resolver selected by configuration.
func NewResolver(cfg *config.Config) (Resolver, error) {
	switch strings.ToLower(cfg.Storage.Provider) {
	case "static":
		return &StaticResolver{
			Prefixes: map[Kind]string{
				Photos: cfg.Storage.PhotosURI,
				Thumbs: cfg.Storage.ThumbsURI,
				Music:  cfg.Storage.MusicURI,
			},
		}, nil
	case "s3":
		return newS3Resolver(cfg.Storage.S3), nil
	}
	return nil, fmt.Errorf("unsupported storage provider: %s", cfg.Storage.Provider)
}

// StaticResolver serves media from fixed URI prefixes; the URL is the prefix
// concatenated with the stored filename.
type StaticResolver struct {
	Prefixes map[Kind]string
}

func (r *StaticResolver) URL(_ context.Context, kind Kind, name string) (string, error) {
	prefix, ok := r.Prefixes[kind]
	if !ok {
		return "", fmt.Errorf("no URI prefix configured for %s", kind)
	}
	return prefix + name, nil
}

// S3Resolver serves media from a bucket through presigned GET URLs, with one
// key prefix per media kind.
type S3Resolver struct {
	client     *s3.Client
	bucket     string
	expiration time.Duration
}

func newS3Resolver(cfg config.S3Config) *S3Resolver {
	options := s3.Options{
		Region:      cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
	}
	if cfg.Endpoint != "" {
		options.BaseEndpoint = aws.String(cfg.Endpoint)
		options.UsePathStyle = true
	}

	return &S3Resolver{
		client:     s3.New(options),
		bucket:     cfg.BucketName,
		expiration: cfg.URLExpiration,
	}
}

func (r *S3Resolver) URL(ctx context.Context, kind Kind, name string) (string, error) {
	presignClient := s3.NewPresignClient(r.client)
	request, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(string(kind) + "/" + name),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = r.expiration
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %v", err)
	}
	return request.URL, nil
}
