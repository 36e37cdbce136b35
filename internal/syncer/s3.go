package syncer

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"daybook/internal/config"
)

// Environment variables for S3 credentials when no SDK profile is used.
// Secrets are never read from the config document.
const (
	envS3AccessKey = "DAYBOOK_S3_ACCESS_KEY"
	envS3SecretKey = "DAYBOOK_S3_SECRET_KEY"
)

type s3Client interface {
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, opts ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	CopyObject(ctx context.Context, in *s3.CopyObjectInput, opts ...func(*s3.Options)) (*s3.CopyObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3 uploads archives to an S3-compatible object store.
type S3 struct {
	cfg config.S3Backend

	// newClient is swappable in tests.
	newClient func(ctx context.Context) (s3Client, error)
}

func NewS3(cfg config.S3Backend) *S3 {
	b := &S3{cfg: cfg}
	b.newClient = b.defaultClient
	return b
}

func (b *S3) Kind() string { return config.BackendS3 }

func (b *S3) defaultClient(ctx context.Context) (s3Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if b.cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(b.cfg.Region))
	}
	if b.cfg.Profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(b.cfg.Profile))
	}
	if access, secret := os.Getenv(envS3AccessKey), os.Getenv(envS3SecretKey); access != "" && secret != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(access, secret, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if b.cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(b.cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return client, nil
}

func (b *S3) key(archivePath string) string {
	prefix := strings.Trim(b.cfg.Prefix, "/")
	if prefix == "" {
		return archiveName(archivePath)
	}
	return prefix + "/" + archiveName(archivePath)
}

func (b *S3) destination(archivePath string) string {
	return fmt.Sprintf("s3://%s/%s", b.cfg.Bucket, b.key(archivePath))
}

func (b *S3) Preview(ctx context.Context, archivePath string) (Preview, error) {
	if b.cfg.Bucket == "" {
		return Preview{}, fmt.Errorf("s3 bucket is not configured")
	}
	size, err := archiveSize(archivePath)
	if err != nil {
		return Preview{}, err
	}

	p := Preview{
		Backend:     b.Kind(),
		Destination: b.destination(archivePath),
		Size:        size,
	}

	client, err := b.newClient(ctx)
	if err != nil {
		return Preview{}, err
	}
	_, headErr := client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(b.cfg.Bucket),
		Key:    aws.String(b.key(archivePath)),
	})
	// Any head failure (missing object, offline, no permission) is treated
	// as "would not overwrite" rather than blocking the preview.
	p.WouldOverwrite = headErr == nil
	return p, nil
}

// Transfer uploads to a staging key and commits with a server-side copy, so
// an interrupted upload never leaves a complete-looking object at the final
// key.
func (b *S3) Transfer(ctx context.Context, archivePath string) (Result, error) {
	if b.cfg.Bucket == "" {
		return Result{}, fmt.Errorf("s3 bucket is not configured")
	}
	size, err := archiveSize(archivePath)
	if err != nil {
		return Result{}, err
	}

	client, err := b.newClient(ctx)
	if err != nil {
		return Result{}, err
	}

	key := b.key(archivePath)
	stagingKey := key + ".part"

	f, err := os.Open(archivePath)
	if err != nil {
		return Result{}, fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	if _, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(b.cfg.Bucket),
		Key:           aws.String(stagingKey),
		Body:          f,
		ContentLength: aws.Int64(size),
	}); err != nil {
		return Result{}, fmt.Errorf("uploading to %s: %w", stagingKey, err)
	}

	if _, err := client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(b.cfg.Bucket),
		Key:        aws.String(key),
		CopySource: aws.String(url.PathEscape(b.cfg.Bucket + "/" + stagingKey)),
	}); err != nil {
		return Result{}, fmt.Errorf("committing %s: %w", key, err)
	}

	if _, err := client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.cfg.Bucket),
		Key:    aws.String(stagingKey),
	}); err != nil {
		// The final object is already committed; a leftover staging object
		// is harmless.
		return Result{Backend: b.Kind(), Destination: b.destination(archivePath), Size: size}, nil
	}

	return Result{Backend: b.Kind(), Destination: b.destination(archivePath), Size: size}, nil
}
