package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/errs"
)

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Uploader stores admin uploads and snapshot exports in S3.
type Uploader struct {
	client        objectPutter
	bucket        string
	publicBaseURL string
}

// NewUploaderFromConfig returns nil when S3_BUCKET is unset.
func NewUploaderFromConfig(ctx context.Context, cfg map[string]string) (*Uploader, error) {
	bucket := config.GetString(cfg, "S3_BUCKET", "")
	if bucket == "" {
		return nil, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	baseURL := config.GetString(cfg, "S3_PUBLIC_BASE_URL", fmt.Sprintf("https://%s.s3.amazonaws.com", bucket))
	return NewUploader(s3.NewFromConfig(awsCfg), bucket, baseURL), nil
}

func NewUploader(client objectPutter, bucket, publicBaseURL string) *Uploader {
	return &Uploader{client: client, bucket: bucket, publicBaseURL: strings.TrimRight(publicBaseURL, "/")}
}

// Upload stores body under prefix with a fresh name that keeps the original extension.
// It returns the public URL of the object.
func (u *Uploader) Upload(ctx context.Context, prefix, filename, contentType string, body io.Reader) (string, error) {
	if u == nil {
		return "", errs.NewServiceDisabledError("Uploads")
	}
	key := path.Join(prefix, uuid.NewString()+strings.ToLower(path.Ext(filename)))
	return u.Put(ctx, key, contentType, body)
}

// Put stores body under key as is.
func (u *Uploader) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	if u == nil {
		return "", errs.NewServiceDisabledError("Uploads")
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := u.client.PutObject(ctx, input); err != nil {
		return "", errs.NewServiceUnavailableError("S3", err)
	}

	url := u.publicBaseURL + "/" + key
	log.Info().Str("key", key).Msg("Uploaded object to S3")
	return url, nil
}
