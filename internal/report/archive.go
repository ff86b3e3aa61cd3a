// AngelaMos | 2026
// archive.go

package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/carterperez-dev/asset-portal/internal/config"
	"github.com/carterperez-dev/asset-portal/internal/core"
)

var ErrArchiveDisabled = errors.New("report archive is disabled")

type Archiver interface {
	Put(ctx context.Context, key, contentType string, body []byte) error
}

// ArchiveKey names an archived report: reports/<kind>/<date>-<unixnano>.<ext>.
func ArchiveKey(kind Kind, at time.Time, ext string) string {
	return fmt.Sprintf(
		"reports/%s/%s-%d.%s",
		kind,
		core.DateOf(at),
		at.UnixNano(),
		ext,
	)
}

type objectPutter interface {
	PutObject(
		ctx context.Context,
		params *s3.PutObjectInput,
		optFns ...func(*s3.Options),
	) (*s3.PutObjectOutput, error)
}

type s3Archiver struct {
	client objectPutter
	bucket string
}

// NewS3Archiver builds an archiver for AWS S3 or any S3 compatible store.
// Static credentials are used when configured, otherwise the default AWS
// credential chain.
func NewS3Archiver(ctx context.Context, cfg config.ArchiveConfig) (Archiver, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &s3Archiver{client: client, bucket: cfg.Bucket}, nil
}

func (a *s3Archiver) Put(
	ctx context.Context,
	key, contentType string,
	body []byte,
) error {
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}
