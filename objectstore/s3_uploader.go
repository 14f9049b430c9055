// Package objectstore uploads archive objects to S3.
package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const (
	defaultAttempts    = 3
	defaultTimeout     = 10 * time.Second
	initialBackoff     = 200 * time.Millisecond
	maxBackoff         = 2 * time.Second
	archiveContentType = "application/x-ndjson"
)

// putObjectAPI is the slice of the S3 client the uploader needs
type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader writes gzip JSONL objects into one bucket with bounded retries
type S3Uploader struct {
	client   putObjectAPI
	bucket   string
	timeout  time.Duration
	attempts int
}

// NewS3Uploader loads the default AWS credential chain for region.
// SDK-level retries are disabled; Upload retries itself.
func NewS3Uploader(ctx context.Context, region, bucket string) (*S3Uploader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.RetryMaxAttempts = 1
	})

	return newS3Uploader(client, bucket, defaultTimeout, defaultAttempts), nil
}

func newS3Uploader(client putObjectAPI, bucket string, timeout time.Duration, attempts int) *S3Uploader {
	if attempts <= 0 {
		attempts = 1
	}
	return &S3Uploader{
		client:   client,
		bucket:   bucket,
		timeout:  timeout,
		attempts: attempts,
	}
}

// Upload puts body under key. Each attempt has its own timeout and failed
// attempts back off exponentially; ctx cancellation stops immediately.
func (u *S3Uploader) Upload(ctx context.Context, key string, body []byte) error {
	var lastErr error
	backoff := initialBackoff

	for attempt := 1; attempt <= u.attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if lastErr = u.putObject(ctx, key, body); lastErr == nil {
			return nil
		}
		if attempt == u.attempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
			backoff = min(backoff*2, maxBackoff)
		}
	}

	return fmt.Errorf("failed to upload s3://%s/%s after %d attempts: %w", u.bucket, key, u.attempts, lastErr)
}

func (u *S3Uploader) putObject(ctx context.Context, key string, body []byte) error {
	attemptCtx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	// a fresh reader per attempt
	_, err := u.client.PutObject(attemptCtx, &s3.PutObjectInput{
		Bucket:          aws.String(u.bucket),
		Key:             aws.String(key),
		Body:            bytes.NewReader(body),
		ContentLength:   aws.Int64(int64(len(body))),
		ContentType:     aws.String(archiveContentType),
		ContentEncoding: aws.String("gzip"),
	})
	return err
}
