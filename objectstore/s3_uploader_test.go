package objectstore

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutObject struct {
	mu       sync.Mutex
	failures int
	calls    int
	keys     []string
	bodies   [][]byte
	inputs   []*s3.PutObjectInput
}

func (f *fakePutObject) PutObject(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.bodies = append(f.bodies, body)
	f.keys = append(f.keys, aws.ToString(params.Key))
	f.inputs = append(f.inputs, params)

	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("attempt without deadline")
	}
	if f.calls <= f.failures {
		return nil, errors.New("SlowDown")
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3Uploader_UploadSucceeds(t *testing.T) {
	fake := &fakePutObject{}
	uploader := newS3Uploader(fake, "threat-archive", time.Second, 3)

	require.NoError(t, uploader.Upload(context.Background(), "honeypot/threats/a.jsonl.gz", []byte("payload")))

	require.Equal(t, 1, fake.calls)
	input := fake.inputs[0]
	assert.Equal(t, "threat-archive", aws.ToString(input.Bucket))
	assert.Equal(t, "honeypot/threats/a.jsonl.gz", aws.ToString(input.Key))
	assert.Equal(t, int64(7), aws.ToInt64(input.ContentLength))
	assert.Equal(t, "gzip", aws.ToString(input.ContentEncoding))
}

func TestS3Uploader_RetriesWithFreshBody(t *testing.T) {
	fake := &fakePutObject{failures: 2}
	uploader := newS3Uploader(fake, "bucket", time.Second, 3)

	require.NoError(t, uploader.Upload(context.Background(), "k", []byte("payload")))

	assert.Equal(t, 3, fake.calls)
	for _, body := range fake.bodies {
		assert.Equal(t, []byte("payload"), body)
	}
}

func TestS3Uploader_GivesUpAfterAttempts(t *testing.T) {
	fake := &fakePutObject{failures: 10}
	uploader := newS3Uploader(fake, "bucket", time.Second, 2)

	err := uploader.Upload(context.Background(), "k", []byte("x"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 attempts")
	assert.Contains(t, err.Error(), "SlowDown")
	assert.Equal(t, 2, fake.calls)
}

func TestS3Uploader_CanceledContext(t *testing.T) {
	fake := &fakePutObject{}
	uploader := newS3Uploader(fake, "bucket", time.Second, 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, uploader.Upload(ctx, "k", []byte("x")), context.Canceled)
	assert.Equal(t, 0, fake.calls)
}
