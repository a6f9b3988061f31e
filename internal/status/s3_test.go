package status

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	gotBucket string
	gotKey    string
	body      string
	err       error
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.gotBucket = *in.Bucket
	f.gotKey = *in.Key
	if f.err != nil {
		return nil, f.err
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.body))}, nil
}

func TestS3Store_Get(t *testing.T) {
	api := &fakeS3{body: `{"statusTrackingId":"abc","currentStep":"completed","progress":100,"completed":true}`}
	store := &S3Store{api: api, bucket: "intake-workflow-status"}

	doc, err := store.Get(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "intake-workflow-status", api.gotBucket)
	assert.Equal(t, "status/abc.json", api.gotKey)
	assert.Equal(t, "completed", doc.CurrentStep)
	assert.True(t, doc.Completed)
}

func TestS3Store_NotFound(t *testing.T) {
	store := &S3Store{api: &fakeS3{err: &types.NoSuchKey{}}, bucket: "b"}
	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestS3Store_Unavailable(t *testing.T) {
	store := &S3Store{api: &fakeS3{err: errors.New("dial tcp: connection refused")}, bucket: "b"}
	_, err := store.Get(context.Background(), "any")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestS3Store_Corrupt(t *testing.T) {
	store := &S3Store{api: &fakeS3{body: "{{{"}, bucket: "b"}
	_, err := store.Get(context.Background(), "any")
	assert.ErrorIs(t, err, ErrCorrupt)
}
