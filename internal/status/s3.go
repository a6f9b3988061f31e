package status

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/curalife/intake-backend/internal/domain"
)

// s3API is the slice of the S3 client the store needs. Kept narrow so tests
// can substitute a fake.
type s3API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Store reads status documents from an S3 bucket. The workflow engine
// writes objects at ObjectKey(trackingID); this store is read-only.
type S3Store struct {
	api    s3API
	bucket string
}

// NewS3Store builds an S3-backed store using the default AWS credential
// chain.
func NewS3Store(ctx context.Context, region, bucket string) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}
	return &S3Store{api: s3.NewFromConfig(cfg), bucket: bucket}, nil
}

// Get implements Store.
func (s *S3Store) Get(ctx context.Context, trackingID string) (*domain.StatusDocument, error) {
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(ObjectKey(trackingID)),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, trackingID)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer out.Body.Close()

	raw, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return decode(raw)
}
