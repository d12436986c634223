package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"

	"kanboard/internal/domain/entity"
	"kanboard/internal/domain/repository"
	"kanboard/internal/infrastructure/serialization"
)

// Options configures an S3-compatible bucket (AWS, MinIO, ...)
type Options struct {
	Endpoint     string
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
}

// NewClient initializes an S3 client. A custom endpoint makes it usable
// against MinIO and other S3-compatible services.
func NewClient(ctx context.Context, opts Options) (*s3.Client, error) {
	if opts.Bucket == "" {
		return nil, errors.New("S3 bucket is required")
	}
	if opts.Endpoint != "" {
		if _, err := url.Parse(opts.Endpoint); err != nil {
			return nil, fmt.Errorf("invalid S3 endpoint: %w", err)
		}
	}

	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(opts.Region),
	}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.UsePathStyle
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
	}), nil
}

// SnapshotRepository stores the snapshot as one object, <name>.json
type SnapshotRepository struct {
	client *s3.Client
	bucket string
	key    string
	logger *zap.Logger
}

// Option configures a SnapshotRepository
type Option func(*SnapshotRepository)

// WithLogger reports records dropped while loading
func WithLogger(logger *zap.Logger) Option {
	return func(r *SnapshotRepository) {
		r.logger = logger
	}
}

// NewSnapshotRepository creates an S3-backed snapshot repository
func NewSnapshotRepository(client *s3.Client, bucket, boardName string, opts ...Option) repository.SnapshotRepository {
	r := &SnapshotRepository{
		client: client,
		bucket: bucket,
		key:    boardName + ".json",
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *SnapshotRepository) Load(ctx context.Context) ([]entity.Card, error) {
	resp, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, entity.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to load snapshot from S3: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot body: %w", err)
	}

	return serialization.DecodeSnapshot(data, "s3://"+r.bucket+"/"+r.key, r.logger)
}

func (r *SnapshotRepository) Save(ctx context.Context, cards []entity.Card) error {
	data, err := serialization.MarshalSnapshot(cards)
	if err != nil {
		return err
	}

	_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(r.bucket),
		Key:           aws.String(r.key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to save snapshot to S3: %w", err)
	}
	return nil
}

func isNotFound(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	code := apiErr.ErrorCode()
	return code == "NoSuchKey" || code == "NotFound"
}
