package config

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// ObjectStore wraps the S3 client used for externalized images.
type ObjectStore struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
	region   string
}

// Store is the shared object store. Nil when S3 is not configured; the
// image service degrades to inline values in that case.
var Store *ObjectStore

func InitStorage() {
	bucket := os.Getenv("S3_BUCKET")
	region := os.Getenv("AWS_REGION")
	if bucket == "" || region == "" {
		Logger.Info("object storage disabled (S3_BUCKET/AWS_REGION not set)")
		return
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	accessKey := os.Getenv("AWS_ACCESS_KEY_ID")
	secretKey := os.Getenv("AWS_SECRET_ACCESS_KEY")
	if accessKey != "" && secretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		Logger.Warn("object storage disabled", zap.Error(err))
		return
	}

	client := s3.NewFromConfig(awsCfg)
	Store = &ObjectStore{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		region:   region,
	}
	Logger.Info("object storage ready", zap.String("bucket", bucket), zap.String("region", region))
}

// Upload streams a reader to the bucket and returns the public URL.
func (s *ObjectStore) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}
