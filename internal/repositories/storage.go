package repositories

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	s3manager "github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	S3Client   *s3.Client
	bucketName string
)

func GetS3Client() (*s3.Client, error) {
	if S3Client != nil {
		return S3Client, nil
	}

	endpoint := os.Getenv("STORAGE_S3_ENDPOINT")
	accessKey := os.Getenv("STORAGE_S3_ACCESSKEYID")
	secretKey := os.Getenv("STORAGE_S3_SECRETKEY")
	region := os.Getenv("STORAGE_S3_REGION")

	if endpoint == "" {
		return nil, fmt.Errorf("STORAGE_S3_ENDPOINT is not set")
	}

	cfg, err := config.LoadDefaultConfig(
		context.Background(),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
		config.WithBaseEndpoint(endpoint),
	)
	if err != nil {
		return nil, err
	}

	S3Client = s3.NewFromConfig(cfg, func(o *s3.Options) {
		// Required for Garage, MinIO, Ceph, etc.
		o.UsePathStyle = false
		o.Region = region
	})

	return S3Client, nil
}

func CreateContentBucket() error {
	bucketName = os.Getenv("STORAGE_S3_BUCKET")
	client, err := GetS3Client()
	if err != nil {
		return err
	}

	_, headErr := client.HeadBucket(context.Background(), &s3.HeadBucketInput{
		Bucket: aws.String(bucketName),
	})
	if headErr == nil {
		return nil // exists
	}

	_, err = client.CreateBucket(context.Background(), &s3.CreateBucketInput{
		Bucket: aws.String(bucketName),
	})

	if err != nil {
		return err
	}

	return nil
}

// UploadContentFile streams an already-staged file into the bucket under
// objectKey and returns the public object URL. The caller decides the stored
// content type (uploaded HTML is forced to a binary type upstream).
func UploadContentFile(ctx context.Context, body io.Reader, size int64, objectKey string, contentType string) (string, error) {
	client, err := GetS3Client()
	if err != nil {
		return "", err
	}

	uploader := s3manager.NewUploader(client)

	_, err = uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucketName),
		Key:           aws.String(objectKey),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: &size,
	})

	if err != nil {
		return "", err
	}

	endpoint := os.Getenv("STORAGE_S3_ENDPOINT")
	objectURL := fmt.Sprintf("%s/%s/%s", endpoint, bucketName, objectKey)

	return objectURL, nil
}

func GetContentFile(ctx context.Context, objectKey string) (*s3.GetObjectOutput, error) {
	client, err := GetS3Client()
	if err != nil {
		return nil, err
	}

	resp, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(objectKey),
	})

	if err != nil {
		return nil, err
	}

	return resp, nil
}

func DeleteContentFile(ctx context.Context, objectKey string) error {
	if objectKey == "" {
		return nil
	}

	client, err := GetS3Client()
	if err != nil {
		return err
	}

	_, err = client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(objectKey),
	})

	return err
}
