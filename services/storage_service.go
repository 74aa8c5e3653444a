package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appConfig "github.com/emirhan-aydin/shopstack-api/config"
)

// ImageStorage defines the interface for product image storage operations
type ImageStorage interface {
	UploadProductImage(productID uint, fileHeader *multipart.FileHeader) (string, error)
	GetImageURL(key string) (string, error)
	DeleteImage(key string) error
}

// S3Storage stores product images in an AWS S3 bucket
type S3Storage struct {
	client *s3.Client
	bucket string
}

var imageStorageInstance ImageStorage

// InitImageStorage initializes the S3-backed image storage with AWS credentials
func InitImageStorage() (ImageStorage, error) {
	cfg := appConfig.GetConfig()

	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.AWSRegion),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig)

	imageStorageInstance = &S3Storage{
		client: client,
		bucket: cfg.AWSS3Bucket,
	}

	return imageStorageInstance, nil
}

// GetImageStorage returns the initialized image storage instance
func GetImageStorage() ImageStorage {
	return imageStorageInstance
}

// SetImageStorage sets the image storage instance (primarily for testing)
func SetImageStorage(storage ImageStorage) {
	imageStorageInstance = storage
}

// UploadProductImage uploads a product image to S3 and returns the object key.
// Keys are namespaced per product: products/{id}/{timestamp}_{filename}
func (s *S3Storage) UploadProductImage(productID uint, fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Printf("warning: failed to close file: %v", closeErr)
		}
	}()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	filename := filepath.Base(fileHeader.Filename)
	key := fmt.Sprintf("products/%d/%d_%s", productID, time.Now().Unix(), filename)

	_, err = s.client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(imageContentType(filename)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return key, nil
}

// GetImageURL generates a presigned URL for accessing a stored image.
// The URL expires after 24 hours.
func (s *S3Storage) GetImageURL(key string) (string, error) {
	if key == "" {
		return "", nil
	}

	presignClient := s3.NewPresignClient(s.client)

	request, err := presignClient.PresignGetObject(context.TODO(), &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = 24 * time.Hour
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return request.URL, nil
}

// DeleteImage removes a stored image from S3
func (s *S3Storage) DeleteImage(key string) error {
	if key == "" {
		return nil
	}

	_, err := s.client.DeleteObject(context.TODO(), &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete image from S3: %w", err)
	}

	return nil
}

// imageContentType maps an image filename to its MIME type
func imageContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "image/png"
	}
}
