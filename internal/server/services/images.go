package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/gophershop/internal/common"
	sc "github.com/dmitrijs2005/gophershop/internal/server/config"
	"github.com/dmitrijs2005/gophershop/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// Seams over the AWS SDK so tests never reach an S3 endpoint.
var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// ImageUpload is a presigned upload slot for a product image.
type ImageUpload struct {
	Key       string    `json:"key"`
	URL       string    `json:"upload_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ImageService hands out presigned S3 URLs for product images. Image bytes
// never pass through the server.
type ImageService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
	now         func() time.Time
}

func NewImageService(db *sql.DB, m repomanager.RepositoryManager, config *sc.Config) *ImageService {
	return &ImageService{db: db, repomanager: m, config: config, now: time.Now}
}

func (s *ImageService) newStorageKey(productID int64) string {
	d := s.now().UTC()
	return fmt.Sprintf("products/%d/%d/%02d/%02d/%v", productID, d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *ImageService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// PresignUpload reserves a new object key for the product's image, records
// it on the product and returns a presigned PUT URL for it.
func (s *ImageService) PresignUpload(ctx context.Context, productID int64) (*ImageUpload, error) {
	products := s.repomanager.Products(s.db)
	if _, err := products.Get(ctx, productID); err != nil {
		return nil, err
	}

	pc, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("s3 client: %w", err)
	}

	bucket := s.config.S3Bucket
	key := s.newStorageKey(productID)
	validity := s.config.ImageUploadURLValidity

	req, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(validity))
	if err != nil {
		return nil, fmt.Errorf("presign put: %w", err)
	}

	if err := products.SetImage(ctx, productID, key); err != nil {
		return nil, err
	}

	return &ImageUpload{Key: key, URL: req.URL, ExpiresAt: s.now().Add(validity)}, nil
}

// PresignDownload returns a presigned GET URL for the product's image.
// A product without an image yields common.ErrorNotFound.
func (s *ImageService) PresignDownload(ctx context.Context, productID int64) (string, error) {
	p, err := s.repomanager.Products(s.db).Get(ctx, productID)
	if err != nil {
		return "", err
	}
	if p.ImageURL == "" {
		return "", common.ErrorNotFound
	}

	pc, err := s.getPresignClient(ctx)
	if err != nil {
		return "", fmt.Errorf("s3 client: %w", err)
	}

	bucket := s.config.S3Bucket
	req, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &p.ImageURL,
	}, s3.WithPresignExpires(s.config.ImageUploadURLValidity))
	if err != nil {
		return "", fmt.Errorf("presign get: %w", err)
	}

	return req.URL, nil
}
