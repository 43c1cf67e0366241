package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	sc "github.com/sireesha-siri/geotag-plants/internal/server/config"
)

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
)

// UploadService issues presigned PUT URLs so clients upload plant images
// straight to the S3-compatible backend.
type UploadService struct {
	config *sc.Config
}

func NewUploadService(cfg *sc.Config) *UploadService {
	return &UploadService{config: cfg}
}

// storageKey buckets objects per user and day, keeping the original extension
// so the public URL stays recognizable to image viewers.
func storageKey(userID, fileName string) string {
	d := time.Now()
	ext := strings.ToLower(path.Ext(fileName))
	return fmt.Sprintf("users/%s/%d/%d/%d/%v%s", userID, d.Year(), d.Month(), d.Day(), uuid.New(), ext)
}

func (s *UploadService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
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
	})

	return newS3PresignClient(client), nil
}

// GetPresignedPutURL returns a presigned PUT URL for a new object plus the
// public URL the object will be readable at once uploaded.
func (s *UploadService) GetPresignedPutURL(ctx context.Context, userID, fileName string) (putURL string, publicURL string, err error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key := storageKey(userID, fileName)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", "", err
	}

	publicURL = strings.TrimRight(s.config.S3PublicBaseURL, "/") + "/" + key
	return req.URL, publicURL, nil
}
