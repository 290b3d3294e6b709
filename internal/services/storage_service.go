// internal/services/storage_service.go
package services

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/sirupsen/logrus"

	"github.com/podworks/pod-backend/internal/config"
)

// StorageService moves generated images from the AI provider's temporary URLs
// into the permanent S3 asset store, and removes assets for rejected
// products. Without AWS credentials it runs in a local no-op mode.
type StorageService struct {
	s3Client   *s3.S3
	httpClient *http.Client
	config     *config.Config
}

type StoredAsset struct {
	URL  string `json:"url"`
	Key  string `json:"key"`
	Size int64  `json:"size"`
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	svc := &StorageService{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		config:     cfg,
	}

	if cfg.AWS.AccessKeyID == "" {
		// Local development mode, no S3
		return svc, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	svc.s3Client = s3.New(sess)
	return svc, nil
}

// UploadFromURL downloads an image from the provider's temporary URL and
// stores it permanently. The key is derived from a content hash so duplicate
// generations collapse onto one object.
func (s *StorageService) UploadFromURL(sourceURL, folder string) (*StoredAsset, error) {
	resp, err := s.httpClient.Get(sourceURL)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: HTTP %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image body: %w", err)
	}

	hash := fmt.Sprintf("%x", md5.Sum(imageData))[:8]
	key := fmt.Sprintf("%s/%s/%s.png", folder, time.Now().Format("2006/01/02"), hash)

	if s.s3Client == nil {
		return &StoredAsset{
			URL:  fmt.Sprintf("http://localhost:%s/uploads/%s", s.config.Server.Port, key),
			Key:  key,
			Size: int64(len(imageData)),
		}, nil
	}

	_, err = s.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s.config.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(imageData),
		ContentType:   aws.String("image/png"),
		ContentLength: aws.Int64(int64(len(imageData))),
		ACL:           aws.String("public-read"),
		CacheControl:  aws.String("max-age=31536000"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &StoredAsset{
		URL:  s.publicURL(key),
		Key:  key,
		Size: int64(len(imageData)),
	}, nil
}

// DeleteFile removes a stored asset. Used by the reject side effect; callers
// treat failures as non-fatal.
func (s *StorageService) DeleteFile(key string) error {
	if s.s3Client == nil {
		logrus.WithField("key", key).Debug("No S3 client, skipping asset delete")
		return nil
	}

	_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.config.AWS.S3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

func (s *StorageService) GeneratePresignedURL(key string, expiration time.Duration) (string, error) {
	if s.s3Client == nil {
		return "", fmt.Errorf("S3 client not configured")
	}

	req, _ := s.s3Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.config.AWS.S3Bucket),
		Key:    aws.String(key),
	})

	url, err := req.Presign(expiration)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return url, nil
}

func (s *StorageService) publicURL(key string) string {
	if s.config.AWS.PublicURL != "" {
		return fmt.Sprintf("%s/%s", s.config.AWS.PublicURL, key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.config.AWS.S3Bucket, s.config.AWS.Region, key)
}
