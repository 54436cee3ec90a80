package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// PresignService hands out presigned PUT URLs so clients upload product
// images straight to object storage; the hosting itself stays external.
type PresignService struct {
	presign          *s3.PresignClient
	bucket           string
	prefix           string
	endpoint         string
	cloudfrontDomain string
}

func NewPresignService(presign *s3.PresignClient, bucket, prefix, endpoint, cloudfrontDomain string) *PresignService {
	return &PresignService{
		presign:          presign,
		bucket:           bucket,
		prefix:           prefix,
		endpoint:         endpoint,
		cloudfrontDomain: cloudfrontDomain,
	}
}

// GeneratePresignedUpload returns (uploadURL, objectKey, publicURL). The key
// is namespaced by SKU and randomized so re-uploads never clobber each other.
func (s *PresignService) GeneratePresignedUpload(ctx context.Context, sku, filename, contentType string, expiresSeconds int64) (string, string, string, error) {
	ext := path.Ext(filename)
	key := fmt.Sprintf("%s%s/%s%s", s.prefix, sku, uuid.New().String(), ext)

	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(time.Duration(expiresSeconds)*time.Second))
	if err != nil {
		return "", "", "", fmt.Errorf("failed to presign upload: %w", err)
	}

	return req.URL, key, s.publicURL(key), nil
}

func (s *PresignService) publicURL(key string) string {
	if s.cloudfrontDomain != "" {
		return fmt.Sprintf("https://%s/%s", strings.TrimSuffix(s.cloudfrontDomain, "/"), key)
	}
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(s.endpoint, "/"), s.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
}
