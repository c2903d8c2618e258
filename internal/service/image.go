package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/foodgram/backend/config"
)

// ImageService stores uploaded recipe images in S3 and hands back the
// public URL; the rest of the system only ever sees the reference.
type ImageService struct {
	s3Config *config.S3Config
}

func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{s3Config: s3Config}
}

// StoreBase64Image decodes a "data:image/<ext>;base64,..." payload,
// uploads it under recipe-images/ and returns the public URL.
func (s *ImageService) StoreBase64Image(ctx context.Context, payload string) (string, error) {
	ext, data, err := decodeDataURL(payload)
	if err != nil {
		return "", err
	}

	fileName := fmt.Sprintf("recipe-images/%s.%s", uuid.New().String(), ext)
	return s.uploadToS3(ctx, data, fileName, "image/"+ext)
}

func (s *ImageService) uploadToS3(ctx context.Context, imageData []byte, fileName, contentType string) (string, error) {
	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(imageData),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, fileName)
	log.Printf("[ImageService] Uploaded image to S3: %s", publicURL)

	return publicURL, nil
}

// decodeDataURL splits a base64 data URL into its extension and bytes.
func decodeDataURL(payload string) (string, []byte, error) {
	const prefix = "data:image/"
	if !strings.HasPrefix(payload, prefix) {
		return "", nil, fmt.Errorf("image payload is not a data URL")
	}
	rest := payload[len(prefix):]
	sep := strings.Index(rest, ";base64,")
	if sep < 0 {
		return "", nil, fmt.Errorf("image payload is not base64 encoded")
	}
	ext := rest[:sep]
	if ext == "" {
		ext = "png"
	}

	data, err := base64.StdEncoding.DecodeString(rest[sep+len(";base64,"):])
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode image payload: %w", err)
	}
	return ext, data, nil
}
