package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ImageUploader stores product images in S3 and hands back a URL the
// catalog record can reference.
type ImageUploader struct {
	s3Client *s3.Client
	bucket   string
	prefix   string
	endpoint string
}

func NewImageUploader(s3Client *s3.Client, bucket, prefix, endpoint string) *ImageUploader {
	return &ImageUploader{s3Client: s3Client, bucket: bucket, prefix: prefix, endpoint: endpoint}
}

// Upload writes the file under prefix/<unix-ts>_<basename> and returns its
// public URL. Keys are timestamped so re-uploads never clobber each other.
func (u *ImageUploader) Upload(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	key := fmt.Sprintf("%s%d_%s", u.prefix, time.Now().Unix(), filepath.Base(fileHeader.Filename))
	_, err = u.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(fileHeader.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", fmt.Errorf("upload to s3: %w", err)
	}

	if u.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(u.endpoint, "/"), u.bucket, key), nil
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", u.bucket, key), nil
}
