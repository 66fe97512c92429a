package storage

import (
	"bytes"
	"context"
	"errors"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

const basePath = "note_images/"

type S3Client interface {
	UploadFile(data []byte, filename string) (string, error)
	DeleteFile(key string) error
}

type storageClient struct {
	bucket string
	client *s3.Client
}

func NewStorageClient(region, bucket string) (S3Client, error) {
	cfg, err := config.LoadDefaultConfig(context.Background(), config.WithRegion(region))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg)
	return &storageClient{
		bucket: bucket,
		client: client,
	}, nil
}

func (s *storageClient) UploadFile(data []byte, filename string) (string, error) {
	if filename == "" {
		return "", errors.New("filename is empty")
	}

	key := basePath + filename
	mimeType := mime.TypeByExtension(filepath.Ext(filename))
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: &mimeType,
	}

	_, err := s.client.PutObject(context.Background(), input)
	if err != nil {
		return "", err
	}
	return key, nil
}

// DeleteFile is idempotent: a missing object is not an error, which keeps
// the database and the bucket tolerant of being out of sync.
func (s *storageClient) DeleteFile(key string) error {
	if key == "" {
		return errors.New("key is empty")
	}

	_, err := s.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})

	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return nil
	}
	return err
}
