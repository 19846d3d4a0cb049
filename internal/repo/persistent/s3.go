package persistent

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ashabelnikov/file-pipeline/internal/dto"
	"github.com/ashabelnikov/file-pipeline/pkg/s3client"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type ObjectRepo struct {
	*s3client.S3Client
	presigner *s3.PresignClient
	bucket    string
}

func NewObjectRepo(s3c *s3client.S3Client, bucket string) *ObjectRepo {
	return &ObjectRepo{
		S3Client:  s3c,
		presigner: s3.NewPresignClient(s3c.Client),
		bucket:    bucket,
	}
}

func (r *ObjectRepo) Download(ctx context.Context, key string) (*dto.StorageObject, error) {
	result, err := r.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("ObjectRepo - Download - r.Client.GetObject: %w", err)
	}
	defer result.Body.Close()

	b, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("ObjectRepo - Download - io.ReadAll: %w", err)
	}

	obj := &dto.StorageObject{
		Data:          b,
		ContentType:   aws.ToString(result.ContentType),
		ContentLength: aws.ToInt64(result.ContentLength),
	}

	// Some stores omit the declared length on GetObject.
	if obj.ContentLength == 0 {
		obj.ContentLength = int64(len(b))
	}

	return obj, nil
}

func (r *ObjectRepo) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := r.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(r.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("ObjectRepo - Upload - r.Client.PutObject: %w", err)
	}

	return nil
}

func (r *ObjectRepo) PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	req, err := r.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("ObjectRepo - PresignPut - r.presigner.PresignPutObject: %w", err)
	}

	return req.URL, nil
}

func (r *ObjectRepo) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	req, err := r.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket:                     aws.String(r.bucket),
		Key:                        aws.String(key),
		ResponseContentDisposition: aws.String("attachment"),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("ObjectRepo - PresignGet - r.presigner.PresignGetObject: %w", err)
	}

	return req.URL, nil
}
