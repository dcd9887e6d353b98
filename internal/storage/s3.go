package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

type S3Store struct {
	Client s3iface.S3API
	Bucket string
	Prefix string
}

func NewS3Store(sess *session.Session, bucket, prefix string) *S3Store {
	return &S3Store{Client: s3.New(sess), Bucket: bucket, Prefix: prefix}
}

func (s *S3Store) objectKey(key string) string {
	if s.Prefix == "" {
		return key
	}
	return path.Join(s.Prefix, key)
}

func (s *S3Store) Save(ctx context.Context, contentType string, data []byte) (string, error) {
	key := objectName(contentType)
	_, err := s.Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.Bucket),
		Key:           aws.String(s.objectKey(key)),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload file to S3: %w", err)
	}
	return key, nil
}

func (s *S3Store) Load(ctx context.Context, key string) ([]byte, error) {
	out, err := s.Client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && aerr.Code() == s3.ErrCodeNoSuchKey {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("unable to download %s from S3: %w", key, err)
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		return fmt.Errorf("unable to delete %s from S3: %w", key, err)
	}
	return nil
}
