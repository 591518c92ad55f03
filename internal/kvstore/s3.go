package kvstore

import (
	"bytes"
	"context"
	"encoding/hex"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store keeps each record in one object. Object names are the hex form of
// the record key so arbitrary key bytes stay within the S3 name charset.
type S3Store struct {
	bucket string
	client *s3.Client
}

func NewS3Store(bucket string, client *s3.Client) *S3Store {
	return &S3Store{bucket: bucket, client: client}
}

// S3ClientConfig holds the settings needed to reach an S3-compatible backend
// (AWS or MinIO).
type S3ClientConfig struct {
	Region       string
	RootUser     string
	RootPassword string
	BaseEndpoint string
}

// NewS3Client builds an S3 client with static credentials.
func NewS3Client(ctx context.Context, c S3ClientConfig) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(c.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.RootUser,
			c.RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if c.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(c.BaseEndpoint)
		}
		o.UsePathStyle = true
	})

	return client, nil
}

func (s *S3Store) Get(ctx context.Context, key []byte) ([]byte, error) {
	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey(key)),
	})
	if err != nil {
		if strings.Contains(err.Error(), "NoSuchKey") {
			return nil, nil
		}
		return nil, err
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

func (s *S3Store) Set(ctx context.Context, key, value []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey(key)),
		Body:   bytes.NewReader(value),
	})
	return err
}

func objectKey(key []byte) string {
	return "kv/" + hex.EncodeToString(key)
}

var _ Store = (*S3Store)(nil)
