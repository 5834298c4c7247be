package assets

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/jpcdigital/ebookpay/internal/common"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	getObject = func(c *s3.Client, ctx context.Context, in *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
		return c.GetObject(ctx, in)
	}
)

// S3Options configures the object-store backend. BaseEndpoint allows
// pointing at an S3-compatible server such as MinIO.
type S3Options struct {
	User         string
	Password     string
	Bucket       string
	Key          string
	Region       string
	BaseEndpoint string
}

// S3 serves the e-book from a fixed bucket/key in an S3-compatible store.
type S3 struct {
	opts S3Options
}

func NewS3(opts S3Options) *S3 {
	return &S3{opts: opts}
}

func (s *S3) client(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(s.opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.opts.User,
			s.opts.Password,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.opts.BaseEndpoint)
	}), nil
}

func (s *S3) Open(ctx context.Context) (*Asset, error) {
	client, err := s.client(ctx)
	if err != nil {
		return nil, fmt.Errorf("s3 client: %w", err)
	}

	out, err := getObject(client, ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.opts.Bucket),
		Key:    aws.String(s.opts.Key),
	})
	if err != nil {
		if isObjectMissing(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("get object %s/%s: %w", s.opts.Bucket, s.opts.Key, err)
	}

	contentType := aws.ToString(out.ContentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &Asset{
		Content:     out.Body,
		Size:        aws.ToInt64(out.ContentLength),
		ContentType: contentType,
	}, nil
}

func isObjectMissing(err error) bool {
	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return true
	}
	// some S3-compatible servers report NotFound instead of NoSuchKey
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NoSuchKey" || code == "NotFound" || code == "NoSuchBucket"
	}
	return false
}
