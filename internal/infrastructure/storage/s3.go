package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"echoverse-api/internal/config"
	"echoverse-api/internal/domain/repository"
	"echoverse-api/pkg/logger"
	"echoverse-api/pkg/tracer"
)

// S3 S3 兼容对象存储（AWS S3 / Cloudflare R2 / MinIO）
type S3 struct {
	svc    s3iface.S3API
	bucket string
}

var _ repository.AudioStore = (*S3)(nil)

// NewS3 创建 S3 存储；未配置静态密钥时使用默认凭据链
func NewS3(cfg config.S3Config) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}

	awsCfg := aws.NewConfig().WithS3ForcePathStyle(cfg.ForcePathStyle)
	if cfg.Region != "" {
		awsCfg = awsCfg.WithRegion(cfg.Region)
	}
	if cfg.Endpoint != "" {
		awsCfg = awsCfg.WithEndpoint(cfg.Endpoint)
	}
	if cfg.AccessKeyID != "" {
		awsCfg = awsCfg.WithCredentials(credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.SecretAccessKey, ""))
	}

	sess, err := session.NewSessionWithOptions(session.Options{
		Config:            *awsCfg,
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}
	return NewS3WithClient(s3.New(sess), cfg.Bucket), nil
}

// NewS3WithClient 使用已有客户端创建 S3 存储
func NewS3WithClient(svc s3iface.S3API, bucket string) *S3 {
	return &S3{svc: svc, bucket: bucket}
}

// Put 实现 repository.AudioStore
func (s *S3) Put(ctx context.Context, key string, data []byte, contentType string) error {
	ctx, span := tracer.Start(ctx, "storage.s3.Put")
	defer span.End()

	_, err := s.svc.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		tracer.Fail(span, err)
		logger.Error(ctx, "failed to upload object to s3", err, "bucket", s.bucket, "key", key)
		return fmt.Errorf("s3 put %s: %w", key, err)
	}
	return nil
}

// Open 实现 repository.AudioStore
func (s *S3) Open(ctx context.Context, key string) (*repository.AudioObject, error) {
	ctx, span := tracer.Start(ctx, "storage.s3.Open")
	defer span.End()

	out, err := s.svc.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, repository.ErrNotFound
		}
		tracer.Fail(span, err)
		return nil, fmt.Errorf("s3 get %s: %w", key, err)
	}
	return &repository.AudioObject{
		Body:        out.Body,
		Size:        aws.Int64Value(out.ContentLength),
		ContentType: aws.StringValue(out.ContentType),
	}, nil
}

// Delete 实现 repository.AudioStore
func (s *S3) Delete(ctx context.Context, key string) error {
	ctx, span := tracer.Start(ctx, "storage.s3.Delete")
	defer span.End()

	_, err := s.svc.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		tracer.Fail(span, err)
		return fmt.Errorf("s3 delete %s: %w", key, err)
	}
	return nil
}

func isNoSuchKey(err error) bool {
	var aerr awserr.Error
	if errors.As(err, &aerr) {
		return aerr.Code() == s3.ErrCodeNoSuchKey || aerr.Code() == "NotFound"
	}
	return false
}
