package report

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// Archive guarda uma cópia de cada arquivo gerado.
type Archive interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
}

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Archive struct {
	client putObjectAPI
	bucket string
}

// NewS3Archive devolve nil quando não há bucket configurado.
func NewS3Archive(cfg S3Config) *S3Archive {
	if cfg.Bucket == "" {
		return nil
	}

	awsCfg := aws.Config{Region: cfg.Region}
	if cfg.AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Archive{client: client, bucket: cfg.Bucket}
}

func (a *S3Archive) Put(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("s3 put %s: %w", key, err)
	}
	return nil
}

// ArchiveKey organiza os arquivos por mês de emissão.
func ArchiveKey(now time.Time, fileName string) string {
	return path.Join("reportes", now.Format("2006/01"), fileName)
}

// Keep arquiva o arquivo; falhas só vão para o log.
func Keep(ctx context.Context, a Archive, log *zap.Logger, key string, body []byte, contentType string) {
	if a == nil {
		return
	}
	if err := a.Put(ctx, key, body, contentType); err != nil {
		log.Warn("report archive failed", zap.String("key", key), zap.Error(err))
		return
	}
	log.Info("report archived", zap.String("key", key), zap.Int("bytes", len(body)))
}
