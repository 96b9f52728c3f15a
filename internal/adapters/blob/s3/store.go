package s3

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Store sube fotos a un bucket S3 (o MinIO) y devuelve la URL pública
// del objeto. Superficie mínima: un bucket, keys bajo dogs/.
type Store struct {
	client *s3.Client
	bucket string
	region string

	publicBaseURL string // si está, las URLs se arman contra esta base
}

type Config struct {
	Region string
	Bucket string

	Endpoint  string // opcional (MinIO / endpoint custom)
	PathStyle bool

	// Credenciales estáticas opcionales; si faltan, cae a la cadena
	// default del SDK (env, profile, IAM role).
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string

	PublicBaseURL string // opcional; default URL virtual-host de AWS
}

func New(ctx context.Context, cfg Config) (*Store, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	publicBase := strings.TrimRight(strings.TrimSpace(cfg.PublicBaseURL), "/")
	if publicBase == "" && cfg.Endpoint != "" {
		// estilo path contra el endpoint custom
		publicBase = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}

	return &Store{
		client:        client,
		bucket:        cfg.Bucket,
		region:        region,
		publicBaseURL: publicBase,
	}, nil
}

// OpenFromEnv crea el store desde env:
// - KENNEL_BLOB_S3_BUCKET (requerido)
// - KENNEL_BLOB_S3_REGION (default us-east-1)
// - KENNEL_BLOB_S3_ENDPOINT (opcional, MinIO)
// - KENNEL_BLOB_S3_PATH_STYLE=true|false
// - KENNEL_BLOB_S3_PUBLIC_BASE_URL (opcional)
// - AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY / AWS_SESSION_TOKEN (opcional)
func OpenFromEnv(ctx context.Context) (*Store, error) {
	bucket := os.Getenv("KENNEL_BLOB_S3_BUCKET")
	if bucket == "" {
		return nil, fmt.Errorf("KENNEL_BLOB_S3_BUCKET required for s3 driver")
	}
	return New(ctx, Config{
		Bucket:          bucket,
		Region:          os.Getenv("KENNEL_BLOB_S3_REGION"),
		Endpoint:        os.Getenv("KENNEL_BLOB_S3_ENDPOINT"),
		PathStyle:       strings.EqualFold(os.Getenv("KENNEL_BLOB_S3_PATH_STYLE"), "true"),
		PublicBaseURL:   os.Getenv("KENNEL_BLOB_S3_PUBLIC_BASE_URL"),
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
	})
}

// Upload sube la foto bajo dogs/<uuid> y devuelve su URL pública.
func (s *Store) Upload(ctx context.Context, r io.Reader, contentType string) (string, error) {
	key := "dogs/" + uuid.NewString()

	input := &s3.PutObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
		Body:   r,
	}
	if contentType != "" {
		input.ContentType = &contentType
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("s3 put object: %w", err)
	}

	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key, nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}
