// Package storage signs object storage URLs directly with AWS
// credentials, for deployments that do not go through the external
// signing endpoint. It implements the same Signer contract as
// service.EndpointSigner.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "github.com/ikkim/shopit-client/config"
)

// urlExpiry keeps issued URLs short-lived, matching the signing
// endpoint's behavior.
const urlExpiry = 15 * time.Minute

type S3Signer struct {
	presign *s3.PresignClient
	bucket  string
}

func NewS3Signer(cfg *appconfig.S3Config) *S3Signer {
	var awsCfg aws.Config
	var err error

	// If credentials are provided, use them. Otherwise, use default credential chain
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		awsCfg = aws.Config{
			Region: cfg.Region,
			Credentials: credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			),
		}
	} else {
		awsCfg, err = config.LoadDefaultConfig(context.TODO(),
			config.WithRegion(cfg.Region),
		)
		if err != nil {
			awsCfg = aws.Config{
				Region: cfg.Region,
			}
		}
	}

	client := s3.NewFromConfig(awsCfg)

	return &S3Signer{
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
	}
}

// SignUpload issues a pre-signed PUT URL for the given object key.
func (s *S3Signer) SignUpload(ctx context.Context, key, contentType string) (string, error) {
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(urlExpiry))
	if err != nil {
		return "", fmt.Errorf("failed to generate upload URL: %w", err)
	}
	return req.URL, nil
}

// SignDownload issues a pre-signed GET URL. The original file name rides
// along as the content disposition so a browser saves it under the name
// the user uploaded.
func (s *S3Signer) SignDownload(ctx context.Context, key, originalName string) (string, error) {
	disposition := fmt.Sprintf("attachment; filename=%q", originalName)
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket:                     aws.String(s.bucket),
		Key:                        aws.String(key),
		ResponseContentDisposition: aws.String(disposition),
	}, s3.WithPresignExpires(urlExpiry))
	if err != nil {
		return "", fmt.Errorf("failed to generate download URL: %w", err)
	}
	return req.URL, nil
}
