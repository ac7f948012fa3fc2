package s3

import (
	"context"
	"time"

	"todos-backend/application/ports"
	apperrors "todos-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// PresignAPI is the subset of the S3 presign client used by the provider.
type PresignAPI interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// AttachmentProvider produces time-limited upload URLs for item attachments.
// The object key is the todoId, so the upload lands exactly where the item's
// recorded public-read URL points.
type AttachmentProvider struct {
	presigner PresignAPI
	bucket    string
	expiry    time.Duration
	logger    *zap.Logger
}

// NewAttachmentProvider creates a new attachment URL provider
func NewAttachmentProvider(presigner PresignAPI, bucket string, expiry time.Duration, logger *zap.Logger) *AttachmentProvider {
	return &AttachmentProvider{
		presigner: presigner,
		bucket:    bucket,
		expiry:    expiry,
		logger:    logger,
	}
}

var _ ports.UploadURLProvider = (*AttachmentProvider)(nil)

// UploadURL returns a presigned PUT URL for the item's attachment object.
func (p *AttachmentProvider) UploadURL(ctx context.Context, todoID string) (string, error) {
	req, err := p.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(todoID),
	}, func(o *s3.PresignOptions) {
		o.Expires = p.expiry
	})
	if err != nil {
		p.logger.Error("Failed to presign upload URL",
			zap.Error(err),
			zap.String("todoId", todoID),
			zap.String("bucket", p.bucket),
		)
		return "", apperrors.NewExternalError("failed to create upload URL", err)
	}

	p.logger.Info("Presigned upload URL",
		zap.String("todoId", todoID),
		zap.String("bucket", p.bucket),
		zap.Duration("expiry", p.expiry),
	)

	return req.URL, nil
}
