// AngelaMos | 2026
// presigner.go

package upload

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/jdstudio/backoffice/internal/config"
)

// ErrUnsupportedType rejects anything that is not an image or a PDF.
var ErrUnsupportedType = errors.New("only images and PDFs are allowed")

var allowedContentTypes = map[string]string{
	"image/jpeg":      "jpg",
	"image/png":       "png",
	"image/webp":      "webp",
	"application/pdf": "pdf",
}

// Presigner issues short-lived PUT URLs so clients upload directly to
// the object store without the file passing through this server.
type Presigner struct {
	presign       *s3.PresignClient
	bucket        string
	publicBaseURL string
	expiry        time.Duration
}

func NewPresigner(
	ctx context.Context,
	cfg config.UploadConfig,
) (*Presigner, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load object store config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = true
	})

	return &Presigner{
		presign:       s3.NewPresignClient(client),
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
		expiry:        cfg.PresignExpiry,
	}, nil
}

// PresignedUpload is what the client needs to perform the upload and
// reference the file afterwards.
type PresignedUpload struct {
	UploadURL string
	FileURL   string
	Key       string
}

// Presign validates the content type and returns a one-off upload
// target. The object key is always freshly generated; the original
// filename never reaches the store.
func (p *Presigner) Presign(
	ctx context.Context,
	contentType string,
) (*PresignedUpload, error) {
	ext, ok := allowedContentTypes[contentType]
	if !ok {
		return nil, ErrUnsupportedType
	}

	key := fmt.Sprintf("uploads/%s.%s", uuid.New().String(), ext)

	req, err := p.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(p.expiry))
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}

	return &PresignedUpload{
		UploadURL: req.URL,
		FileURL:   p.publicBaseURL + "/" + key,
		Key:       key,
	}, nil
}
