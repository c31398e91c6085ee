package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"coursedesk/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awsmiddleware "github.com/aws/smithy-go/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrInvalidFilename is returned when nothing usable is left of an upload's
// filename after cleaning.
var ErrInvalidFilename = errors.New("invalid filename")

// AudioUpload is a presigned PUT for a course's audio practice file.
type AudioUpload struct {
	UploadURL string    `json:"uploadUrl"`
	ObjectKey string    `json:"objectKey"`
	ObjectURL string    `json:"objectUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AudioService hands out upload URLs for audio practice files. The returned
// ObjectURL is what goes into a course's audioPracticeUrl.
type AudioService interface {
	RequestUpload(ctx context.Context, filename, contentType string) (*AudioUpload, error)
}

type audioService struct {
	presignClient *s3.PresignClient
	bucketName    string
	objectBaseURL string
	ttl           time.Duration
	now           func() time.Time
	logger        zerolog.Logger
}

// NewAudioService creates a new AudioService. objectBaseURL is the public
// prefix object keys are appended to.
func NewAudioService(s3Client *s3.Client, bucketName, objectBaseURL string, ttl time.Duration, logger zerolog.Logger) AudioService {
	return &audioService{
		presignClient: s3.NewPresignClient(s3Client),
		bucketName:    bucketName,
		objectBaseURL: strings.TrimRight(objectBaseURL, "/"),
		ttl:           ttl,
		now:           time.Now,
		logger:        logger.With().Str("service", "AudioService").Logger(),
	}
}

func (s *audioService) RequestUpload(ctx context.Context, filename, contentType string) (*AudioUpload, error) {
	name := cleanFilename(filename)
	if name == "" {
		return nil, fmt.Errorf("%w %q", ErrInvalidFilename, filename)
	}
	objectKey := fmt.Sprintf("audio/%s/%s", uuid.NewString(), name)

	request, err := s.presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(objectKey),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(s.ttl))
	if err != nil {
		s.logger.Error().Err(err).Str("object_key", objectKey).Msg("Failed to generate presigned PUT URL")
		return nil, fmt.Errorf("failed to generate presigned PUT URL: %w", err)
	}

	return &AudioUpload{
		UploadURL: request.URL,
		ObjectKey: objectKey,
		ObjectURL: s.objectBaseURL + "/" + objectKey,
		ExpiresAt: s.now().Add(s.ttl),
	}, nil
}

// cleanFilename keeps the base name and replaces characters that need
// escaping in an object key.
func cleanFilename(filename string) string {
	name := path.Base(strings.ReplaceAll(strings.TrimSpace(filename), "\\", "/"))
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}

// NewS3Client builds a path-style client for the configured S3-compatible endpoint.
func NewS3Client(ctx context.Context, cfg *config.Config) (*s3.Client, error) {
	s3Config, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")),
		awsconfig.WithAPIOptions([]func(*awsmiddleware.Stack) error{removeDisableGzip()}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load S3 config: %w", err)
	}
	return s3.NewFromConfig(s3Config, func(o *s3.Options) {
		if cfg.S3URL != "" {
			o.BaseEndpoint = aws.String(cfg.S3URL)
		}
		o.UsePathStyle = true
	}), nil
}

// ObjectBaseURL is the prefix for public object URLs in the audio bucket.
func ObjectBaseURL(cfg *config.Config) string {
	if cfg.S3PublicBaseURL != "" {
		return cfg.S3PublicBaseURL
	}
	return strings.TrimRight(cfg.S3URL, "/") + "/" + cfg.S3Bucket
}

// removeDisableGzip drops the DisableAcceptEncodingGzip middleware, which
// breaks signatures on some S3-compatible services.
// See: https://github.com/supabase/storage/issues/577
func removeDisableGzip() func(*awsmiddleware.Stack) error {
	return func(stack *awsmiddleware.Stack) error {
		if _, ok := stack.Finalize.Get("DisableAcceptEncodingGzip"); ok {
			_, err := stack.Finalize.Remove("DisableAcceptEncodingGzip")
			return err
		}
		return nil
	}
}
