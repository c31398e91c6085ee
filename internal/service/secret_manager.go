package service

import (
	"context"
	"fmt"
	"strings"

	"coursedesk/internal/config"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/api/option"
)

// SecretResolver reads secret payloads from Secret Manager.
type SecretResolver interface {
	Resolve(ctx context.Context, secret string) (string, error)
	Close() error
}

type secretResolver struct {
	client    *secretmanager.Client
	projectID string
}

func NewSecretResolver(ctx context.Context, cfg *config.Config) (SecretResolver, error) {
	if cfg.GCPProjectID == "" {
		return nil, fmt.Errorf("GCP Project ID is not set for the current environment")
	}

	var opts []option.ClientOption
	if cfg.GCPCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.GCPCredentialsFile))
	}

	client, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Secret Manager client: %w", err)
	}

	return &secretResolver{
		client:    client,
		projectID: cfg.GCPProjectID,
	}, nil
}

// Resolve returns the payload of secret. A bare secret name resolves to its
// latest version in the configured project.
func (s *secretResolver) Resolve(ctx context.Context, secret string) (string, error) {
	req := &secretmanagerpb.AccessSecretVersionRequest{
		Name: secretVersionName(s.projectID, secret),
	}

	result, err := s.client.AccessSecretVersion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to access secret version: %w", err)
	}

	return strings.TrimSpace(string(result.Payload.Data)), nil
}

func (s *secretResolver) Close() error {
	return s.client.Close()
}

func secretVersionName(projectID, secret string) string {
	switch {
	case strings.HasPrefix(secret, "projects/") && strings.Contains(secret, "/versions/"):
		return secret
	case strings.HasPrefix(secret, "projects/"):
		return secret + "/versions/latest"
	default:
		return fmt.Sprintf("projects/%s/secrets/%s/versions/latest", projectID, secret)
	}
}
