package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"coursedesk/internal/config"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"
)

// Publisher defines an interface for publishing messages.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload []byte) (string, error)
}

// PubSubPublisher is an implementation of Publisher using Google Pub/Sub.
type PubSubPublisher struct {
	client *pubsub.Client
}

// NewPublisher creates a new PubSubPublisher using the GCP project from config.
func NewPublisher(ctx context.Context, cfg *config.Config) (*PubSubPublisher, error) {
	if cfg.GCPProjectID == "" {
		return nil, fmt.Errorf("GCP project ID is not set")
	}
	var opts []option.ClientOption
	if cfg.GCPCredentialsFile != "" && cfg.PubSubEmulatorHost == "" {
		opts = append(opts, option.WithCredentialsFile(cfg.GCPCredentialsFile))
	}
	client, err := pubsub.NewClient(ctx, cfg.GCPProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Pub/Sub client: %w", err)
	}
	return &PubSubPublisher{client: client}, nil
}

// Publish sends the payload to the given Pub/Sub topic and returns the message ID.
func (p *PubSubPublisher) Publish(ctx context.Context, topic string, payload []byte) (string, error) {
	t := p.client.Topic(topic)
	result := t.Publish(ctx, &pubsub.Message{Data: payload})
	id, err := result.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to publish message to topic %s: %w", topic, err)
	}
	return id, nil
}

// Close flushes pending messages and releases the client.
func (p *PubSubPublisher) Close() error {
	return p.client.Close()
}

// NoopPublisher drops every message. It is used when events are disabled.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, []byte) (string, error) { return "", nil }

// EventType names a change to the course catalog.
type EventType string

const (
	CourseCreated EventType = "course.created"
	CourseUpdated EventType = "course.updated"
	CourseDeleted EventType = "course.deleted"
)

// CourseEvent is the payload published after a course changes.
type CourseEvent struct {
	Type       EventType `json:"type"`
	CourseID   string    `json:"course_id"`
	CourseCode string    `json:"course_code,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Encode returns the JSON payload for e.
func (e CourseEvent) Encode() ([]byte, error) {
	return json.Marshal(e)
}
