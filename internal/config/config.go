package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"debug"`

	// Remote course service
	CourseAPIBaseURL     string `envconfig:"COURSE_API_BASE_URL" required:"true"`
	CourseAPIToken       string `envconfig:"COURSE_API_TOKEN"`
	CourseAPITokenSecret string `envconfig:"COURSE_API_TOKEN_SECRET"` // projects/<p>/secrets/<s>/versions/<v>
	CourseAPITimeoutSec  int    `envconfig:"COURSE_API_TIMEOUT_SEC" default:"10"`

	// Browsing
	AdminPageSize     int `envconfig:"ADMIN_PAGE_SIZE" default:"6"`
	CatalogPageSize   int `envconfig:"CATALOG_PAGE_SIZE" default:"12"`
	BulkDeleteWorkers int `envconfig:"BULK_DELETE_WORKERS" default:"4"`

	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`

	// Management routes require a bearer token signed with this secret when set
	JWTSecret string `envconfig:"JWT_SECRET"`

	// Course change events (disabled when the topic is empty)
	GCPProjectID            string `envconfig:"GCP_PROJECT_ID"`
	GCPCredentialsFile      string `envconfig:"GCP_CREDENTIALS_FILE"`
	PubSubEmulatorHost      string `envconfig:"PUBSUB_EMULATOR_HOST"`
	PubSubCourseEventsTopic string `envconfig:"PUBSUB_COURSE_EVENTS_TOPIC"`

	// Audio practice uploads (disabled when the bucket is empty)
	S3URL           string `envconfig:"S3_URL"`
	S3Bucket        string `envconfig:"S3_BUCKET"`
	S3Region        string `envconfig:"S3_REGION" default:"us-east-1"`
	S3AccessKey     string `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey     string `envconfig:"S3_SECRET_KEY"`
	S3PublicBaseURL string `envconfig:"S3_PUBLIC_BASE_URL"`
	S3PresignTTLMin int    `envconfig:"S3_PRESIGN_TTL_MIN" default:"15"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// CourseAPITimeout is the per-request timeout for the remote course service.
func (c *Config) CourseAPITimeout() time.Duration {
	return time.Duration(c.CourseAPITimeoutSec) * time.Second
}

// PresignTTL is how long an audio upload URL stays valid.
func (c *Config) PresignTTL() time.Duration {
	return time.Duration(c.S3PresignTTLMin) * time.Minute
}

func (c *Config) EventsEnabled() bool {
	return c.PubSubCourseEventsTopic != "" && c.GCPProjectID != ""
}

func (c *Config) AudioUploadsEnabled() bool {
	return c.S3Bucket != ""
}
