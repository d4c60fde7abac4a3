package fluentlogger

import (
	"fmt"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// Config holds the Fluent Bit forward input settings.
type Config struct {
	Host      string // "127.0.0.1", or "fluent-bit" inside Docker
	Port      int    // usually 24224
	TagPrefix string // prefix for every tag this service emits
	Timeout   time.Duration
	// Async buffers posts in the client so a slow collector never blocks a request.
	Async bool
}

// NewClient creates a Fluent Bit client. There is no handshake, so an unreachable
// collector only shows up as errors on the first Post.
func NewClient(cfg Config) (*fluent.Fluent, error) {
	if cfg.TagPrefix == "" {
		return nil, fmt.Errorf("fluentd tag prefix is required")
	}

	logger, err := fluent.New(fluent.Config{
		FluentHost: cfg.Host,
		FluentPort: cfg.Port,
		TagPrefix:  cfg.TagPrefix,
		Timeout:    cfg.Timeout,
		Async:      cfg.Async,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create fluentd logger: %w", err)
	}

	return logger, nil
}
