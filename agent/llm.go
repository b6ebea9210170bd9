package agent

import (
	"context"
	"time"
)

// Content is the payload of a model response: either a plain string or an
// ordered list of typed fragments. ExtractText flattens either shape.
type Content interface {
	isContent()
}

// Plain is a bare string payload.
type Plain string

func (Plain) isContent() {}

// Fragments is an ordered list of typed payload parts.
type Fragments []Fragment

func (Fragments) isContent() {}

// Fragment is one typed part of a fragmented payload.
type Fragment struct {
	Type string
	Text string
}

// Client abstracts one configured model endpoint so it can be replaced or
// mocked. Implementations must be read-only after construction: the same
// client is shared across overlapping requests.
type Client interface {
	Invoke(ctx context.Context, system string, msgs []Message) (Content, error)
}

// Settings is the provider-level configuration shared by all stages.
type Settings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

// StageConfig fixes the sampling and transport behavior of one pipeline
// stage. Retries happen inside the transport; the stages themselves never
// regenerate.
type StageConfig struct {
	Temperature float64
	Timeout     time.Duration
	MaxRetries  int
}

// Stage configurations. The router wants determinism, the planner wants
// variety, the coder sits in between for reliable code.
var (
	RouterStage  = StageConfig{Temperature: 0.0, Timeout: 30 * time.Second, MaxRetries: 2}
	PlannerStage = StageConfig{Temperature: 0.7, Timeout: 120 * time.Second, MaxRetries: 3}
	CoderStage   = StageConfig{Temperature: 0.5, Timeout: 120 * time.Second, MaxRetries: 3}
)
