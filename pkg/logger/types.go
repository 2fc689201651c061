package logger

import (
	"time"
)

// Standard log keys
const (
	KeyTraceID     = "trace_id"
	KeyComponent   = "component"
	KeyEnvironment = "environment"
)

// SolveEvent represents the outcome of pricing a single OptionJob.
type SolveEvent struct {
	Ticker     string        `json:"ticker"`
	OptionType string        `json:"option_type"`
	Strike     float64       `json:"strike"`
	Expiry     float64       `json:"expiry_years"`
	FairValue  float64       `json:"fair_value"`
	GridJ      int           `json:"grid_j"`
	GridN      int           `json:"grid_n"`
	Duration   time.Duration `json:"duration_ms"` // serialized as nanoseconds by default
	Success    bool          `json:"success"`
	Timestamp  time.Time     `json:"timestamp"`
}

// BatchEvent represents the outcome of one JobQueueProcessor.RunBatch call.
type BatchEvent struct {
	JobCount  int           `json:"job_count"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Duration  time.Duration `json:"duration_ms"` // serialized as nanoseconds by default
	Timestamp time.Time     `json:"timestamp"`
}

// SystemHealthEvent represents a snapshot of a component's health
type SystemHealthEvent struct {
	Component   string        `json:"component"`
	Status      string        `json:"status"`
	Latency     time.Duration `json:"latency_ms"` // serialized as nanoseconds by default
	MemoryUsage int64         `json:"memory_bytes"`
	Timestamp   time.Time     `json:"timestamp"`
}
