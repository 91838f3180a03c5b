package model

import "time"

// Shared defaults used by both the pipeline and TUI binaries.
const (
	DefaultWorkers      = 4
	DefaultQueryTimeout = 30 * time.Second
)
