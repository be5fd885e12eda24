package store

import "time"

// Config aggregates per source configuration
type Config struct {
	AppName string

	Payroll PGConfig
	Funds   PGConfig
}

// PGConfig configures postgres connectivity and tracing for one source
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// StatementTimeout is applied server side to every statement, zero leaves the server default
	StatementTimeout time.Duration

	// Guard/boot knobs:
	ConnectRetries int           // default 20
	PingTimeout    time.Duration // default 3s
}
