// Package sink defines the output sink abstraction generated tables are
// written through, plus the environment-driven driver factory. Only this
// package may import the concrete drivers under internal/infra/sink; everyone
// else depends on the Sink interface.
package sink

import (
	"errors"

	"plantforge/internal/core"
)

// Driver identifies a concrete sink backend implementation.
type Driver string

const (
	DriverFilesystem Driver = "fs"       // flat CSV files in a directory (default)
	DriverMemory     Driver = "memory"   // in-memory (tests)
	DriverS3         Driver = "s3"       // rendered CSVs uploaded to S3 / MinIO
	DriverSQLite     Driver = "sqlite"   // one SQL table per generated table
	DriverPostgres   Driver = "postgres" // same contract against Postgres
)

// Sink extends the core sink contract with lifecycle and identification.
type Sink interface {
	core.Sink
	Driver() Driver
	Close() error
}

// ErrUnknownDriver is returned by Open for an unrecognized driver name.
var ErrUnknownDriver = errors.New("sink: unknown driver")
