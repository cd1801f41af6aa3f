package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"plantforge/internal/core"
	infrafs "plantforge/internal/infra/sink/fs"
	inframem "plantforge/internal/infra/sink/memory"
	infrapg "plantforge/internal/infra/sink/postgres"
	infras3 "plantforge/internal/infra/sink/s3"
	infrasqlite "plantforge/internal/infra/sink/sqlite"
)

type driverSink interface {
	core.Sink
	Close() error
}

type adapter struct {
	driverSink
	driver Driver
}

func (a adapter) Driver() Driver { return a.driver }

// Open constructs the named sink driver. outputDir anchors the filesystem
// driver and the default sqlite database path; the s3 and postgres drivers
// read their connection settings from the environment:
//
//	PLANTFORGE_SINK_SQLITE_PATH: sqlite database file (default <outputDir>/plantforge.db)
//	PLANTFORGE_SINK_PG_DSN: postgres connection string
//	(S3 specific variables documented in the s3 driver)
func Open(ctx context.Context, driver Driver, outputDir string) (Sink, error) {
	switch driver {
	case DriverFilesystem, "":
		s, err := infrafs.New(outputDir)
		if err != nil {
			return nil, err
		}
		return adapter{driverSink: s, driver: DriverFilesystem}, nil
	case DriverMemory:
		return adapter{driverSink: inframem.New(), driver: DriverMemory}, nil
	case DriverS3:
		s, err := infras3.OpenFromEnv(ctx)
		if err != nil {
			return nil, err
		}
		return adapter{driverSink: s, driver: DriverS3}, nil
	case DriverSQLite:
		path := os.Getenv("PLANTFORGE_SINK_SQLITE_PATH")
		if path == "" {
			path = filepath.Join(outputDir, "plantforge.db")
		}
		s, err := infrasqlite.New(path)
		if err != nil {
			return nil, err
		}
		return adapter{driverSink: s, driver: DriverSQLite}, nil
	case DriverPostgres:
		s, err := infrapg.New(ctx, os.Getenv("PLANTFORGE_SINK_PG_DSN"))
		if err != nil {
			return nil, err
		}
		return adapter{driverSink: s, driver: DriverPostgres}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}

// OpenFromEnv selects the driver via PLANTFORGE_SINK_DRIVER (default fs).
func OpenFromEnv(ctx context.Context, outputDir string) (Sink, error) {
	return Open(ctx, Driver(os.Getenv("PLANTFORGE_SINK_DRIVER")), outputDir)
}
