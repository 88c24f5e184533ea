package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vvka-141/pgstar/internal/db"
	"github.com/vvka-141/pgstar/internal/metrics"
	"github.com/vvka-141/pgstar/internal/store"
	"github.com/vvka-141/pgstar/internal/transform"
	"github.com/vvka-141/pgstar/pkg/pgstar"
)

// ConnectorFactory builds the Connector for a resolved configuration.
// db.NewConnector is the production implementation.
type ConnectorFactory func(*pgstar.ConnectionConfig, pgstar.Logger) (pgstar.Connector, error)

// Summary describes a finished run.
type Summary struct {
	RunID    string
	Song     LoadStats
	Log      LoadStats
	Duration time.Duration
}

// Rows returns the rows written across both categories.
func (s *Summary) Rows() pgstar.RowCounts {
	total := s.Song.Rows
	total.Add(s.Log.Rows)
	return total
}

// Pipeline runs the song load followed by the log load over one pool.
// Songs must be committed first: log files resolve songplays against them.
type Pipeline struct {
	connectorFactory ConnectorFactory
	files            FileSource
	logger           pgstar.Logger
	reporter         pgstar.ProgressReporter
	now              func() time.Time
}

// NewPipeline panics on nil dependencies.
func NewPipeline(connectorFactory ConnectorFactory, files FileSource, logger pgstar.Logger, reporter pgstar.ProgressReporter) *Pipeline {
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if files == nil {
		panic("files cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if reporter == nil {
		panic("reporter cannot be nil")
	}
	return &Pipeline{
		connectorFactory: connectorFactory,
		files:            files,
		logger:           logger,
		reporter:         reporter,
		now:              time.Now,
	}
}

// Run executes a full load. On error the returned summary still reports
// what was committed before the failure.
func (p *Pipeline) Run(ctx context.Context, cfg pgstar.RunConfig) (*Summary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	connConfig, err := connectionConfigFor(cfg)
	if err != nil {
		return nil, err
	}

	summary := &Summary{RunID: uuid.NewString()}
	if connConfig.AppName == "" {
		connConfig.AppName = pgstar.ApplicationNamePrefix + "/" + summary.RunID
	}
	started := p.now()

	p.logger.Verbose("Run %s connecting to %s", summary.RunID, db.RedactConnectionString(db.BuildConnectionString(connConfig)))

	pool, closePool, err := openPool(ctx, p.connectorFactory, connConfig, p.logger)
	if err != nil {
		return nil, err
	}
	defer closePool()

	if cfg.CreateSchema {
		if err := store.CreateSchema(ctx, pool); err != nil {
			return nil, fmt.Errorf("%w: %w", pgstar.ErrLoadFailed, err)
		}
		p.logger.Verbose("Schema ensured")
	}

	runMetrics := metrics.New()
	loader := NewLoader(p.files, store.NewPostgresStore(pool), p.logger, p.reporter, runMetrics)

	err = p.load(ctx, loader, cfg, summary)
	summary.Duration = p.now().Sub(started)
	runMetrics.Finish(p.now(), err)

	if cfg.MetricsFile != "" {
		if mErr := runMetrics.WriteFile(cfg.MetricsFile); mErr != nil {
			p.logger.Error("%v", mErr)
		}
	}

	if err != nil {
		return summary, err
	}

	rows := summary.Rows()
	p.logger.Info("Loaded %d song files and %d log files in %v", summary.Song.Files, summary.Log.Files, summary.Duration.Round(time.Millisecond))
	p.logger.Verbose("Rows written: songs=%d artists=%d time=%d users=%d songplays=%d",
		rows.Songs, rows.Artists, rows.Times, rows.Users, rows.Songplays)
	return summary, nil
}

func (p *Pipeline) load(ctx context.Context, loader *Loader, cfg pgstar.RunConfig, summary *Summary) error {
	var err error

	summary.Song, err = loader.Load(ctx, cfg.SongDataPath, transform.NewSongTransformer())
	if err != nil {
		return err
	}

	summary.Log, err = loader.Load(ctx, cfg.LogDataPath, transform.NewLogTransformer())
	return err
}

func connectionConfigFor(cfg pgstar.RunConfig) (*pgstar.ConnectionConfig, error) {
	connConfig, err := db.ParseConnectionString(cfg.ConnectionString)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("invalid connection string: %w", err), pgstar.ErrInvalidConfig)
	}

	connConfig.AuthMethod = cfg.AuthMethod
	connConfig.AWSRegion = cfg.AWSRegion
	connConfig.GoogleInstance = cfg.GoogleInstance
	connConfig.AzureTenantID = cfg.AzureTenantID
	connConfig.AzureClientID = cfg.AzureClientID
	connConfig.AzureClientSecret = cfg.AzureClientSecret
	return connConfig, nil
}
