package services

import (
	"context"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/pgstar/pkg/pgstar"
)

// openPool connects through the factory's connector. The returned func
// closes the pool and, for dialer-backed connectors, the dialer.
func openPool(ctx context.Context, factory ConnectorFactory, connConfig *pgstar.ConnectionConfig, logger pgstar.Logger) (*pgxpool.Pool, func(), error) {
	connector, err := factory(connConfig, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create connector: %w", err)
	}

	pool, err := connector.Connect(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database %q: %w", connConfig.Database, err)
	}

	closeFn := func() {
		pool.Close()
		if closer, ok := connector.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				logger.Verbose("closing connector: %v", err)
			}
		}
	}
	return pool, closeFn, nil
}
