package db

import (
	"context"
	"fmt"
	"net"

	"cloud.google.com/go/cloudsqlconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/pgstar/pkg/pgstar"
)

// GoogleCloudSQLConnector uses the Cloud SQL Go Connector with IAM database
// authentication. The dialer handles TLS, so sslmode is disabled on the pgx side.
//
// Close must be called after the pool is closed.
type GoogleCloudSQLConnector struct {
	config *pgstar.ConnectionConfig
	logger pgstar.Logger
	dialer *cloudsqlconn.Dialer
}

func NewGoogleCloudSQLConnector(config *pgstar.ConnectionConfig, logger pgstar.Logger) *GoogleCloudSQLConnector {
	return &GoogleCloudSQLConnector{config: config, logger: logger}
}

func (c *GoogleCloudSQLConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	dialer, err := cloudsqlconn.NewDialer(ctx, cloudsqlconn.WithIAMAuthN())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Cloud SQL dialer: %w", pgstar.ErrConnectionFailed, err)
	}

	// The host is a placeholder: DialFunc ignores the address it is given.
	viaDialer := *c.config
	viaDialer.Host = "localhost"
	viaDialer.Password = ""
	viaDialer.SSLMode = "disable"

	pool, err := openPool(ctx, &viaDialer, c.logger, func(pc *pgxpool.Config) {
		pc.ConnConfig.DialFunc = func(ctx context.Context, _, _ string) (net.Conn, error) {
			return dialer.Dial(ctx, c.config.GoogleInstance)
		}
	})
	if err != nil {
		dialer.Close()
		return nil, fmt.Errorf("%w: Cloud SQL instance %s: %w", pgstar.ErrConnectionFailed, c.config.GoogleInstance, err)
	}

	c.dialer = dialer
	return pool, nil
}

func (c *GoogleCloudSQLConnector) Close() error {
	if c.dialer != nil {
		err := c.dialer.Close()
		c.dialer = nil
		return err
	}
	return nil
}
