package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/pgstar/internal/retry"
	"github.com/vvka-141/pgstar/pkg/pgstar"
)

// TokenBasedConnector authenticates with a token from a TokenProvider
// (AWS IAM, Azure Entra ID). A new token is fetched on every attempt.
type TokenBasedConnector struct {
	config        *pgstar.ConnectionConfig
	tokenProvider TokenProvider
	providerName  string
	logger        pgstar.Logger
	retryExecutor *retry.Executor
}

// NewTokenBasedConnector creates a token connector. providerName appears in
// messages, e.g. "AWS IAM".
func NewTokenBasedConnector(config *pgstar.ConnectionConfig, tokenProvider TokenProvider, providerName string, logger pgstar.Logger) *TokenBasedConnector {
	return &TokenBasedConnector{
		config:        config,
		tokenProvider: tokenProvider,
		providerName:  providerName,
		logger:        logger,
		retryExecutor: newRetryExecutor(logger),
	}
}

func (c *TokenBasedConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool

	c.logger.Verbose("Authenticating with %s", c.tokenProvider)

	err := c.retryExecutor.Execute(ctx, func(ctx context.Context) error {
		token, expiresOn, err := c.tokenProvider.GetToken(ctx)
		if err != nil {
			return fmt.Errorf("failed to acquire %s token: %w", c.providerName, err)
		}

		if remaining := time.Until(expiresOn); remaining < tokenExpiryWarning {
			c.logger.Info("Warning: %s token expires in %v", c.providerName, remaining.Round(time.Second))
		}

		withToken := *c.config
		withToken.Password = token

		pool, err = openPool(ctx, &withToken, c.logger, nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pgstar.ErrConnectionFailed, err)
	}

	return pool, nil
}
