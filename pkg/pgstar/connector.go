package pgstar

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connector establishes the database pool used for a run.
// Implementations cover the supported authentication methods
// (password, AWS IAM, Google Cloud SQL IAM, Azure Entra ID).
type Connector interface {
	// Connect establishes a connection pool to the database.
	// The returned pool must be closed by the caller when done.
	Connect(ctx context.Context) (*pgxpool.Pool, error)
}
