package db

import (
	"context"
	"time"
)

// TokenProvider issues short-lived tokens used as the PostgreSQL password
// by cloud IAM authentication.
type TokenProvider interface {
	GetToken(ctx context.Context) (token string, expiresOn time.Time, err error)

	// String describes the provider for logs. It never includes secrets.
	String() string
}

// AzurePostgreSQLScope is the Entra ID resource for Azure Database for PostgreSQL.
const AzurePostgreSQLScope = "https://ossrdbms-aad.database.windows.net/.default"

// tokenExpiryWarning is how close to expiry a fresh token must be for a warning.
const tokenExpiryWarning = 5 * time.Minute
