package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vvka-141/pgstar/internal/store"
	"github.com/vvka-141/pgstar/pkg/pgstar"
)

// SchemaAction names a DDL operation on the star schema.
type SchemaAction string

const (
	SchemaCreate SchemaAction = "create"
	SchemaDrop   SchemaAction = "drop"
	SchemaReset  SchemaAction = "reset"
)

// SchemaService applies the embedded star-schema DDL to a database.
// Drop and reset need the approver's consent first.
type SchemaService struct {
	connectorFactory ConnectorFactory
	approver         pgstar.Approver
	logger           pgstar.Logger
}

func NewSchemaService(connectorFactory ConnectorFactory, approver pgstar.Approver, logger pgstar.Logger) *SchemaService {
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if approver == nil {
		panic("approver cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &SchemaService{connectorFactory: connectorFactory, approver: approver, logger: logger}
}

// Apply connects with connConfig and runs action.
func (s *SchemaService) Apply(ctx context.Context, connConfig *pgstar.ConnectionConfig, action SchemaAction) error {
	var apply func(context.Context, store.Execer) error
	switch action {
	case SchemaCreate:
		apply = store.CreateSchema
	case SchemaDrop:
		apply = store.DropSchema
	case SchemaReset:
		apply = store.ResetSchema
	default:
		return fmt.Errorf("unknown schema action %q: %w", action, pgstar.ErrUsage)
	}

	if action != SchemaCreate {
		approved, err := s.approver.RequestApproval(ctx, connConfig.Database, string(action))
		if err != nil {
			return fmt.Errorf("approval for schema %s: %w", action, err)
		}
		if !approved {
			return fmt.Errorf("schema %s on %q: %w", action, connConfig.Database, pgstar.ErrApprovalDenied)
		}
	}

	if connConfig.AppName == "" {
		connConfig.AppName = pgstar.ApplicationNamePrefix + "/" + uuid.NewString()
	}

	pool, closePool, err := openPool(ctx, s.connectorFactory, connConfig, s.logger)
	if err != nil {
		return err
	}
	defer closePool()

	if err := apply(ctx, pool); err != nil {
		return fmt.Errorf("schema %s on %q: %w: %w", action, connConfig.Database, err, pgstar.ErrLoadFailed)
	}

	s.logger.Info("Schema %s completed on database %s", action, connConfig.Database)
	return nil
}
