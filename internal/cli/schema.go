package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pgstar/internal/db"
	"github.com/vvka-141/pgstar/internal/logging"
	"github.com/vvka-141/pgstar/internal/services"
	"github.com/vvka-141/pgstar/internal/ui"
	"github.com/vvka-141/pgstar/pkg/pgstar"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Create, drop or reset the star-schema tables",
	Long: `Manage the songs, artists, time, users and songplays tables.

  create  Create missing tables and indexes (safe to repeat)
  drop    Drop all five tables and their rows
  reset   Drop, then create

drop and reset ask you to type the database name first; --force replaces
the prompt with a short countdown.`,
}

var (
	schemaConnFlags connectionFlags
	schemaForce     bool
)

func newSchemaActionCmd(action services.SchemaAction, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(action),
		Short: short,
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchema(cmd, action)
		},
	}
}

func init() {
	rootCmd.AddCommand(schemaCmd)

	// Connection flags live on the parent so every action shares them.
	registerConnectionFlags(schemaCmd, &schemaConnFlags, true)
	schemaCmd.PersistentFlags().BoolVar(&schemaForce, "force", false,
		"Skip the interactive confirmation of drop and reset\n"+
			"A countdown is still shown; use in CI/CD pipelines")

	schemaCmd.AddCommand(
		newSchemaActionCmd(services.SchemaCreate, "Create missing star-schema tables"),
		newSchemaActionCmd(services.SchemaDrop, "Drop the star-schema tables"),
		newSchemaActionCmd(services.SchemaReset, "Drop and recreate the star-schema tables"),
	)
}

func runSchema(cmd *cobra.Command, action services.SchemaAction) error {
	logger := logging.NewConsoleLogger(getVerboseFlag(cmd))

	projectCfg, err := loadProjectConfig(getConfigFlag(cmd))
	if err != nil {
		return err
	}

	connConfig, err := resolveConnectionFromFlags(schemaConnFlags, projectCfg)
	if err != nil {
		return err
	}
	logConnectionVerbose(logger, connConfig)

	ctx, cancel := signalContext()
	defer cancel()

	var approver pgstar.Approver
	if schemaForce {
		approver = ui.NewForcedApprover(getVerboseFlag(cmd))
	} else {
		approver = ui.NewInteractiveApprover(getVerboseFlag(cmd))
	}

	svc := services.NewSchemaService(db.NewConnector, approver, logger)
	if err := svc.Apply(ctx, connConfig, action); err != nil {
		return fmt.Errorf("schema %s failed: %w", action, err)
	}
	return nil
}
