package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pgstar/pkg/pgstar"
)

// usageArgs marks errors of a positional-argument validator as usage errors,
// so they exit with ExitUsageError.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return fmt.Errorf("%w\n\nUsage: %s: %w", err, cmd.UseLine(), pgstar.ErrUsage)
		}
		return nil
	}
}

// requireFlag returns a usage error naming every way to supply a setting.
func requireFlag(cmd *cobra.Command, flag, yamlKey string) error {
	return fmt.Errorf(`missing required setting --%s

Provide via:
  1. Flag:         %s --%s <dir>
  2. pgstar.yaml:  %s: <dir>: %w`, flag, cmd.CommandPath(), flag, yamlKey, pgstar.ErrUsage)
}
