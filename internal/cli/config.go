package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/pgstar/internal/config"
	"github.com/vvka-141/pgstar/pkg/pgstar"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect pgstar.yaml settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings as pgstar.yaml",
	Long: `Show resolves the connection the same way load does (flags, environment,
.env, pgstar.yaml, defaults) and prints the result in pgstar.yaml format.
The password is never printed.

Examples:
  # Save the current environment as a project file
  pgstar config show > pgstar.yaml`,
	Args: usageArgs(cobra.NoArgs),
	RunE: runConfigShow,
}

var configConnFlags connectionFlags

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	registerConnectionFlags(configShowCmd, &configConnFlags, false)
}

// effectiveConfig merges the resolved connection into the project file.
func effectiveConfig(connConfig *pgstar.ConnectionConfig, projectCfg *config.ProjectConfig) config.ProjectConfig {
	var out config.ProjectConfig
	if projectCfg != nil {
		out = *projectCfg
	}

	out.Connection = config.ConnectionConfig{
		Host:     connConfig.Host,
		Port:     connConfig.Port,
		Username: connConfig.Username,
		Database: connConfig.Database,
		SSLMode:  connConfig.SSLMode,
	}

	switch connConfig.AuthMethod {
	case pgstar.AuthMethodAWSIAM:
		out.Connection.AuthMethod = "aws"
		out.Connection.AWSRegion = connConfig.AWSRegion
	case pgstar.AuthMethodGoogleIAM:
		out.Connection.AuthMethod = "google"
		out.Connection.GoogleInstance = connConfig.GoogleInstance
	case pgstar.AuthMethodAzureEntraID:
		out.Connection.AuthMethod = "azure"
		out.Connection.AzureTenantID = connConfig.AzureTenantID
		out.Connection.AzureClientID = connConfig.AzureClientID
	}
	return out
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	projectCfg, err := loadProjectConfig(getConfigFlag(cmd))
	if err != nil {
		return err
	}

	connConfig, err := resolveConnectionFromFlags(configConnFlags, projectCfg)
	if err != nil {
		return err
	}

	var sb strings.Builder
	enc := yaml.NewEncoder(&sb)
	enc.SetIndent(2)
	if err := enc.Encode(effectiveConfig(connConfig, projectCfg)); err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), sb.String())
	return err
}
