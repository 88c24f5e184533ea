package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vvka-141/pgstar/internal/config"
	"github.com/vvka-141/pgstar/pkg/pgstar"
)

// isolateEnv clears every variable the connection resolver reads and moves
// the test into an empty working directory.
func isolateEnv(t *testing.T) string {
	t.Helper()
	for _, name := range []string{
		"PGHOST", "PGPORT", "PGUSER", "PGPASSWORD", "PGDATABASE", "PGSSLMODE",
		"PGSTAR_CONNECTION_STRING", "DATABASE_URL",
		"AWS_REGION", "AZURE_TENANT_ID", "AZURE_CLIENT_ID", "AZURE_CLIENT_SECRET",
	} {
		t.Setenv(name, "")
	}
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestResolveConnectionFromFlags(t *testing.T) {
	tests := []struct {
		name     string
		flags    connectionFlags
		env      map[string]string
		project  *config.ProjectConfig
		wantHost string
		wantDB   string
		wantAuth pgstar.AuthMethod
		wantErr  error
	}{
		{
			name:     "defaults",
			wantHost: "localhost",
			wantDB:   pgstar.DefaultDatabase,
		},
		{
			name:     "database flag overrides connection string",
			flags:    connectionFlags{connection: "postgresql://u@db.internal:5432/postgres", database: "sparkifydb"},
			wantHost: "db.internal",
			wantDB:   "sparkifydb",
		},
		{
			name:    "connection string conflicts with host flag",
			flags:   connectionFlags{connection: "postgresql://u@db.internal/postgres", host: "other"},
			wantErr: pgstar.ErrInvalidConfig,
		},
		{
			name:     "environment connection string beats libpq variables",
			env:      map[string]string{"DATABASE_URL": "postgresql://u@envhost/envdb", "PGHOST": "pghost"},
			wantHost: "envhost",
			wantDB:   "envdb",
		},
		{
			name:     "granular flags beat environment connection string",
			flags:    connectionFlags{host: "flaghost"},
			env:      map[string]string{"DATABASE_URL": "postgresql://u@envhost/envdb", "PGDATABASE": "pgdb"},
			wantHost: "flaghost",
			wantDB:   "pgdb",
		},
		{
			name:     "project file fills the gaps",
			project:  &config.ProjectConfig{Connection: config.ConnectionConfig{Host: "yamlhost", Database: "yamldb"}},
			wantHost: "yamlhost",
			wantDB:   "yamldb",
		},
		{
			name:     "azure inferred from tenant id",
			env:      map[string]string{"AZURE_TENANT_ID": "tenant"},
			wantHost: "localhost",
			wantDB:   pgstar.DefaultDatabase,
			wantAuth: pgstar.AuthMethodAzureEntraID,
		},
		{
			name:     "explicit auth method",
			flags:    connectionFlags{authMethod: "aws", awsRegion: "eu-west-1"},
			wantHost: "localhost",
			wantDB:   pgstar.DefaultDatabase,
			wantAuth: pgstar.AuthMethodAWSIAM,
		},
		{
			name:    "unknown auth method",
			flags:   connectionFlags{authMethod: "ldap"},
			wantErr: pgstar.ErrUnsupportedAuthMethod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			got, err := resolveConnectionFromFlags(tt.flags, tt.project)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Host != tt.wantHost {
				t.Errorf("Host = %q, want %q", got.Host, tt.wantHost)
			}
			if got.Database != tt.wantDB {
				t.Errorf("Database = %q, want %q", got.Database, tt.wantDB)
			}
			if got.AuthMethod != tt.wantAuth {
				t.Errorf("AuthMethod = %v, want %v", got.AuthMethod, tt.wantAuth)
			}
		})
	}
}

func TestLoadProjectConfig(t *testing.T) {
	t.Run("missing default file is not an error", func(t *testing.T) {
		isolateEnv(t)

		cfg, err := loadProjectConfig("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg != nil {
			t.Errorf("expected nil config, got %+v", cfg)
		}
	})

	t.Run("missing explicit file is a config error", func(t *testing.T) {
		dir := isolateEnv(t)

		_, err := loadProjectConfig(filepath.Join(dir, "nope.yaml"))
		if !errors.Is(err, pgstar.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("default file in working directory", func(t *testing.T) {
		dir := isolateEnv(t)
		content := "song_data: data/song_data\nlog_data: data/log_data\nconnection:\n  host: yamlhost\n"
		if err := os.WriteFile(filepath.Join(dir, config.ConfigFileName), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		cfg, err := loadProjectConfig("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Connection.Host != "yamlhost" {
			t.Errorf("Host = %q", cfg.Connection.Host)
		}
		if cfg.SongData != filepath.Join(".", "data", "song_data") {
			t.Errorf("SongData = %q", cfg.SongData)
		}
	})

	t.Run("malformed file is a config error", func(t *testing.T) {
		dir := isolateEnv(t)
		if err := os.WriteFile(filepath.Join(dir, config.ConfigFileName), []byte("connection: [\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		_, err := loadProjectConfig("")
		if !errors.Is(err, pgstar.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
}
