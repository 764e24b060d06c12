package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pulsecheck/pulse/internal/cli"
	"github.com/pulsecheck/pulse/internal/keyring"
	"github.com/pulsecheck/pulse/internal/storage/postgres"
)

// ConfigSetCmd stores a PostgreSQL connection string in the OS keyring
type ConfigSetCmd struct {
	Key   string `arg:"" enum:"connection-string" help:"Setting to store (connection-string)."`
	Value string `arg:"" help:"PostgreSQL connection string."`
}

func (cmd *ConfigSetCmd) Run(ctx *cli.Context) error {
	if !postgres.IsConnString(cmd.Value) {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}
	if _, err := postgres.ValidateConnString(cmd.Value); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		// the keyring is encrypted, so credentials are acceptable here
		fmt.Println("⚠️  Warning: Connection string contains embedded credentials.")
		fmt.Println("   It will be stored as-is in the encrypted OS keyring.")
	}

	if err := keyring.SetConnectionString(cmd.Value); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}
	fmt.Println("✓ Connection string stored successfully in OS keyring")
	fmt.Println("  pulse will use it whenever --config and PULSE_DB_CONNECTION are not set")
	return nil
}

// ConfigGetCmd prints the stored connection string with the password masked
type ConfigGetCmd struct {
	Key string `arg:"" enum:"connection-string" help:"Setting to show (connection-string)."`
}

func (cmd *ConfigGetCmd) Run(ctx *cli.Context) error {
	connStr, err := keyring.GetConnectionString()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring. Use 'pulse config set connection-string' to store one")
		}
		return fmt.Errorf("failed to retrieve connection string from keyring: %w", err)
	}
	fmt.Println(MaskPassword(connStr))
	return nil
}

// ConfigDeleteCmd removes the stored connection string
type ConfigDeleteCmd struct {
	Key string `arg:"" enum:"connection-string" help:"Setting to delete (connection-string)."`
}

func (cmd *ConfigDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}
	fmt.Println("✓ Connection string deleted from OS keyring")
	return nil
}

// ConfigStatusCmd reports whether the OS keyring can be used
type ConfigStatusCmd struct{}

func (cmd *ConfigStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		fmt.Println("❌ OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}
	fmt.Println("✓ OS keyring is available")
	if _, err := keyring.GetConnectionString(); err == nil {
		fmt.Println("✓ Connection string is stored in keyring")
	} else if errors.Is(err, keyring.ErrNotFound) {
		fmt.Println("ℹ No connection string stored in keyring")
	}
	return nil
}

// MaskPassword hides the password in URI and key=value connection strings.
func MaskPassword(connStr string) string {
	if scheme, rest, ok := strings.Cut(connStr, "://"); ok {
		at := strings.LastIndex(rest, "@")
		if at == -1 {
			return connStr
		}
		user, _, hasPass := strings.Cut(rest[:at], ":")
		if !hasPass {
			return connStr
		}
		return scheme + "://" + user + ":****" + rest[at:]
	}

	fields := strings.Fields(connStr)
	for i, f := range fields {
		if strings.HasPrefix(f, "password=") {
			fields[i] = "password=****"
		}
	}
	return strings.Join(fields, " ")
}
