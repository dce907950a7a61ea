package cli

import (
	"os"
	"path/filepath"
)

// Config holds CLI configuration
type Config struct {
	ServerURL      string
	Connection     string
	ConnectionFile string
	Output         string
	Verbose        bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:      getEnvOrDefault("AUCTION_SERVER", "http://localhost:8080"),
		Connection:     os.Getenv("AUCTION_CONNECTION"),
		ConnectionFile: getEnvOrDefault("AUCTION_CONNECTION_FILE", defaultConnectionFile()),
		Output:         "text",
		Verbose:        false,
	}
}

// LoadConnection loads the connection handle from file if not already set
func (c *Config) LoadConnection() error {
	if c.Connection != "" {
		return nil
	}

	data, err := os.ReadFile(c.ConnectionFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No connection file is fine
		}
		return err
	}

	c.Connection = string(data)
	return nil
}

// SaveConnection saves the connection handle to the connection file
func (c *Config) SaveConnection(conn string) error {
	c.Connection = conn

	dir := filepath.Dir(c.ConnectionFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.ConnectionFile, []byte(conn), 0600)
}

func defaultConnectionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".auctionctl/connection"
	}
	return filepath.Join(home, ".auctionctl", "connection")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
