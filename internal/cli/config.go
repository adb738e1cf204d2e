package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// Config holds CLI configuration
type Config struct {
	ServerURL  string
	PlayerID   string
	PlayerFile string
	Output     string
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:  getEnvOrDefault("CLUEGAME_SERVER", "http://localhost:8080"),
		PlayerID:   os.Getenv("CLUEGAME_PLAYER"),
		PlayerFile: getEnvOrDefault("CLUEGAME_PLAYER_FILE", defaultPlayerFile()),
		Output:     "text",
	}
}

// LoadPlayerID loads the player ID from file if not already set
func (c *Config) LoadPlayerID() error {
	if c.PlayerID != "" {
		return nil
	}

	data, err := os.ReadFile(c.PlayerFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Not joined yet
		}
		return err
	}

	c.PlayerID = strings.TrimSpace(string(data))
	return nil
}

// SavePlayerID saves the player ID to the player file
func (c *Config) SavePlayerID(playerID string) error {
	c.PlayerID = playerID

	dir := filepath.Dir(c.PlayerFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.PlayerFile, []byte(playerID), 0600)
}

// ClearPlayerID forgets the saved player ID
func (c *Config) ClearPlayerID() error {
	c.PlayerID = ""
	if err := os.Remove(c.PlayerFile); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func defaultPlayerFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cluegame/player"
	}
	return filepath.Join(home, ".cluegame", "player")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
