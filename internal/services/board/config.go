package board

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mcoot/cluegame-go/internal/model"
)

// LoadConfig reads a board configuration from a JSON file
func LoadConfig(path string) (model.BoardConfig, error) {
	var cfg model.BoardConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read board config: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %v", model.ErrInvalidBoardConfig, err)
	}

	return cfg, nil
}

// Load reads a board configuration file and builds the board from it
func Load(path string) (*Service, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return New(cfg)
}
