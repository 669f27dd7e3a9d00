package process

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ActionConfig binds a node action name to a local command.
type ActionConfig struct {
	Name        string            `yaml:"name" json:"name"`
	Command     string            `yaml:"command" json:"command"`
	Args        []string          `yaml:"args" json:"args"`
	Environment map[string]string `yaml:"env" json:"env"`
	Description string            `yaml:"description" json:"description"`
}

// ConfigFile is the layout of an actions file.
type ConfigFile struct {
	Actions []ActionConfig `yaml:"actions" json:"actions"`
}

// LoadActions reads an actions file (YAML, or JSON by extension) and indexes
// its entries by name. Entries without a name or command are rejected.
func LoadActions(path string) (map[string]ActionConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read actions file: %w", err)
	}

	var cfg ConfigFile
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	actions := make(map[string]ActionConfig, len(cfg.Actions))
	for i, action := range cfg.Actions {
		if action.Name == "" || action.Command == "" {
			return nil, fmt.Errorf("action #%d in %s needs a name and a command", i+1, filepath.Base(path))
		}
		if _, dup := actions[action.Name]; dup {
			return nil, fmt.Errorf("action '%s' is declared twice in %s", action.Name, filepath.Base(path))
		}
		actions[action.Name] = action
	}
	return actions, nil
}
