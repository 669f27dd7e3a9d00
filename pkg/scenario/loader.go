package scenario

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/tendril/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// NameFromPath derives the scenario name from a file path: the base name up
// to its first dot ("scenario-buy.v2.json" -> "scenario-buy").
func NameFromPath(path string) string {
	base := filepath.Base(path)
	name, _, _ := strings.Cut(base, ".")
	return name
}

// LoadScenarioFile reads a scenario (JSON or YAML array of node records) and
// returns its nodes qualified by the scenario name.
func LoadScenarioFile(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}

	nodes, err := ParseScenario(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse scenario %s: %w", path, err)
	}

	return NewGraph(Qualify(NameFromPath(path), nodes)...)
}

// ParseScenario decodes unqualified node records. ext selects the format
// (".json", ".yaml" or ".yml"); anything else is treated as JSON.
func ParseScenario(data []byte, ext string) ([]domain.Node, error) {
	var records []map[string]any
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, err
		}
	}

	nodes := make([]domain.Node, 0, len(records))
	for i, record := range records {
		node, err := decodeNode(record)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func decodeNode(record map[string]any) (domain.Node, error) {
	var node domain.Node
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: &node,
		// Lets authors write `slot: size` instead of `slot: [size]`, and numeric ids.
		WeaklyTypedInput: true,
	})
	if err != nil {
		return node, err
	}
	if err := decoder.Decode(record); err != nil {
		return node, err
	}
	if node.ID == "" {
		return node, fmt.Errorf("node record is missing 'id'")
	}
	return node, nil
}
