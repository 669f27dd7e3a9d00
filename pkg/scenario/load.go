package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Load reads the slot table and every scenario file, merges the scenarios
// into one graph and validates the result.
func Load(slotTable string, scenarioFiles ...string) (*Graph, *Registry, error) {
	if len(scenarioFiles) == 0 {
		return nil, nil, fmt.Errorf("at least one scenario file is required")
	}

	registry, err := LoadSlotTable(slotTable)
	if err != nil {
		return nil, nil, err
	}

	graphs := make([]*Graph, 0, len(scenarioFiles))
	for _, path := range scenarioFiles {
		g, err := LoadScenarioFile(path)
		if err != nil {
			return nil, nil, err
		}
		graphs = append(graphs, g)
	}

	graph, err := Merge(graphs...)
	if err != nil {
		return nil, nil, err
	}

	if err := Validate(graph, registry); err != nil {
		return nil, nil, fmt.Errorf("scenario integrity check failed:\n%w", err)
	}
	return graph, registry, nil
}

// Discover lists the inputs of a scenario directory: the slot table (the first
// .csv or .xlsx file) and every .json, .yaml or .yml scenario file, in lexical order.
func Discover(dir string) (string, []string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read scenario directory: %w", err)
	}

	var slotTable string
	var scenarios []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".csv", ".xlsx":
			if slotTable == "" {
				slotTable = path
			}
		case ".json", ".yaml", ".yml":
			scenarios = append(scenarios, path)
		}
	}

	if slotTable == "" {
		return "", nil, fmt.Errorf("no slot table (.csv or .xlsx) found in '%s'", dir)
	}
	if len(scenarios) == 0 {
		return "", nil, fmt.Errorf("no scenario files found in '%s'", dir)
	}
	sort.Strings(scenarios)
	return slotTable, scenarios, nil
}

// LoadDir discovers and loads a scenario directory.
func LoadDir(dir string) (*Graph, *Registry, error) {
	slotTable, scenarios, err := Discover(dir)
	if err != nil {
		return nil, nil, err
	}
	return Load(slotTable, scenarios...)
}
