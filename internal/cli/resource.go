package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// readResourceFile reads a YAML or JSON file and decodes it into out.
// YAML is converted to JSON first so the wire types' json tags apply.
func readResourceFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read %s: %w", path, err)
	}
	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return fmt.Errorf("unable to parse %s: %w", path, err)
	}
	if err := json.Unmarshal(jsonData, out); err != nil {
		return fmt.Errorf("unable to decode %s: %w", path, err)
	}
	return nil
}
