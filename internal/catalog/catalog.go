// Package catalog loads the static role catalog from JSON or YAML documents.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/career-recommender/internal/schemas"
	"github.com/jonathan/career-recommender/internal/types"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

// document is the on-disk shape of a catalog
type document struct {
	Roles []types.RoleDefinition `json:"roles" yaml:"roles"`
}

// Load reads a catalog file. Files ending in .yaml or .yml are parsed as YAML,
// everything else as JSON. The document is validated before it is returned.
func Load(path string) ([]types.RoleDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to read file", Cause: err}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(path, data)
	default:
		return ParseJSON(path, data)
	}
}

// Default returns the embedded catalog
func Default() []types.RoleDefinition {
	roles, err := ParseYAML("default_catalog.yaml", defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return roles
}

// ParseJSON validates and decodes a JSON catalog document. The name is used in errors.
func ParseJSON(name string, data []byte) ([]types.RoleDefinition, error) {
	if err := schemas.ValidateCatalogJSON(data); err != nil {
		return nil, &LoadError{Path: name, Message: "schema validation failed", Cause: err}
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Path: name, Message: "failed to decode catalog", Cause: err}
	}

	if err := checkUniqueIDs(doc.Roles); err != nil {
		return nil, &LoadError{Path: name, Message: "invalid catalog", Cause: err}
	}
	return doc.Roles, nil
}

// ParseYAML converts a YAML catalog to JSON and hands it to ParseJSON
func ParseYAML(name string, data []byte) ([]types.RoleDefinition, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &LoadError{Path: name, Message: "failed to parse YAML", Cause: err}
	}

	converted, err := json.Marshal(raw)
	if err != nil {
		return nil, &LoadError{Path: name, Message: "YAML is not representable as JSON", Cause: err}
	}
	return ParseJSON(name, converted)
}

func checkUniqueIDs(roles []types.RoleDefinition) error {
	seen := make(map[string]int, len(roles))
	for i, role := range roles {
		if first, dup := seen[role.RoleID]; dup {
			return fmt.Errorf("roles.%d: roleId %q already used by roles.%d", i, role.RoleID, first)
		}
		seen[role.RoleID] = i
	}
	return nil
}

// Find returns the role with the given id, or nil
func Find(roles []types.RoleDefinition, roleID string) *types.RoleDefinition {
	for i := range roles {
		if roles[i].RoleID == roleID {
			return &roles[i]
		}
	}
	return nil
}
