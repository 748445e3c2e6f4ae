// Package roles holds the role capability registry. Capabilities are declared
// in an embedded YAML file rather than scattered through the code, so the
// full permission matrix is reviewable in one place.
package roles

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"vellum/internal/domain/models"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Capabilities are the per-role permission flags.
type Capabilities struct {
	Name            string `yaml:"name"`
	ViewAll         bool   `yaml:"view_all"`
	EditDocuments   bool   `yaml:"edit_documents"`
	DeleteDocuments bool   `yaml:"delete_documents"`
	ManageUsers     bool   `yaml:"manage_users"`
	ViewAudit       bool   `yaml:"view_audit"`
}

type roleFile struct {
	Roles []Capabilities `yaml:"roles"`
}

// Registry maps roles to their capabilities.
type Registry struct {
	roles map[models.Role]Capabilities
	mu    sync.RWMutex
}

// NewRegistry creates a registry from the embedded roles.yaml.
// Every role the domain knows must be declared in the file.
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/roles.yaml")
	if err != nil {
		return nil, fmt.Errorf("read roles config: %w", err)
	}

	var file roleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal roles config: %w", err)
	}

	r := &Registry{roles: make(map[models.Role]Capabilities, len(file.Roles))}
	for _, caps := range file.Roles {
		role, err := models.ParseRole(caps.Name)
		if err != nil {
			return nil, fmt.Errorf("roles config: %w", err)
		}
		r.roles[role] = caps
	}

	for _, required := range []models.Role{models.RoleReader, models.RoleEditor, models.RoleAdmin} {
		if _, ok := r.roles[required]; !ok {
			return nil, fmt.Errorf("roles config: role %q not declared", required)
		}
	}

	return r, nil
}

// Get returns the capabilities for a role. Unknown roles get zero
// capabilities rather than an error: an unrecognized role must never
// escalate.
func (r *Registry) Get(role models.Role) Capabilities {
	r.mu.RLock()
	defer r.mu.RUnlock()

	caps, ok := r.roles[role]
	if !ok {
		return Capabilities{Name: string(role)}
	}
	return caps
}
