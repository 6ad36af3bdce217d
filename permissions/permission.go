package permissions

import (
	_ "embed"
	"encoding/json"
	"slices"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Permission is one route entry: which roles may call it, or Skip for the
// public endpoints that bypass authentication entirely.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`
}

// FindPermissions looks up the entry for a chi route pattern and method.
// Routes without an entry return the zero Permission, which requires
// authentication but no particular role.
func (p *PermissionData) FindPermissions(path, method string) Permission {
	idx := slices.IndexFunc(p.Endpoints, func(endpoint Permission) bool {
		return endpoint.Path == path && endpoint.Method == method
	})

	if idx == -1 {
		return Permission{}
	}

	return p.Endpoints[idx]
}

// Get decodes the permission table embedded at build time.
func Get() *PermissionData {
	var permissions PermissionData

	err := json.Unmarshal(permissionsData, &permissions)
	if err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return &permissions
}
