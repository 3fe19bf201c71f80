package data

import (
	_ "embed"

	"github.com/goccy/go-json"
)

//go:embed roles.json
var rolesJSON []byte

// Role is one entry of the embedded reference roles.
type Role struct {
	Name string `json:"name"`
}

// RoleNames returns the reference roles every store must hold.
func RoleNames() ([]string, error) {
	var roles []Role
	if err := json.Unmarshal(rolesJSON, &roles); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.Name)
	}
	return names, nil
}
