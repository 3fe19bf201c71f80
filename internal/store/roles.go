package store

import (
	"context"
	"strings"

	"github.com/localnerve/shopdb/internal/models"
	"github.com/localnerve/shopdb/internal/types"
)

// FindRole returns the role with the given name, case-insensitively.
func FindRole(ctx context.Context, st Store, name string) (*models.Role, error) {
	roles, err := st.Roles().List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range roles {
		if strings.EqualFold(roles[i].Name, name) {
			return &roles[i], nil
		}
	}
	return nil, types.NotFound("Role %s not found", name)
}

// EnsureRoles creates the named roles that do not exist yet.
func EnsureRoles(ctx context.Context, st Store, names []string) (int, error) {
	roles, err := st.Roles().List(ctx)
	if err != nil {
		return 0, err
	}
	existing := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		existing[strings.ToLower(r.Name)] = struct{}{}
	}

	created := 0
	for _, name := range names {
		if _, ok := existing[strings.ToLower(name)]; ok {
			continue
		}
		if err := st.Roles().Create(ctx, &models.Role{Name: name}); err != nil {
			return created, err
		}
		existing[strings.ToLower(name)] = struct{}{}
		created++
	}
	return created, nil
}
