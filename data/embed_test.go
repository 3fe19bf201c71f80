package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleNames(t *testing.T) {
	names, err := RoleNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"Admin", "User", "Expert"}, names)
}
