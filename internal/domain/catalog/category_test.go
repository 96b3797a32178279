package catalog_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finchmedia/finch/internal/domain/catalog"
	pkgerrors "github.com/finchmedia/finch/pkg/errors"
)

func TestNewCategory(t *testing.T) {
	c, err := catalog.NewCategory("Documentary", "Non-fiction films", true)
	require.NoError(t, err)

	assert.False(t, c.ID().IsZero())
	assert.Equal(t, "Documentary", c.Name())
	assert.Equal(t, "Non-fiction films", c.Description())
	assert.True(t, c.IsActive())
	assert.False(t, c.CreatedAt().IsZero())
	assert.True(t, c.UpdatedAt().IsZero())
}

func TestNewCategory_EmptyName(t *testing.T) {
	_, err := catalog.NewCategory("  ", "whatever", true)

	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
	assert.Equal(t, []string{"'name' should not be empty"}, pkgerrors.ValidationMessages(err))
}

func TestNewCategory_NameTooLong(t *testing.T) {
	_, err := catalog.NewCategory(strings.Repeat("x", 256), "", true)

	require.Error(t, err)
	assert.Equal(t, []string{"'name' must be between 1 and 255 characters"}, pkgerrors.ValidationMessages(err))
}

func TestCategory_Update(t *testing.T) {
	c, err := catalog.NewCategory("Docs", "", false)
	require.NoError(t, err)

	updated, err := c.Update("Documentary", "Non-fiction films", true)
	require.NoError(t, err)

	assert.Same(t, c, updated)
	assert.Equal(t, "Documentary", c.Name())
	assert.True(t, c.IsActive())
	assert.False(t, c.UpdatedAt().IsZero())
}

func TestCategory_ActivateDeactivate(t *testing.T) {
	c, err := catalog.NewCategory("Documentary", "", true)
	require.NoError(t, err)

	c.Deactivate()
	assert.False(t, c.IsActive())

	c.Activate()
	assert.True(t, c.IsActive())
}

func TestCategoryID_RoundTrip(t *testing.T) {
	id := catalog.NewCategoryID()

	parsed, err := catalog.ParseCategoryID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = catalog.ParseCategoryID("not-an-id")
	assert.Error(t, err)
}
