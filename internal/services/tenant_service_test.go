package services

import (
	"testing"

	"qrmenu/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestGetActiveBySlug(t *testing.T) {
	db := newTestDB(t)
	createTestTenant(t, db, "demo-restaurant")

	service := NewTenantService(db)

	tenant, err := service.GetActiveBySlug("demo-restaurant")
	require.NoError(t, err)
	assert.Equal(t, "demo-restaurant", tenant.Slug)

	_, err = service.GetActiveBySlug("missing")
	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestGetActiveBySlugRejectsInactive(t *testing.T) {
	db := newTestDB(t)
	tenant := createTestTenant(t, db, "demo-restaurant")
	require.NoError(t, db.Model(tenant).Update("status", models.TenantStatusInactive).Error)

	service := NewTenantService(db)

	_, err := service.GetActiveBySlug("demo-restaurant")
	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestUpdateProfilePartial(t *testing.T) {
	db := newTestDB(t)
	tenant := createTestTenant(t, db, "demo-restaurant")

	service := NewTenantService(db)

	name := "Demo Restaurant"
	theme := datatypes.JSON(`{"primary":"#ff0000"}`)
	updated, err := service.UpdateProfile(tenant.ID, &UpdateProfileInput{
		Name:      &name,
		ThemeJSON: &theme,
	})
	require.NoError(t, err)
	assert.Equal(t, "Demo Restaurant", updated.Name)
	assert.JSONEq(t, `{"primary":"#ff0000"}`, string(updated.ThemeJSON))

	// nil字段不动
	assert.Equal(t, "demo-restaurant", updated.Slug)
}
