package services

import (
	"testing"

	"qrmenu/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreateDefaultsAndDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	tenant := createTestTenant(t, db, "tenant-a")

	service := NewUserService(db)

	user := &models.User{Email: "waiter@example.com", Username: "waiter"}
	require.NoError(t, service.Create(tenant.ID, user, "Secret@123"))
	assert.Equal(t, models.UserRoleStaff, user.Role)
	assert.Equal(t, models.UserStatusActive, user.Status)
	assert.True(t, user.CheckPassword("Secret@123"))
	assert.False(t, user.CheckPassword("wrong"))

	// 邮箱全局唯一，跨租户也不允许重复
	other := createTestTenant(t, db, "tenant-b")
	dup := &models.User{Email: "waiter@example.com", Username: "other"}
	err := service.Create(other.ID, dup, "Secret@123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "邮箱已被注册")
}

func TestUserListTenantIsolation(t *testing.T) {
	db := newTestDB(t)
	tenantA := createTestTenant(t, db, "tenant-a")
	tenantB := createTestTenant(t, db, "tenant-b")

	service := NewUserService(db)

	require.NoError(t, service.Create(tenantA.ID, &models.User{Email: "a@example.com"}, "Secret@123"))
	require.NoError(t, service.Create(tenantB.ID, &models.User{Email: "b@example.com"}, "Secret@123"))

	users, total, err := service.List(tenantA.ID, defaultPage())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.Equal(t, "a@example.com", users[0].Email)
	assert.Equal(t, "tenant-a", users[0].TenantName)
}

func TestUserUpdatePassword(t *testing.T) {
	db := newTestDB(t)
	tenant := createTestTenant(t, db, "tenant-a")

	service := NewUserService(db)

	user := &models.User{Email: "chef@example.com"}
	require.NoError(t, service.Create(tenant.ID, user, "Secret@123"))

	newPassword := "Changed@456"
	updated, err := service.Update(tenant.ID, user.ID, &UpdateUserInput{Password: &newPassword})
	require.NoError(t, err)
	assert.True(t, updated.CheckPassword("Changed@456"))
	assert.False(t, updated.CheckPassword("Secret@123"))
}
