package services

import (
	"fmt"
	"time"

	"qrmenu/internal/models"
	"qrmenu/pkg/pagination"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// GetByID 根据ID获取用户（跨租户，供认证中间件使用）
func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, id).Error
	return &user, err
}

// GetByEmail 根据邮箱获取用户（登录入口，邮箱全局唯一）
func (s *UserService) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	return &user, err
}

// GetByTenant 获取租户内的用户
func (s *UserService) GetByTenant(tenantID, id uint) (*models.User, error) {
	var user models.User
	err := s.db.Where("tenant_id = ?", tenantID).First(&user, id).Error
	if err != nil {
		return nil, err
	}
	s.fillTenantName(&user)
	return &user, nil
}

// List 获取租户用户列表
func (s *UserService) List(tenantID uint, params *pagination.PageParams) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	query := s.db.Model(&models.User{}).Where("tenant_id = ?", tenantID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("id").
		Offset(params.GetOffset()).Limit(params.GetLimit()).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	for i := range users {
		s.fillTenantName(&users[i])
	}
	return users, total, nil
}

// Create 创建用户，租户ID始终取调用方租户，不接受请求体指定
func (s *UserService) Create(tenantID uint, user *models.User, password string) error {
	var count int64
	s.db.Model(&models.User{}).Where("email = ?", user.Email).Count(&count)
	if count > 0 {
		return fmt.Errorf("邮箱已被注册")
	}

	user.TenantID = tenantID
	if user.Role == "" {
		user.Role = models.UserRoleStaff
	}
	if user.Status == "" {
		user.Status = models.UserStatusActive
	}
	if err := user.SetPassword(password); err != nil {
		return fmt.Errorf("设置密码失败: %v", err)
	}

	return s.db.Create(user).Error
}

// UpdateUserInput 用户更新参数
type UpdateUserInput struct {
	Username  *string `json:"username"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Role      *string `json:"role" binding:"omitempty,oneof=owner manager staff"`
	Status    *string `json:"status" binding:"omitempty,oneof=active inactive suspended"`
	Password  *string `json:"password" binding:"omitempty,min=8"`
}

// Update 更新租户内用户
func (s *UserService) Update(tenantID, id uint, input *UpdateUserInput) (*models.User, error) {
	var user models.User
	if err := s.db.Where("tenant_id = ?", tenantID).First(&user, id).Error; err != nil {
		return nil, err
	}

	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.Status != nil {
		user.Status = *input.Status
	}
	if input.Password != nil {
		if err := user.SetPassword(*input.Password); err != nil {
			return nil, fmt.Errorf("设置密码失败: %v", err)
		}
	}

	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}
	s.fillTenantName(&user)
	return &user, nil
}

// Delete 删除租户内用户
func (s *UserService) Delete(tenantID, id uint) error {
	result := s.db.Where("tenant_id = ?", tenantID).Delete(&models.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateLastLogin 更新最后登录时间
func (s *UserService) UpdateLastLogin(id uint) error {
	now := time.Now()
	return s.db.Model(&models.User{}).Where("id = ?", id).
		Update("last_login_at", &now).Error
}

// IsActive 检查用户是否为激活状态
func (s *UserService) IsActive(user *models.User) bool {
	return user.Status == models.UserStatusActive
}

// fillTenantName 填充租户名称展示字段
func (s *UserService) fillTenantName(user *models.User) {
	var tenant models.Tenant
	if err := s.db.Select("name").First(&tenant, user.TenantID).Error; err == nil {
		user.TenantName = tenant.Name
	}
}
