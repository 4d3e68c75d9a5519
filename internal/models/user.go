package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User 用户模型，登录标识为邮箱
type User struct {
	BaseModel
	TenantID     uint       `json:"tenant_id" gorm:"not null;index"`
	Email        string     `json:"email" gorm:"unique;not null;size:100;index"`
	Username     string     `json:"username" gorm:"size:50"`
	FirstName    string     `json:"first_name" gorm:"size:100"`
	LastName     string     `json:"last_name" gorm:"size:100"`
	PasswordHash string     `json:"-" gorm:"not null;size:255"`
	Role         string     `json:"role" gorm:"default:'staff';size:20"`
	Status       string     `json:"status" gorm:"default:'active';size:20"`
	LastLoginAt  *time.Time `json:"last_login_at"`

	// 关联
	Tenant     Tenant `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE" json:"-"`
	TenantName string `json:"tenant_name,omitempty" gorm:"-"` // 序列化时填充，不落库
}

// TableName 表名
func (u *User) TableName() string {
	return "users"
}

// 用户角色常量
const (
	UserRoleOwner   = "owner"
	UserRoleManager = "manager"
	UserRoleStaff   = "staff"
)

// 用户状态常量
const (
	UserStatusActive    = "active"
	UserStatusInactive  = "inactive"
	UserStatusSuspended = "suspended"
)

// SetPassword 设置密码 - 数据操作方法
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

// CheckPassword 验证密码 - 数据操作方法
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}
