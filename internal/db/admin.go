package db

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PermissionAll 是初始管理员使用的超级权限标记。
const PermissionAll = "all"

// Admin 定义了后台用户模型
type Admin struct {
	Model
	Username     string                      `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email        string                      `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string                      `gorm:"not null" json:"-"`
	Permissions  datatypes.JSONSlice[string] `json:"permissions"`
	LastLoginAt  *time.Time                  `json:"lastLoginAt"`
}

// EnsureAdmin 存在性检查：若用户名与密码均非空且不存在对应账号，则创建一个拥有全部权限的 bcrypt 哈希用户。
func EnsureAdmin(gdb *gorm.DB, username, email, password string) (bool, error) {
	trimmedUser := strings.TrimSpace(username)
	trimmedPassword := strings.TrimSpace(password)
	if trimmedUser == "" || trimmedPassword == "" {
		return false, nil
	}

	if gdb == nil {
		return false, errors.New("database not initialized")
	}

	trimmedEmail := strings.ToLower(strings.TrimSpace(email))
	if trimmedEmail == "" {
		trimmedEmail = strings.ToLower(trimmedUser) + "@localhost"
	}

	var existing Admin
	if err := gdb.Where("username = ?", trimmedUser).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(trimmedPassword), bcrypt.DefaultCost)
		if err != nil {
			return false, err
		}

		admin := Admin{
			Username:     trimmedUser,
			Email:        trimmedEmail,
			PasswordHash: string(hashed),
			Permissions:  datatypes.JSONSlice[string]{PermissionAll},
		}
		if err := gdb.Create(&admin).Error; err != nil {
			return false, err
		}
		return true, nil
	}

	return false, nil
}
