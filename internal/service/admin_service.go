package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/folio/internal/db"
	"github.com/folio/internal/permission"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const minPasswordLength = 8

// AdminService 管理后台账号与权限
type AdminService struct {
	db  *gorm.DB
	now func() time.Time
}

// AdminInput 描述创建或更新后台账号的字段。更新时 Password 为空表示不修改密码
type AdminInput struct {
	Username    string
	Email       string
	Password    string
	Permissions []string
}

// NewAdminService 构造 AdminService
func NewAdminService(gdb *gorm.DB) *AdminService {
	return &AdminService{db: gdb, now: time.Now}
}

// List 返回全部后台账号
func (s *AdminService) List(ctx context.Context) ([]db.Admin, error) {
	var admins []db.Admin
	if err := s.db.WithContext(ctx).Order("username asc").Find(&admins).Error; err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	return admins, nil
}

// Get 根据主键获取后台账号
func (s *AdminService) Get(ctx context.Context, id uint) (*db.Admin, error) {
	return getRow[db.Admin](ctx, s.db, id, "管理员")
}

// Create 新建后台账号，用户名或邮箱重复时返回冲突
func (s *AdminService) Create(ctx context.Context, input AdminInput) (*db.Admin, error) {
	username, email, perms, err := validateAdminInput(input)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(input.Password)) < minPasswordLength {
		return nil, invalidf("密码至少需要 %d 个字符", minPasswordLength)
	}
	if err := s.ensureUnique(ctx, username, email, 0); err != nil {
		return nil, err
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	admin := db.Admin{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		Permissions:  datatypes.JSONSlice[string](perms.Strings()),
	}
	if err := s.db.WithContext(ctx).Create(&admin).Error; err != nil {
		return nil, translateDBError(err, "管理员")
	}
	return &admin, nil
}

// Update 修改账号信息，可选更新密码。不允许撤销最后一个超级管理员的全部权限
func (s *AdminService) Update(ctx context.Context, id uint, input AdminInput) (*db.Admin, error) {
	username, email, perms, err := validateAdminInput(input)
	if err != nil {
		return nil, err
	}

	var admin *db.Admin
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := getRow[db.Admin](ctx, tx, id, "管理员")
		if err != nil {
			return err
		}
		if err := s.ensureUniqueTx(tx, username, email, id); err != nil {
			return err
		}
		if permission.FromStored(current.Permissions).IsSuper() && !perms.IsSuper() {
			if err := ensureAnotherSuper(tx, id); err != nil {
				return err
			}
		}

		current.Username = username
		current.Email = email
		current.Permissions = datatypes.JSONSlice[string](perms.Strings())
		if password := strings.TrimSpace(input.Password); password != "" {
			if len(password) < minPasswordLength {
				return invalidf("密码至少需要 %d 个字符", minPasswordLength)
			}
			hashed, err := hashPassword(input.Password)
			if err != nil {
				return err
			}
			current.PasswordHash = hashed
		}

		if err := tx.Save(current).Error; err != nil {
			return translateDBError(err, "管理员")
		}
		admin = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return admin, nil
}

// Delete 删除后台账号，最后一个超级管理员不能删除
func (s *AdminService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := getRow[db.Admin](ctx, tx, id, "管理员")
		if err != nil {
			return err
		}
		if permission.FromStored(current.Permissions).IsSuper() {
			if err := ensureAnotherSuper(tx, id); err != nil {
				return err
			}
		}
		return deleteRow[db.Admin](ctx, tx, id, "管理员")
	})
}

// Authenticate 校验用户名（或邮箱）与密码，成功后记录登录时间
func (s *AdminService) Authenticate(ctx context.Context, login, password string) (*db.Admin, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	var admin db.Admin
	if err := s.db.WithContext(ctx).
		Where("username = ? OR email = ?", login, strings.ToLower(login)).
		First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load admin: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.now().UTC()
	if err := s.db.WithContext(ctx).Model(&admin).UpdateColumn("last_login_at", now).Error; err != nil {
		return nil, fmt.Errorf("record admin login: %w", err)
	}
	admin.LastLoginAt = &now
	return &admin, nil
}

func (s *AdminService) ensureUnique(ctx context.Context, username, email string, excludeID uint) error {
	return s.ensureUniqueTx(s.db.WithContext(ctx), username, email, excludeID)
}

func (s *AdminService) ensureUniqueTx(tx *gorm.DB, username, email string, excludeID uint) error {
	var count int64
	query := tx.Model(&db.Admin{}).Where("username = ? OR email = ?", username, email)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("check admin uniqueness: %w", err)
	}
	if count > 0 {
		return conflictf("用户名或邮箱已被其他管理员使用")
	}
	return nil
}

// ensureAnotherSuper fails unless a superuser other than excludeID exists.
func ensureAnotherSuper(tx *gorm.DB, excludeID uint) error {
	var others []db.Admin
	if err := tx.Where("id <> ?", excludeID).Find(&others).Error; err != nil {
		return fmt.Errorf("load admins: %w", err)
	}
	for _, other := range others {
		if permission.FromStored(other.Permissions).IsSuper() {
			return nil
		}
	}
	return invalidf("至少需要保留一名拥有全部权限的管理员")
}

func validateAdminInput(input AdminInput) (string, string, permission.Set, error) {
	username, err := requireText(input.Username, "用户名")
	if err != nil {
		return "", "", permission.Set{}, err
	}
	rawEmail, err := requireText(input.Email, "邮箱")
	if err != nil {
		return "", "", permission.Set{}, err
	}
	address, err := mail.ParseAddress(rawEmail)
	if err != nil {
		return "", "", permission.Set{}, invalidf("邮箱地址无效")
	}
	perms, err := permission.Parse(input.Permissions)
	if err != nil {
		return "", "", permission.Set{}, invalidf("权限无效：%v", err)
	}
	return username, strings.ToLower(address.Address), perms, nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}
