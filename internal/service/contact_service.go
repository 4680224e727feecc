package service

import (
	"context"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/folio/internal/db"
	"gorm.io/gorm"
)

const maxContactMessageLength = 5000

// Notifier is told about every stored contact submission.
type Notifier interface {
	NotifyContact(ctx context.Context, submission db.ContactSubmission) error
}

// LogNotifier writes submissions to the standard logger.
type LogNotifier struct{}

// NotifyContact implements Notifier.
func (LogNotifier) NotifyContact(_ context.Context, submission db.ContactSubmission) error {
	log.Printf("[contact] new message #%d from %s <%s>: %s", submission.ID, submission.Name, submission.Email, submission.Subject)
	return nil
}

// ContactService 负责联系表单留言的写入与查询
type ContactService struct {
	db       *gorm.DB
	settings *SiteSettingService
	notifier Notifier
	now      func() time.Time
}

// ContactInput 联系表单提交的字段
type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// NewContactService 构造 ContactService，notifier 为空时使用 LogNotifier
func NewContactService(gdb *gorm.DB, notifier Notifier) *ContactService {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &ContactService{
		db:       gdb,
		settings: NewSiteSettingService(gdb),
		notifier: notifier,
		now:      time.Now,
	}
}

// Submit 校验并保存留言，随后通知站点主人。通知失败只记录日志，不影响提交结果
func (s *ContactService) Submit(ctx context.Context, input ContactInput, ip string) (*db.ContactSubmission, error) {
	name, err := requireText(input.Name, "姓名")
	if err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(name) > 120 {
		return nil, invalidf("姓名过长")
	}
	rawEmail, err := requireText(input.Email, "邮箱")
	if err != nil {
		return nil, err
	}
	address, err := mail.ParseAddress(rawEmail)
	if err != nil {
		return nil, invalidf("请输入有效的邮箱地址")
	}
	message, err := requireText(input.Message, "留言")
	if err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(message) > maxContactMessageLength {
		return nil, invalidf("留言不能超过 %d 个字符", maxContactMessageLength)
	}

	submission := db.ContactSubmission{
		Name:        name,
		Email:       address.Address,
		Subject:     strings.TrimSpace(input.Subject),
		Message:     message,
		IPAddress:   strings.TrimSpace(ip),
		SubmittedAt: s.now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&submission).Error; err != nil {
		return nil, fmt.Errorf("store contact submission: %w", err)
	}

	notify, err := s.settings.Bool(ctx, db.SettingKeyContactNotifyEnabled, true)
	if err != nil {
		log.Printf("[contact] read notify setting failed: %v", err)
	}
	if notify {
		if err := s.notifier.NotifyContact(ctx, submission); err != nil {
			log.Printf("[contact] notify submission %d failed: %v", submission.ID, err)
		}
	}
	return &submission, nil
}

// List 返回最新的留言，limit <= 0 时返回全部
func (s *ContactService) List(ctx context.Context, limit int) ([]db.ContactSubmission, error) {
	query := s.db.WithContext(ctx).Order("submitted_at desc").Order("id desc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []db.ContactSubmission
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list contact submissions: %w", err)
	}
	return rows, nil
}

// Count 返回留言总数
func (s *ContactService) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&db.ContactSubmission{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count contact submissions: %w", err)
	}
	return count, nil
}
