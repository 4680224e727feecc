package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/folio/internal/db"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const orderByRecommended = "is_recommended desc, sort_order asc, id asc"

// OfferingService manages the service packages listed on the site. The
// name avoids clashing with the package itself.
type OfferingService struct {
	db *gorm.DB
}

// OfferingInput represents fields accepted when saving a service package.
type OfferingInput struct {
	ServiceType   string
	Title         string
	Description   string
	Features      []string
	PriceText     string
	IsRecommended bool
	TechFocus     []string
	SortOrder     *int
	IsVisible     *bool
}

// NewOfferingService creates an OfferingService instance.
func NewOfferingService(gdb *gorm.DB) *OfferingService {
	return &OfferingService{db: gdb}
}

// List returns every service package, recommended ones first.
func (s *OfferingService) List(ctx context.Context) ([]db.Service, error) {
	return listRows[db.Service](ctx, s.db, false, orderByRecommended)
}

// ListVisible returns the public service packages.
func (s *OfferingService) ListVisible(ctx context.Context) ([]db.Service, error) {
	return listRows[db.Service](ctx, s.db, true, orderByRecommended)
}

// Get fetches a service package by id.
func (s *OfferingService) Get(ctx context.Context, id uint) (*db.Service, error) {
	return getRow[db.Service](ctx, s.db, id, "服务")
}

// Create inserts a new service package.
func (s *OfferingService) Create(ctx context.Context, input OfferingInput) (*db.Service, error) {
	offering := db.Service{}
	if err := applyOfferingInput(&offering, input); err != nil {
		return nil, err
	}

	sortOrder, err := resolveSort[db.Service](ctx, s.db, input.SortOrder)
	if err != nil {
		return nil, err
	}
	offering.SortOrder = sortOrder
	offering.IsVisible = resolveVisible(input.IsVisible, true)

	if err := s.db.WithContext(ctx).Create(&offering).Error; err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	return &offering, nil
}

// Update modifies a service package.
func (s *OfferingService) Update(ctx context.Context, id uint, input OfferingInput) (*db.Service, error) {
	offering, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyOfferingInput(offering, input); err != nil {
		return nil, err
	}
	if input.SortOrder != nil {
		offering.SortOrder = *input.SortOrder
	}
	offering.IsVisible = resolveVisible(input.IsVisible, offering.IsVisible)

	if err := s.db.WithContext(ctx).Save(offering).Error; err != nil {
		return nil, fmt.Errorf("update service: %w", err)
	}
	return offering, nil
}

// Delete removes a service package.
func (s *OfferingService) Delete(ctx context.Context, id uint) error {
	return deleteRow[db.Service](ctx, s.db, id, "服务")
}

func applyOfferingInput(offering *db.Service, input OfferingInput) error {
	serviceType, err := requireOneOf(strings.ToLower(input.ServiceType), "服务类型", db.ServiceTypes)
	if err != nil {
		return err
	}
	title, err := requireText(input.Title, "标题")
	if err != nil {
		return err
	}

	offering.ServiceType = serviceType
	offering.Title = title
	offering.Description = strings.TrimSpace(input.Description)
	offering.Features = datatypes.JSONSlice[string](cleanList(input.Features))
	offering.PriceText = strings.TrimSpace(input.PriceText)
	offering.IsRecommended = input.IsRecommended
	offering.TechFocus = datatypes.JSONSlice[string](cleanList(input.TechFocus))
	return nil
}
