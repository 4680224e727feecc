package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Bootstrap seeds the rows the site expects to exist. It is safe to run on
// every start.
func Bootstrap(ctx context.Context, gdb *gorm.DB) error {
	if _, err := NewPersonalInfoService(gdb).Get(ctx); err != nil {
		return fmt.Errorf("bootstrap personal info: %w", err)
	}
	if err := NewSectionContentService(gdb).SeedDefaults(ctx); err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	if err := NewSiteSettingService(gdb).SeedSectionVisibility(ctx); err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	if err := NewSeoService(gdb).SeedDefaults(ctx); err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	return nil
}
