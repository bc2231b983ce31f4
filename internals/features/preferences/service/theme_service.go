package service

import (
	"context"
	"fmt"
	"log"

	"schoolpay_dashboard/internals/constants"
	"schoolpay_dashboard/internals/features/preferences/repository"
)

// ThemeService persists the dark/light preference.
type ThemeService struct {
	store repository.Store
}

func NewThemeService(store repository.Store) *ThemeService {
	return &ThemeService{store: store}
}

// Current returns the stored theme. Unknown or unreadable values fall back
// to the default.
func (s *ThemeService) Current(ctx context.Context) string {
	v, ok, err := s.store.Get(ctx, constants.StorageKeyTheme)
	if err != nil {
		log.Printf("[PREF] read theme: %v", err)
		return constants.DefaultTheme
	}
	if !ok || !validTheme(v) {
		return constants.DefaultTheme
	}
	return v
}

func (s *ThemeService) Set(ctx context.Context, theme string) error {
	if !validTheme(theme) {
		return fmt.Errorf("unknown theme %q", theme)
	}
	if err := s.store.Set(ctx, constants.StorageKeyTheme, theme); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// Toggle flips between dark and light and returns the new theme.
func (s *ThemeService) Toggle(ctx context.Context) (string, error) {
	next := constants.ThemeDark
	if s.Current(ctx) == constants.ThemeDark {
		next = constants.ThemeLight
	}
	if err := s.Set(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}

func validTheme(v string) bool {
	return v == constants.ThemeDark || v == constants.ThemeLight
}
