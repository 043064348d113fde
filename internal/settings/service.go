// AngelaMos | 2026
// service.go

package settings

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/washtrack/washtrack/internal/core"
	"github.com/washtrack/washtrack/internal/storage"
)

const assetDir = "branding"

// Asset names the two uploadable branding slots.
type Asset string

const (
	AssetLogo    Asset = "logo"
	AssetFavicon Asset = "favicon"
)

func (a Asset) column() string {
	if a == AssetFavicon {
		return "favicon_path"
	}
	return "logo_path"
}

func (a Asset) Valid() bool {
	return a == AssetLogo || a == AssetFavicon
}

type Service struct {
	repo   Repository
	blobs  storage.Store
	logger *slog.Logger
}

func NewService(repo Repository, blobs storage.Store, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		blobs:  blobs,
		logger: logger.With("component", "settings_service"),
	}
}

func (s *Service) Get(ctx context.Context) (*BusinessSettings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return settings, nil
}

func (s *Service) Update(
	ctx context.Context,
	req *UpdateSettingsRequest,
) (*BusinessSettings, error) {
	existing, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	existing.BusinessName = strings.TrimSpace(req.BusinessName)
	existing.Address = req.Address
	existing.Phone = req.Phone

	if err := s.repo.Update(ctx, existing); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.NotFoundError("business_settings")
		}
		return nil, fmt.Errorf("update settings: %w", err)
	}

	return existing, nil
}

func (s *Service) UploadAsset(
	ctx context.Context,
	asset Asset,
	filename string,
	file io.Reader,
) (*BusinessSettings, error) {
	if !asset.Valid() {
		return nil, core.ValidationError("asset must be logo or favicon", nil)
	}

	existing, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	ref, err := s.blobs.Save(ctx, assetDir, filename, file)
	if err != nil {
		if core.IsAppError(err) {
			return nil, err
		}
		return nil, core.FileUploadError("could not store the uploaded file")
	}

	if err := s.repo.SetAsset(ctx, asset.column(), &ref); err != nil {
		if rmErr := s.blobs.Remove(ctx, ref); rmErr != nil {
			s.logger.WarnContext(ctx, "orphaned asset cleanup failed",
				"ref", ref, "error", rmErr)
		}
		return nil, fmt.Errorf("upload %s: %w", asset, err)
	}

	previous := existing.LogoPath
	if asset == AssetFavicon {
		previous = existing.FaviconPath
	}
	if previous != nil {
		if rmErr := s.blobs.Remove(ctx, *previous); rmErr != nil {
			s.logger.WarnContext(ctx, "stale asset cleanup failed",
				"ref", *previous, "error", rmErr)
		}
	}

	return s.Get(ctx)
}

func (s *Service) RemoveAsset(
	ctx context.Context,
	asset Asset,
) (*BusinessSettings, error) {
	if !asset.Valid() {
		return nil, core.ValidationError("asset must be logo or favicon", nil)
	}

	existing, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetAsset(ctx, asset.column(), nil); err != nil {
		return nil, fmt.Errorf("remove %s: %w", asset, err)
	}

	previous := existing.LogoPath
	if asset == AssetFavicon {
		previous = existing.FaviconPath
	}
	if previous != nil {
		if rmErr := s.blobs.Remove(ctx, *previous); rmErr != nil {
			s.logger.WarnContext(ctx, "asset cleanup failed",
				"ref", *previous, "error", rmErr)
		}
	}

	return s.Get(ctx)
}

// BusinessName satisfies the bill renderer's brand source. Failures fall
// back to the default name so billing never breaks on a settings read.
func (s *Service) BusinessName(ctx context.Context) string {
	settings, err := s.Get(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "settings read failed, using default name",
			"error", err)
		return defaultBusinessName
	}
	return settings.BusinessName
}
