// AngelaMos | 2026
// repository.go

package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/washtrack/washtrack/internal/core"
)

type Repository interface {
	Get(ctx context.Context) (*BusinessSettings, error)
	Update(ctx context.Context, settings *BusinessSettings) error
	SetAsset(ctx context.Context, column string, ref *string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// Get returns the singleton row, inserting the default lazily. The insert
// has ON CONFLICT DO NOTHING so two racing first reads converge on one row.
func (r *repository) Get(ctx context.Context) (*BusinessSettings, error) {
	query := `
		SELECT id, business_name, address, phone, logo_path, favicon_path,
		       created_at, updated_at
		FROM business_settings
		ORDER BY created_at
		LIMIT 1`

	var s BusinessSettings
	err := r.db.GetContext(ctx, &s, query)
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get business settings: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO business_settings (id, business_name)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`,
		uuid.NewString(), defaultBusinessName,
	)
	if err != nil {
		return nil, fmt.Errorf("seed business settings: %w", err)
	}

	if err := r.db.GetContext(ctx, &s, query); err != nil {
		return nil, fmt.Errorf("get business settings: %w", err)
	}

	return &s, nil
}

func (r *repository) Update(ctx context.Context, settings *BusinessSettings) error {
	query := `
		UPDATE business_settings
		SET business_name = $2,
		    address = $3,
		    phone = $4,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, settings, query,
		settings.ID,
		settings.BusinessName,
		settings.Address,
		settings.Phone,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.ErrNotFound
		}
		return fmt.Errorf("update business settings: %w", err)
	}

	return nil
}

// SetAsset writes logo_path or favicon_path on the singleton row. The
// column name comes from a fixed internal enum, never from callers.
func (r *repository) SetAsset(ctx context.Context, column string, ref *string) error {
	if column != "logo_path" && column != "favicon_path" {
		return fmt.Errorf("unknown asset column %q", column)
	}

	query := fmt.Sprintf(`
		UPDATE business_settings
		SET %s = $1, updated_at = NOW()`, column)

	result, err := r.db.ExecContext(ctx, query, ref)
	if err != nil {
		return fmt.Errorf("set business asset: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set business asset: %w", err)
	}
	if rows == 0 {
		return core.ErrNotFound
	}

	return nil
}
