package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sparkmatch/sparkmatch-backend/internal/domain"
	"github.com/sparkmatch/sparkmatch-backend/internal/repository"
)

type photoRepository struct {
	db *sqlx.DB
}

func NewPhotoRepository(db *sqlx.DB) repository.PhotoRepository {
	return &photoRepository{db: db}
}

func (r *photoRepository) Add(ctx context.Context, photo *domain.Photo) error {
	if photo.ID == "" {
		photo.ID = uuid.NewString()
	}
	query := `
		INSERT INTO photos (id, profile_id, url, storage_key, is_primary, position)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	return r.db.QueryRowContext(ctx, query,
		photo.ID, photo.ProfileID, photo.URL, photo.StorageKey, photo.IsPrimary, photo.Position,
	).Scan(&photo.CreatedAt)
}

func (r *photoRepository) GetByID(ctx context.Context, id string) (*domain.Photo, error) {
	var photo domain.Photo
	err := r.db.GetContext(ctx, &photo, `SELECT * FROM photos WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPhotoNotFound
		}
		return nil, err
	}
	return &photo, nil
}

func (r *photoRepository) ListByProfile(ctx context.Context, profileID string) ([]domain.Photo, error) {
	var photos []domain.Photo
	query := `SELECT * FROM photos WHERE profile_id = $1 ORDER BY position, created_at`
	err := r.db.SelectContext(ctx, &photos, query, profileID)
	return photos, err
}

// SetPrimary marks one photo primary and clears the flag on the rest of the
// profile's photos, keeping the at-most-one-primary invariant.
func (r *photoRepository) SetPrimary(ctx context.Context, profileID, photoID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE photos SET is_primary = false WHERE profile_id = $1`, profileID); err != nil {
		return err
	}
	result, err := tx.ExecContext(ctx,
		`UPDATE photos SET is_primary = true WHERE id = $1 AND profile_id = $2`, photoID, profileID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrPhotoNotFound
	}
	return tx.Commit()
}

func (r *photoRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM photos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrPhotoNotFound
	}
	return nil
}
