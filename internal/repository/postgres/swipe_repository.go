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

type swipeRepository struct {
	db *sqlx.DB
}

func NewSwipeRepository(db *sqlx.DB) repository.SwipeRepository {
	return &swipeRepository{db: db}
}

func (r *swipeRepository) Create(ctx context.Context, swipe *domain.Swipe) error {
	if swipe.ID == "" {
		swipe.ID = uuid.NewString()
	}
	query := `
		INSERT INTO swipes (id, swiper_id, target_id, action)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	return r.db.QueryRowContext(ctx, query, swipe.ID, swipe.SwiperID, swipe.TargetID, swipe.Action).
		Scan(&swipe.CreatedAt)
}

func (r *swipeRepository) GetByUsers(ctx context.Context, swiperID, targetID string) (*domain.Swipe, error) {
	var swipe domain.Swipe
	query := `SELECT * FROM swipes WHERE swiper_id = $1 AND target_id = $2`
	err := r.db.GetContext(ctx, &swipe, query, swiperID, targetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &swipe, nil
}

func (r *swipeRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM swipes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *swipeRepository) SwipedTargetIDs(ctx context.Context, swiperID string) ([]string, error) {
	var ids []string
	query := `SELECT target_id FROM swipes WHERE swiper_id = $1`
	err := r.db.SelectContext(ctx, &ids, query, swiperID)
	return ids, err
}

func (r *swipeRepository) LikesReceived(ctx context.Context, targetID string, limit, offset int) ([]*domain.Swipe, error) {
	var swipes []*domain.Swipe
	query := `
		SELECT * FROM swipes
		WHERE target_id = $1 AND action IN ('LIKE', 'SUPER_LIKE')
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	err := r.db.SelectContext(ctx, &swipes, query, targetID, limit, offset)
	return swipes, err
}
