package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sparkmatch/sparkmatch-backend/internal/domain"
	"github.com/sparkmatch/sparkmatch-backend/internal/repository"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `
	id, user_id, first_name, last_name, date_of_birth, gender, bio,
	occupation, education, interests, latitude, longitude, created_at, updated_at
`

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	query := `
		INSERT INTO profiles (
			id, user_id, first_name, last_name, date_of_birth, gender,
			bio, occupation, education, interests, latitude, longitude
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		profile.ID, profile.UserID, profile.FirstName, profile.LastName,
		profile.DateOfBirth, profile.Gender, profile.Bio, profile.Occupation,
		profile.Education, pq.Array(profile.Interests), profile.Latitude, profile.Longitude,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	profile, err := r.scanProfile(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		return nil, err
	}
	if err := r.attachPhotos(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *profileRepository) scanProfile(row *sql.Row) (*domain.Profile, error) {
	var profile domain.Profile
	err := row.Scan(
		&profile.ID, &profile.UserID, &profile.FirstName, &profile.LastName,
		&profile.DateOfBirth, &profile.Gender, &profile.Bio, &profile.Occupation,
		&profile.Education, pq.Array(&profile.Interests),
		&profile.Latitude, &profile.Longitude,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) attachPhotos(ctx context.Context, profile *domain.Profile) error {
	var photos []domain.Photo
	query := `SELECT * FROM photos WHERE profile_id = $1 ORDER BY position, created_at`
	if err := r.db.SelectContext(ctx, &photos, query, profile.ID); err != nil {
		return err
	}
	profile.Photos = photos
	return nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET first_name = $1, last_name = $2, date_of_birth = $3, gender = $4,
		    bio = $5, occupation = $6, education = $7, interests = $8,
		    latitude = $9, longitude = $10, updated_at = CURRENT_TIMESTAMP
		WHERE id = $11
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.FirstName, profile.LastName, profile.DateOfBirth, profile.Gender,
		profile.Bio, profile.Occupation, profile.Education, pq.Array(profile.Interests),
		profile.Latitude, profile.Longitude, profile.ID,
	).Scan(&profile.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrProfileNotFound
	}
	return err
}

func (r *profileRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) Search(ctx context.Context, search repository.ProfileSearch, limit, offset int) ([]*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles p WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	if search.ExcludeUser != "" {
		query += fmt.Sprintf(" AND p.user_id <> $%d", argCount)
		args = append(args, search.ExcludeUser)
		argCount++
	}
	if len(search.Genders) > 0 {
		genders := make([]string, 0, len(search.Genders))
		for _, g := range search.Genders {
			genders = append(genders, string(g))
		}
		query += fmt.Sprintf(" AND p.gender = ANY($%d)", argCount)
		args = append(args, pq.Array(genders))
		argCount++
	}
	if len(search.Interests) > 0 {
		query += fmt.Sprintf(" AND p.interests && $%d", argCount)
		args = append(args, pq.Array(search.Interests))
		argCount++
	}
	if search.VerifiedOnly {
		query += " AND EXISTS (SELECT 1 FROM users u WHERE u.id = p.user_id AND u.is_verified)"
	}

	query += fmt.Sprintf(" ORDER BY p.created_at DESC LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*domain.Profile
	for rows.Next() {
		var p domain.Profile
		err := rows.Scan(
			&p.ID, &p.UserID, &p.FirstName, &p.LastName,
			&p.DateOfBirth, &p.Gender, &p.Bio, &p.Occupation,
			&p.Education, pq.Array(&p.Interests),
			&p.Latitude, &p.Longitude,
			&p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, p := range profiles {
		if err := r.attachPhotos(ctx, p); err != nil {
			return nil, err
		}
	}
	return profiles, nil
}
