// Package profile covers profile CRUD, onboarding and photo management.
package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/sparkmatch/sparkmatch-backend/internal/domain"
	"github.com/sparkmatch/sparkmatch-backend/internal/repository"
	"github.com/sparkmatch/sparkmatch-backend/internal/usecase/discoveryfeed"
)

// PhotoUploader issues presigned upload URLs and deletes stored blobs.
type PhotoUploader interface {
	UploadURL(ctx context.Context, profileID, contentType string) (url, key string, err error)
	ReadURL(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// CreateProfileRequest carries the onboarding payload. Interests and a date
// of birth are required, the rest optional.
type CreateProfileRequest struct {
	FirstName   string        `json:"firstName" validate:"required"`
	LastName    *string       `json:"lastName,omitempty"`
	DateOfBirth time.Time     `json:"dateOfBirth" validate:"required"`
	Gender      domain.Gender `json:"gender" validate:"required"`
	Bio         *string       `json:"bio,omitempty"`
	Occupation  *string       `json:"occupation,omitempty"`
	Education   *string       `json:"education,omitempty"`
	Interests   []string      `json:"interests"`
	Latitude    *float64      `json:"latitude,omitempty"`
	Longitude   *float64      `json:"longitude,omitempty"`
}

// UpdateProfileRequest updates only the fields that are present.
type UpdateProfileRequest struct {
	FirstName  *string        `json:"firstName,omitempty"`
	LastName   *string        `json:"lastName,omitempty"`
	Gender     *domain.Gender `json:"gender,omitempty"`
	Bio        *string        `json:"bio,omitempty"`
	Occupation *string        `json:"occupation,omitempty"`
	Education  *string        `json:"education,omitempty"`
	Interests  []string       `json:"interests,omitempty"`
	Latitude   *float64       `json:"latitude,omitempty"`
	Longitude  *float64       `json:"longitude,omitempty"`
}

// UploadSlot is the response to an upload-url request: the client PUTs the
// photo to URL, then the photo row at Key becomes servable.
type UploadSlot struct {
	URL   string        `json:"uploadUrl"`
	Key   string        `json:"key"`
	Photo *domain.Photo `json:"photo"`
}

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
	photoRepo   repository.PhotoRepository
	storage     PhotoUploader
}

func NewProfileUseCase(
	profileRepo repository.ProfileRepository,
	photoRepo repository.PhotoRepository,
	storage PhotoUploader,
) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: profileRepo,
		photoRepo:   photoRepo,
		storage:     storage,
	}
}

func (uc *ProfileUseCase) GetMyProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	return uc.profileRepo.GetByUserID(ctx, userID)
}

var validate = validator.New()

// CreateProfile completes onboarding. Each user gets exactly one profile.
func (uc *ProfileUseCase) CreateProfile(ctx context.Context, userID string, req CreateProfileRequest) (*domain.Profile, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if !req.Gender.Valid() {
		return nil, fmt.Errorf("%w: unknown gender %q", domain.ErrInvalidInput, req.Gender)
	}
	if _, err := uc.profileRepo.GetByUserID(ctx, userID); err == nil {
		return nil, domain.ErrProfileAlreadyExists
	}

	profile := &domain.Profile{
		UserID:      userID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		Bio:         req.Bio,
		Occupation:  req.Occupation,
		Education:   req.Education,
		Interests:   req.Interests,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}
	if err := uc.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("creating profile: %w", err)
	}
	return profile, nil
}

func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*domain.Profile, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		profile.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		profile.LastName = req.LastName
	}
	if req.Gender != nil {
		if !req.Gender.Valid() {
			return nil, fmt.Errorf("%w: unknown gender %q", domain.ErrInvalidInput, *req.Gender)
		}
		profile.Gender = *req.Gender
	}
	if req.Bio != nil {
		profile.Bio = req.Bio
	}
	if req.Occupation != nil {
		profile.Occupation = req.Occupation
	}
	if req.Education != nil {
		profile.Education = req.Education
	}
	if req.Interests != nil {
		profile.Interests = req.Interests
	}
	if req.Latitude != nil {
		profile.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		profile.Longitude = req.Longitude
	}

	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}
	return profile, nil
}

// GetProfile returns another user's profile, annotated with the distance to
// the viewer when both share their location.
func (uc *ProfileUseCase) GetProfile(ctx context.Context, viewerID, userID string) (*domain.DiscoveryCandidate, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	view := &domain.DiscoveryCandidate{Profile: *profile}

	viewer, err := uc.profileRepo.GetByUserID(ctx, viewerID)
	if err == nil && viewer.Latitude != nil && viewer.Longitude != nil &&
		profile.Latitude != nil && profile.Longitude != nil {
		d := discoveryfeed.DistanceKm(*viewer.Latitude, *viewer.Longitude, *profile.Latitude, *profile.Longitude)
		view.DistanceKm = &d
	}
	return view, nil
}

// RequestPhotoUpload reserves a photo slot: it creates the photo row and
// hands back a presigned PUT URL. The first photo becomes primary.
func (uc *ProfileUseCase) RequestPhotoUpload(ctx context.Context, userID, contentType string) (*UploadSlot, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	url, key, err := uc.storage.UploadURL(ctx, profile.ID, contentType)
	if err != nil {
		return nil, fmt.Errorf("presigning upload: %w", err)
	}

	existing, err := uc.photoRepo.ListByProfile(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("listing photos: %w", err)
	}

	readURL, err := uc.storage.ReadURL(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("presigning read: %w", err)
	}

	photo := &domain.Photo{
		ProfileID:  profile.ID,
		URL:        readURL,
		StorageKey: key,
		IsPrimary:  len(existing) == 0,
		Position:   len(existing),
	}
	if err := uc.photoRepo.Add(ctx, photo); err != nil {
		return nil, fmt.Errorf("adding photo: %w", err)
	}

	return &UploadSlot{URL: url, Key: key, Photo: photo}, nil
}

func (uc *ProfileUseCase) SetPrimaryPhoto(ctx context.Context, userID, photoID string) error {
	profile, photo, err := uc.ownedPhoto(ctx, userID, photoID)
	if err != nil {
		return err
	}
	return uc.photoRepo.SetPrimary(ctx, profile.ID, photo.ID)
}

func (uc *ProfileUseCase) DeletePhoto(ctx context.Context, userID, photoID string) error {
	_, photo, err := uc.ownedPhoto(ctx, userID, photoID)
	if err != nil {
		return err
	}
	if err := uc.photoRepo.Delete(ctx, photo.ID); err != nil {
		return fmt.Errorf("deleting photo row: %w", err)
	}
	if err := uc.storage.Delete(ctx, photo.StorageKey); err != nil {
		// Row is gone; the orphaned blob only costs storage.
		fmt.Printf("warning: failed to delete photo blob %s: %v\n", photo.StorageKey, err)
	}
	return nil
}

func (uc *ProfileUseCase) ownedPhoto(ctx context.Context, userID, photoID string) (*domain.Profile, *domain.Photo, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	photo, err := uc.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		return nil, nil, err
	}
	if photo.ProfileID != profile.ID {
		return nil, nil, domain.ErrPhotoNotFound
	}
	return profile, photo, nil
}
