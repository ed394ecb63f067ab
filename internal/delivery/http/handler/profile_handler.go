package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sparkmatch/sparkmatch-backend/internal/delivery/http/middleware"
	"github.com/sparkmatch/sparkmatch-backend/internal/usecase/profile"
)

type ProfileHandler struct {
	profileUseCase *profile.ProfileUseCase
}

func NewProfileHandler(profileUseCase *profile.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
	}
}

// GetMyProfile handles GET /profile/me
// @Summary Get my profile
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /profile/me [get]
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	p, err := h.profileUseCase.GetMyProfile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, p)
}

// UpdateMyProfile handles PUT /profile/me
// @Summary Update my profile
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body profile.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Router /profile/me [put]
func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	var req profile.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	updated, err := h.profileUseCase.UpdateProfile(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, updated)
}

// CompleteOnboarding handles POST /profile/complete-onboarding
// @Summary Complete onboarding
// @Description Create the user's profile
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body profile.CreateProfileRequest true "Profile data"
// @Success 201 {object} Response
// @Failure 409 {object} Response
// @Router /profile/complete-onboarding [post]
func (h *ProfileHandler) CompleteOnboarding(c *gin.Context) {
	var req profile.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	created, err := h.profileUseCase.CreateProfile(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, created)
}

// GetProfileByUserID handles GET /profile/:user_id
// @Summary Get a user's profile
// @Description Profile annotated with the distance to the viewer
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /profile/{user_id} [get]
func (h *ProfileHandler) GetProfileByUserID(c *gin.Context) {
	view, err := h.profileUseCase.GetProfile(c.Request.Context(), middleware.UserID(c), c.Param("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, view)
}

// UploadURLRequest asks for a presigned photo upload slot
type UploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

// RequestPhotoUpload handles POST /photos/upload-url
// @Summary Request a photo upload URL
// @Description Returns a presigned PUT URL; the client uploads directly to storage
// @Tags photos
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body UploadURLRequest true "Content type"
// @Success 201 {object} Response
// @Router /photos/upload-url [post]
func (h *ProfileHandler) RequestPhotoUpload(c *gin.Context) {
	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	slot, err := h.profileUseCase.RequestPhotoUpload(c.Request.Context(), middleware.UserID(c), req.ContentType)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, slot)
}

// SetPrimaryPhoto handles PUT /photos/:photo_id/primary
// @Summary Set the primary photo
// @Tags photos
// @Security BearerAuth
// @Produce json
// @Param photo_id path string true "Photo ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /photos/{photo_id}/primary [put]
func (h *ProfileHandler) SetPrimaryPhoto(c *gin.Context) {
	if err := h.profileUseCase.SetPrimaryPhoto(c.Request.Context(), middleware.UserID(c), c.Param("photo_id")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "primary photo updated")
}

// DeletePhoto handles DELETE /photos/:photo_id
// @Summary Delete a photo
// @Tags photos
// @Security BearerAuth
// @Produce json
// @Param photo_id path string true "Photo ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /photos/{photo_id} [delete]
func (h *ProfileHandler) DeletePhoto(c *gin.Context) {
	if err := h.profileUseCase.DeletePhoto(c.Request.Context(), middleware.UserID(c), c.Param("photo_id")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "photo deleted")
}
