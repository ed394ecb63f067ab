package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sparkmatch/sparkmatch-backend/internal/delivery/http/middleware"
	"github.com/sparkmatch/sparkmatch-backend/internal/usecase/auth"
)

type AuthHandler struct {
	authUseCase *auth.AuthUseCase
}

func NewAuthHandler(authUseCase *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

// SendOTPRequest carries the phone number to send a code to
type SendOTPRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required,e164"`
	Purpose     string `json:"purpose"`
}

// VerifyOTPRequest carries the code the user received
type VerifyOTPRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required,e164"`
	Purpose     string `json:"purpose"`
	Code        string `json:"code" binding:"required,len=6,numeric"`
}

// SendOTP issues a one-time code
// @Summary Send OTP
// @Description Send a verification code to a phone number
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SendOTPRequest true "Phone number"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Router /auth/send-otp [post]
func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if err := h.authUseCase.SendOTP(c.Request.Context(), req.PhoneNumber, req.Purpose); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, "verification code sent")
}

// ResendOTP issues a fresh code, replacing the pending one
// @Summary Resend OTP
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SendOTPRequest true "Phone number"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Router /auth/resend-otp [post]
func (h *AuthHandler) ResendOTP(c *gin.Context) {
	h.SendOTP(c)
}

// VerifyOTP exchanges a valid code for a bearer token
// @Summary Verify OTP
// @Description Verify the code and sign the user in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body VerifyOTPRequest true "Phone number and code"
// @Success 200 {object} Response
// @Failure 401 {object} Response
// @Router /auth/verify-otp [post]
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	result, err := h.authUseCase.VerifyOTP(c.Request.Context(), req.PhoneNumber, req.Purpose, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, result)
}

// Me returns the authenticated user
// @Summary Get current user
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} Response
// @Failure 401 {object} Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, Response{Success: false, Error: "unauthorized"})
		return
	}

	user, err := h.authUseCase.Me(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, user)
}
