package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sparkmatch/sparkmatch-backend/internal/delivery/http/middleware"
	"github.com/sparkmatch/sparkmatch-backend/internal/domain"
	"github.com/sparkmatch/sparkmatch-backend/internal/usecase/discoveryfeed"
	"github.com/sparkmatch/sparkmatch-backend/internal/usecase/match"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type MatchHandler struct {
	matchUseCase     *match.MatchUseCase
	discoveryUseCase *discoveryfeed.DiscoveryUseCase
}

func NewMatchHandler(matchUseCase *match.MatchUseCase, discoveryUseCase *discoveryfeed.DiscoveryUseCase) *MatchHandler {
	return &MatchHandler{
		matchUseCase:     matchUseCase,
		discoveryUseCase: discoveryUseCase,
	}
}

// SwipeRequest names the target of a swipe
type SwipeRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// Discovery handles GET /matches/discovery
// @Summary Discovery feed
// @Description Ranked candidates the user has not swiped on yet
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param minAge query int false "Minimum age"
// @Param maxAge query int false "Maximum age"
// @Param distance query int false "Maximum distance, km"
// @Param interestedIn query string false "Comma-separated genders"
// @Param interests query string false "Comma-separated interests"
// @Param verified query bool false "Verified profiles only"
// @Param hasPhotos query bool false "Profiles with photos only"
// @Success 200 {object} Response
// @Router /matches/discovery [get]
func (h *MatchHandler) Discovery(c *gin.Context) {
	filters, err := parseFilters(c)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	limit, offset := parsePage(c)

	feed, err := h.discoveryUseCase.Discover(c.Request.Context(), middleware.UserID(c), filters, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, feed)
}

// Like handles POST /matches/like
// @Summary Like a profile
// @Tags matches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body SwipeRequest true "Target user"
// @Success 200 {object} Response
// @Failure 409 {object} Response
// @Router /matches/like [post]
func (h *MatchHandler) Like(c *gin.Context) {
	h.swipe(c, domain.ActionLike)
}

// Pass handles POST /matches/pass
// @Summary Pass on a profile
// @Tags matches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body SwipeRequest true "Target user"
// @Success 200 {object} Response
// @Router /matches/pass [post]
func (h *MatchHandler) Pass(c *gin.Context) {
	h.swipe(c, domain.ActionPass)
}

// SuperLike handles POST /matches/super-like
// @Summary Super-like a profile
// @Tags matches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body SwipeRequest true "Target user"
// @Success 200 {object} Response
// @Failure 409 {object} Response
// @Router /matches/super-like [post]
func (h *MatchHandler) SuperLike(c *gin.Context) {
	h.swipe(c, domain.ActionSuperLike)
}

func (h *MatchHandler) swipe(c *gin.Context, action domain.SwipeAction) {
	var req SwipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	result, err := h.matchUseCase.Swipe(c.Request.Context(), middleware.UserID(c), req.UserID, action)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, result)
}

// Undo handles POST /matches/undo
// @Summary Undo the last swipe
// @Description Reverses the caller's single most recent swipe
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /matches/undo [post]
func (h *MatchHandler) Undo(c *gin.Context) {
	if err := h.matchUseCase.Undo(c.Request.Context(), middleware.UserID(c)); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "swipe undone")
}

// WhoLikedMe handles GET /matches/who-liked-me
// @Summary Who liked me
// @Description Likes received; redacted unless the viewer is premium
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Success 200 {object} Response
// @Router /matches/who-liked-me [get]
func (h *MatchHandler) WhoLikedMe(c *gin.Context) {
	limit, offset := parsePage(c)
	records, err := h.matchUseCase.WhoLikedMe(c.Request.Context(), middleware.UserID(c), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, records)
}

// Matches handles GET /matches/matches
// @Summary List active matches
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Success 200 {object} Response
// @Router /matches/matches [get]
func (h *MatchHandler) Matches(c *gin.Context) {
	matches, err := h.matchUseCase.Matches(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, matches)
}

// MatchByID handles GET /matches/:match_id
// @Summary Get a match
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param match_id path string true "Match ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /matches/{match_id} [get]
func (h *MatchHandler) MatchByID(c *gin.Context) {
	m, err := h.matchUseCase.MatchByID(c.Request.Context(), middleware.UserID(c), c.Param("match_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, m)
}

// Unmatch handles DELETE /matches/:match_id
// @Summary Unmatch
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param match_id path string true "Match ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /matches/{match_id} [delete]
func (h *MatchHandler) Unmatch(c *gin.Context) {
	if err := h.matchUseCase.Unmatch(c.Request.Context(), middleware.UserID(c), c.Param("match_id")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "unmatched")
}

func parseFilters(c *gin.Context) (domain.DiscoveryFilters, error) {
	var filters domain.DiscoveryFilters

	if v, err := intQuery(c, "minAge"); err != nil {
		return filters, err
	} else if v != nil {
		filters.MinAge = v
	}
	if v, err := intQuery(c, "maxAge"); err != nil {
		return filters, err
	} else if v != nil {
		filters.MaxAge = v
	}
	if v, err := intQuery(c, "distance"); err != nil {
		return filters, err
	} else if v != nil {
		filters.MaxDistanceKm = v
	}
	if v, err := boolQuery(c, "verified"); err != nil {
		return filters, err
	} else if v != nil {
		filters.Verified = v
	}
	if v, err := boolQuery(c, "hasPhotos"); err != nil {
		return filters, err
	} else if v != nil {
		filters.HasPhotos = v
	}

	if raw := c.Query("interestedIn"); raw != "" {
		for _, g := range strings.Split(raw, ",") {
			gender := domain.Gender(g)
			if !gender.Valid() {
				return filters, &queryError{param: "interestedIn", value: g}
			}
			filters.InterestedIn = append(filters.InterestedIn, gender)
		}
	}
	if raw := c.Query("interests"); raw != "" {
		filters.Interests = strings.Split(raw, ",")
	}

	return filters, nil
}

func parsePage(c *gin.Context) (limit, offset int) {
	limit = defaultPageSize
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}

func intQuery(c *gin.Context, name string) (*int, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &queryError{param: name, value: raw}
	}
	return &v, nil
}

func boolQuery(c *gin.Context, name string) (*bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, &queryError{param: name, value: raw}
	}
	return &v, nil
}

type queryError struct {
	param string
	value string
}

func (e *queryError) Error() string {
	return "invalid query parameter " + e.param + ": " + e.value
}
