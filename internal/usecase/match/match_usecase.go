package match

import (
	"context"
	"fmt"

	"github.com/sparkmatch/sparkmatch-backend/internal/domain"
	"github.com/sparkmatch/sparkmatch-backend/internal/metrics"
	"github.com/sparkmatch/sparkmatch-backend/internal/repository"
)

// LastAction is the single-slot record that makes the most recent swipe
// undoable. MatchID is set when the swipe completed a mutual like.
type LastAction struct {
	SwipeID  string             `json:"swipe_id"`
	TargetID string             `json:"target_id"`
	Action   domain.SwipeAction `json:"action"`
	MatchID  string             `json:"match_id,omitempty"`
}

// LastActionJournal stores the undo slot, one per user. Take must clear the
// record it returns.
type LastActionJournal interface {
	Save(ctx context.Context, userID string, record LastAction) error
	Take(ctx context.Context, userID string) (*LastAction, error)
	Clear(ctx context.Context, userID string) error
}

type MatchUseCase struct {
	swipeRepo        repository.SwipeRepository
	matchRepo        repository.MatchRepository
	profileRepo      repository.ProfileRepository
	userRepo         repository.UserRepository
	conversationRepo repository.ConversationRepository
	journal          LastActionJournal
}

func NewMatchUseCase(
	swipeRepo repository.SwipeRepository,
	matchRepo repository.MatchRepository,
	profileRepo repository.ProfileRepository,
	userRepo repository.UserRepository,
	conversationRepo repository.ConversationRepository,
	journal LastActionJournal,
) *MatchUseCase {
	return &MatchUseCase{
		swipeRepo:        swipeRepo,
		matchRepo:        matchRepo,
		profileRepo:      profileRepo,
		userRepo:         userRepo,
		conversationRepo: conversationRepo,
		journal:          journal,
	}
}

// Swipe records a decision on a target user. A like or super-like that
// completes a mutual positive pair creates a match and its conversation;
// the result carries the match so the caller can celebrate. A pass never
// matches.
func (uc *MatchUseCase) Swipe(ctx context.Context, userID, targetID string, action domain.SwipeAction) (*domain.MatchResult, error) {
	if userID == targetID {
		return nil, domain.ErrCannotSwipeSelf
	}
	if !action.Valid() {
		return nil, fmt.Errorf("%w: unknown action %q", domain.ErrInvalidInput, action)
	}

	existing, err := uc.swipeRepo.GetByUsers(ctx, userID, targetID)
	if err != nil {
		return nil, fmt.Errorf("checking existing swipe: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrSwipeAlreadyExists
	}

	swipe := &domain.Swipe{
		SwiperID: userID,
		TargetID: targetID,
		Action:   action,
	}
	if err := uc.swipeRepo.Create(ctx, swipe); err != nil {
		return nil, fmt.Errorf("creating swipe: %w", err)
	}
	metrics.SwipesTotal.WithLabelValues(string(action)).Inc()

	result := &domain.MatchResult{IsMatch: false, Message: passMessage(action)}
	record := LastAction{SwipeID: swipe.ID, TargetID: targetID, Action: action}

	if swipe.IsPositive() {
		mutual, err := uc.hasMutualLike(ctx, userID, targetID)
		if err != nil {
			return nil, fmt.Errorf("checking mutual like: %w", err)
		}
		if mutual {
			match, err := uc.createMatch(ctx, userID, targetID)
			if err != nil {
				return nil, fmt.Errorf("creating match: %w", err)
			}
			metrics.MatchesTotal.Inc()
			result.IsMatch = true
			result.Match = match
			result.Message = "It's a match!"
			record.MatchID = match.ID
		}
	}

	if err := uc.journal.Save(ctx, userID, record); err != nil {
		// The swipe is committed; a lost undo slot only disables undo.
		fmt.Printf("warning: failed to record undo slot for user %s: %v\n", userID, err)
	}

	return result, nil
}

func passMessage(action domain.SwipeAction) string {
	if action == domain.ActionPass {
		return "Profile passed"
	}
	return "Liked profile"
}

func (uc *MatchUseCase) hasMutualLike(ctx context.Context, userID, targetID string) (bool, error) {
	reverse, err := uc.swipeRepo.GetByUsers(ctx, targetID, userID)
	if err != nil {
		return false, err
	}
	return reverse != nil && reverse.IsPositive(), nil
}

func (uc *MatchUseCase) createMatch(ctx context.Context, user1ID, user2ID string) (*domain.Match, error) {
	existing, err := uc.matchRepo.GetByUsers(ctx, user1ID, user2ID)
	if err == nil && existing != nil {
		return existing, nil
	}

	match := &domain.Match{
		User1ID:  user1ID,
		User2ID:  user2ID,
		IsActive: true,
	}
	if err := uc.matchRepo.Create(ctx, match); err != nil {
		return nil, err
	}

	conversation := &domain.Conversation{
		MatchID: match.ID,
		User1ID: match.User1ID,
		User2ID: match.User2ID,
	}
	if err := uc.conversationRepo.Create(ctx, conversation); err != nil {
		return nil, err
	}
	if err := uc.matchRepo.SetConversation(ctx, match.ID, conversation.ID); err != nil {
		return nil, err
	}
	match.ConversationID = &conversation.ID

	return match, nil
}

// Undo reverses the caller's single most recent swipe: the swipe row is
// deleted and a match it created is deactivated. The slot is consumed even
// if a later step fails, so undo never replays.
func (uc *MatchUseCase) Undo(ctx context.Context, userID string) error {
	record, err := uc.journal.Take(ctx, userID)
	if err != nil {
		return err
	}

	if err := uc.swipeRepo.Delete(ctx, record.SwipeID); err != nil {
		return fmt.Errorf("deleting swipe: %w", err)
	}
	if record.MatchID != "" {
		if err := uc.matchRepo.SetActive(ctx, record.MatchID, false); err != nil {
			return fmt.Errorf("deactivating match: %w", err)
		}
	}
	metrics.UndosTotal.Inc()
	return nil
}

// WhoLikedMe lists positive swipes targeting the viewer. Only premium
// viewers see who: for everyone else entries are redacted server-side, the
// profile withheld and IsVisible false. The client never decides redaction.
func (uc *MatchUseCase) WhoLikedMe(ctx context.Context, userID string, limit, offset int) ([]*domain.LikeRecord, error) {
	viewer, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading viewer: %w", err)
	}

	swipes, err := uc.swipeRepo.LikesReceived(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("loading likes received: %w", err)
	}

	records := make([]*domain.LikeRecord, 0, len(swipes))
	for _, swipe := range swipes {
		record := &domain.LikeRecord{
			ID:        swipe.ID,
			UserID:    swipe.SwiperID,
			LikeType:  swipe.Action,
			IsVisible: viewer.IsPremium,
			CreatedAt: swipe.CreatedAt,
		}
		if viewer.IsPremium {
			profile, err := uc.profileRepo.GetByUserID(ctx, swipe.SwiperID)
			if err != nil {
				continue
			}
			record.Profile = profile
		}
		records = append(records, record)
	}
	return records, nil
}

func (uc *MatchUseCase) Matches(ctx context.Context, userID string) ([]*domain.Match, error) {
	return uc.matchRepo.ListActive(ctx, userID)
}

func (uc *MatchUseCase) MatchByID(ctx context.Context, userID, matchID string) (*domain.Match, error) {
	match, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.HasUser(userID) {
		return nil, domain.ErrMatchNotFound
	}
	return match, nil
}

// Unmatch deactivates a match the caller belongs to.
func (uc *MatchUseCase) Unmatch(ctx context.Context, userID, matchID string) error {
	match, err := uc.MatchByID(ctx, userID, matchID)
	if err != nil {
		return err
	}
	return uc.matchRepo.SetActive(ctx, match.ID, false)
}
