// Package discovery implements the swipe session state machine: an ordered
// queue of candidates, one decision at a time, match detection side effects
// and a single-slot undo. The state transitions are explicit so the
// progression logic is testable without any UI attached.
package discovery

import (
	"context"
	"fmt"
	"sync"

	"github.com/sparkmatch/sparkmatch-backend/internal/domain"
)

type State string

const (
	StateLoading       State = "LOADING"
	StateReady         State = "READY"
	StateActionPending State = "ACTION_PENDING"
	StateExhausted     State = "EXHAUSTED"
)

// CandidateSource fetches a fresh discovery queue.
type CandidateSource interface {
	Discover(ctx context.Context, filters *domain.DiscoveryFilters) ([]*domain.DiscoveryCandidate, error)
}

// MatchService records decisions with the match backend.
type MatchService interface {
	Like(ctx context.Context, userID string) (*domain.MatchResult, error)
	Pass(ctx context.Context, userID string) error
	SuperLike(ctx context.Context, userID string) (*domain.MatchResult, error)
	Undo(ctx context.Context) error
}

type lastDecision struct {
	userID string
	action domain.SwipeAction
}

// Session owns one discovery run: the candidate queue, the position within
// it, the liked/super-liked sets and the undo slot. All mutating operations
// are single-flight; a second concurrent call is rejected with
// domain.ErrSessionBusy rather than queued. The session never retries a
// failed call and never leaves a failed call partially applied.
type Session struct {
	source  CandidateSource
	matches MatchService

	mu         sync.Mutex
	state      State
	queue      []*domain.DiscoveryCandidate
	pos        int
	liked      map[string]struct{}
	superLiked map[string]struct{}
	last       *lastDecision
	busy       bool
}

func NewSession(source CandidateSource, matches MatchService) *Session {
	return &Session{
		source:     source,
		matches:    matches,
		state:      StateExhausted,
		liked:      make(map[string]struct{}),
		superLiked: make(map[string]struct{}),
	}
}

// LoadCandidates replaces the queue and resets the position to the front.
// An empty result leaves the session exhausted and returns
// domain.ErrNoCandidates so the caller can show an empty state instead of
// retrying blindly. On a fetch failure the previous queue and position are
// kept untouched. The undo slot is always invalidated by a load.
func (s *Session) LoadCandidates(ctx context.Context, filters *domain.DiscoveryFilters) error {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return domain.ErrSessionBusy
	}
	prev := s.state
	s.busy = true
	s.state = StateLoading
	s.mu.Unlock()

	candidates, err := s.source.Discover(ctx, filters)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if err != nil {
		s.state = prev
		return err
	}

	s.queue = candidates
	s.pos = 0
	s.last = nil
	if len(candidates) == 0 {
		s.state = StateExhausted
		return domain.ErrNoCandidates
	}
	s.state = StateReady
	return nil
}

// Decide applies action to the current candidate and advances past it on
// success. Like and super-like return the backend's match result; a pass
// synthesizes a non-match result. On failure the candidate is not consumed:
// position, sets and state all revert to their pre-call values.
func (s *Session) Decide(ctx context.Context, action domain.SwipeAction) (*domain.MatchResult, error) {
	if !action.Valid() {
		return nil, fmt.Errorf("%w: unknown action %q", domain.ErrInvalidInput, action)
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return nil, domain.ErrSessionBusy
	}
	if s.state != StateReady || s.pos >= len(s.queue) {
		s.mu.Unlock()
		return nil, domain.ErrNoCurrentCandidate
	}
	candidate := s.queue[s.pos]
	s.busy = true
	s.state = StateActionPending

	// Record into the decision sets before the round trip; rolled back if
	// the backend does not confirm. A candidate already present from an
	// earlier queue must survive the rollback.
	wasRecorded := false
	switch action {
	case domain.ActionLike:
		_, wasRecorded = s.liked[candidate.UserID]
		s.liked[candidate.UserID] = struct{}{}
	case domain.ActionSuperLike:
		_, wasRecorded = s.superLiked[candidate.UserID]
		s.superLiked[candidate.UserID] = struct{}{}
	}
	s.mu.Unlock()

	var result *domain.MatchResult
	var err error
	switch action {
	case domain.ActionLike:
		result, err = s.matches.Like(ctx, candidate.UserID)
	case domain.ActionSuperLike:
		result, err = s.matches.SuperLike(ctx, candidate.UserID)
	case domain.ActionPass:
		if err = s.matches.Pass(ctx, candidate.UserID); err == nil {
			result = &domain.MatchResult{IsMatch: false, Message: "Profile passed"}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if err != nil {
		if !wasRecorded {
			switch action {
			case domain.ActionLike:
				delete(s.liked, candidate.UserID)
			case domain.ActionSuperLike:
				delete(s.superLiked, candidate.UserID)
			}
		}
		s.state = StateReady
		return nil, err
	}

	s.last = &lastDecision{userID: candidate.UserID, action: action}
	s.pos++
	if s.pos >= len(s.queue) {
		s.state = StateExhausted
	} else {
		s.state = StateReady
	}
	return result, nil
}

// Undo reverts the single most recent decision. It is valid only directly
// after a successful Decide; a load or a second undo clears the slot. The
// remote undo endpoint is called for every action, passes included, since
// the wire contract does not distinguish.
func (s *Session) Undo(ctx context.Context) error {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return domain.ErrSessionBusy
	}
	if s.last == nil {
		s.mu.Unlock()
		return domain.ErrNothingToUndo
	}
	undone := *s.last
	s.busy = true
	s.mu.Unlock()

	err := s.matches.Undo(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if err != nil {
		return err
	}

	s.pos--
	delete(s.liked, undone.userID)
	delete(s.superLiked, undone.userID)
	s.last = nil
	s.state = StateReady
	return nil
}

// CurrentCandidate returns the candidate awaiting a decision, or nil while
// loading or exhausted.
func (s *Session) CurrentCandidate() *domain.DiscoveryCandidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady && s.state != StateActionPending {
		return nil
	}
	if s.pos >= len(s.queue) {
		return nil
	}
	return s.queue[s.pos]
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Liked reports whether the given user was liked during this session.
func (s *Session) Liked(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.liked[userID]
	return ok
}

// SuperLiked reports whether the given user was super-liked during this session.
func (s *Session) SuperLiked(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.superLiked[userID]
	return ok
}

// Remaining returns how many candidates are left in the queue, the current
// one included.
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pos >= len(s.queue) {
		return 0
	}
	return len(s.queue) - s.pos
}
