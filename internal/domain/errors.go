package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrProfileNotFound       = errors.New("profile not found")
	ErrProfileAlreadyExists  = errors.New("profile already exists")
	ErrMatchNotFound         = errors.New("match not found")
	ErrConversationNotFound  = errors.New("conversation not found")
	ErrNotConversationMember = errors.New("user is not a member of this conversation")
	ErrPhotoNotFound         = errors.New("photo not found")
	ErrSwipeAlreadyExists    = errors.New("already swiped on this user")
	ErrCannotSwipeSelf       = errors.New("cannot swipe on yourself")
	ErrInvalidOTP            = errors.New("invalid verification code")
	ErrOTPExpired            = errors.New("verification code expired")
	ErrInvalidInput          = errors.New("invalid input")
	ErrUnauthorized          = errors.New("missing or invalid auth token")
)

// Precondition errors returned by the discovery session controller. These
// indicate a caller bug (wrong session state), not a transient failure, and
// must not be retried or shown to the end user as recoverable.
var (
	ErrSessionBusy        = errors.New("another operation is already in flight for this session")
	ErrNoCurrentCandidate = errors.New("no current candidate to decide on")
	ErrNothingToUndo      = errors.New("nothing to undo")
	ErrNoCandidates       = errors.New("no profiles available")
)

// NetworkError wraps a transport-level failure: the request never produced a
// server response (no connectivity, timeout, DNS failure).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServiceError is a failure reported by the server itself: a 4xx/5xx status
// or a {success:false} envelope with an error message.
type ServiceError struct {
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("service error (status %d): %s", e.Status, e.Message)
}
