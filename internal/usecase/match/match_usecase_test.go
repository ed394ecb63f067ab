package match

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sparkmatch/sparkmatch-backend/internal/domain"
	"github.com/sparkmatch/sparkmatch-backend/internal/repository"
)

type fakeSwipeRepo struct {
	swipes map[string]*domain.Swipe // by id
}

func newFakeSwipeRepo() *fakeSwipeRepo {
	return &fakeSwipeRepo{swipes: make(map[string]*domain.Swipe)}
}

func (f *fakeSwipeRepo) Create(_ context.Context, swipe *domain.Swipe) error {
	if swipe.ID == "" {
		swipe.ID = uuid.NewString()
	}
	swipe.CreatedAt = time.Now()
	f.swipes[swipe.ID] = swipe
	return nil
}

func (f *fakeSwipeRepo) GetByUsers(_ context.Context, swiperID, targetID string) (*domain.Swipe, error) {
	for _, s := range f.swipes {
		if s.SwiperID == swiperID && s.TargetID == targetID {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSwipeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.swipes[id]; !ok {
		return errors.New("not found")
	}
	delete(f.swipes, id)
	return nil
}

func (f *fakeSwipeRepo) SwipedTargetIDs(_ context.Context, swiperID string) ([]string, error) {
	var ids []string
	for _, s := range f.swipes {
		if s.SwiperID == swiperID {
			ids = append(ids, s.TargetID)
		}
	}
	return ids, nil
}

func (f *fakeSwipeRepo) LikesReceived(_ context.Context, targetID string, _, _ int) ([]*domain.Swipe, error) {
	var out []*domain.Swipe
	for _, s := range f.swipes {
		if s.TargetID == targetID && s.IsPositive() {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeMatchRepo struct {
	matches map[string]*domain.Match
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: make(map[string]*domain.Match)}
}

func (f *fakeMatchRepo) Create(_ context.Context, match *domain.Match) error {
	if match.ID == "" {
		match.ID = uuid.NewString()
	}
	if match.User1ID > match.User2ID {
		match.User1ID, match.User2ID = match.User2ID, match.User1ID
	}
	match.CreatedAt = time.Now()
	f.matches[match.ID] = match
	return nil
}

func (f *fakeMatchRepo) GetByID(_ context.Context, id string) (*domain.Match, error) {
	m, ok := f.matches[id]
	if !ok {
		return nil, domain.ErrMatchNotFound
	}
	return m, nil
}

func (f *fakeMatchRepo) GetByUsers(_ context.Context, user1ID, user2ID string) (*domain.Match, error) {
	if user1ID > user2ID {
		user1ID, user2ID = user2ID, user1ID
	}
	for _, m := range f.matches {
		if m.User1ID == user1ID && m.User2ID == user2ID {
			return m, nil
		}
	}
	return nil, domain.ErrMatchNotFound
}

func (f *fakeMatchRepo) ListActive(_ context.Context, userID string) ([]*domain.Match, error) {
	var out []*domain.Match
	for _, m := range f.matches {
		if m.IsActive && m.HasUser(userID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMatchRepo) SetActive(_ context.Context, id string, isActive bool) error {
	m, ok := f.matches[id]
	if !ok {
		return domain.ErrMatchNotFound
	}
	m.IsActive = isActive
	return nil
}

func (f *fakeMatchRepo) SetConversation(_ context.Context, id, conversationID string) error {
	m, ok := f.matches[id]
	if !ok {
		return domain.ErrMatchNotFound
	}
	m.ConversationID = &conversationID
	return nil
}

type fakeConversationRepo struct {
	conversations map[string]*domain.Conversation
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{conversations: make(map[string]*domain.Conversation)}
}

func (f *fakeConversationRepo) Create(_ context.Context, c *domain.Conversation) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt = time.Now()
	f.conversations[c.ID] = c
	return nil
}

func (f *fakeConversationRepo) GetByID(_ context.Context, id string) (*domain.Conversation, error) {
	c, ok := f.conversations[id]
	if !ok {
		return nil, domain.ErrConversationNotFound
	}
	return c, nil
}

func (f *fakeConversationRepo) ListByUser(_ context.Context, userID string) ([]*domain.Conversation, error) {
	var out []*domain.Conversation
	for _, c := range f.conversations {
		if c.HasUser(userID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeConversationRepo) Touch(_ context.Context, id string, at time.Time) error {
	c, ok := f.conversations[id]
	if !ok {
		return domain.ErrConversationNotFound
	}
	c.LastMessageAt = &at
	return nil
}

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByPhone(_ context.Context, phone string) (*domain.User, error) {
	for _, u := range f.users {
		if u.PhoneNumber == phone {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, u *domain.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) UpdateLastSeen(_ context.Context, _ string) error { return nil }

type fakeProfileRepo struct {
	profiles map[string]*domain.Profile // by user id
}

func newFakeProfileRepo(profiles ...*domain.Profile) *fakeProfileRepo {
	f := &fakeProfileRepo{profiles: make(map[string]*domain.Profile)}
	for _, p := range profiles {
		f.profiles[p.UserID] = p
	}
	return f
}

func (f *fakeProfileRepo) Create(_ context.Context, p *domain.Profile) error {
	f.profiles[p.UserID] = p
	return nil
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfileRepo) Update(_ context.Context, p *domain.Profile) error {
	f.profiles[p.UserID] = p
	return nil
}

func (f *fakeProfileRepo) Delete(_ context.Context, _ string) error { return nil }

func (f *fakeProfileRepo) Search(_ context.Context, _ repository.ProfileSearch, _, _ int) ([]*domain.Profile, error) {
	return nil, nil
}

type memoryJournal struct {
	records map[string]*LastAction
}

func newMemoryJournal() *memoryJournal {
	return &memoryJournal{records: make(map[string]*LastAction)}
}

func (m *memoryJournal) Save(_ context.Context, userID string, record LastAction) error {
	m.records[userID] = &record
	return nil
}

func (m *memoryJournal) Take(_ context.Context, userID string) (*LastAction, error) {
	record, ok := m.records[userID]
	if !ok {
		return nil, domain.ErrNothingToUndo
	}
	delete(m.records, userID)
	return record, nil
}

func (m *memoryJournal) Clear(_ context.Context, userID string) error {
	delete(m.records, userID)
	return nil
}

func newTestUseCase(t *testing.T) (*MatchUseCase, *fakeSwipeRepo, *fakeMatchRepo, *fakeConversationRepo, *fakeUserRepo) {
	t.Helper()

	swipes := newFakeSwipeRepo()
	matches := newFakeMatchRepo()
	conversations := newFakeConversationRepo()
	users := newFakeUserRepo(
		&domain.User{ID: "alice", PhoneNumber: "+1000", IsVerified: true},
		&domain.User{ID: "bob", PhoneNumber: "+1001", IsVerified: true},
	)
	profiles := newFakeProfileRepo(
		&domain.Profile{ID: "p-alice", UserID: "alice", FirstName: "Alice"},
		&domain.Profile{ID: "p-bob", UserID: "bob", FirstName: "Bob"},
	)

	uc := NewMatchUseCase(swipes, matches, profiles, users, conversations, newMemoryJournal())
	return uc, swipes, matches, conversations, users
}

func TestSwipe_MutualLikeCreatesMatchAndConversation(t *testing.T) {
	uc, _, matches, conversations, _ := newTestUseCase(t)
	ctx := context.Background()

	result, err := uc.Swipe(ctx, "bob", "alice", domain.ActionLike)
	if err != nil {
		t.Fatalf("first like failed: %v", err)
	}
	if result.IsMatch {
		t.Fatal("one-sided like must not match")
	}

	result, err = uc.Swipe(ctx, "alice", "bob", domain.ActionSuperLike)
	if err != nil {
		t.Fatalf("mutual super-like failed: %v", err)
	}
	if !result.IsMatch || result.Match == nil {
		t.Fatal("mutual positive swipe must create a match")
	}
	if result.Match.User1ID != "alice" || result.Match.User2ID != "bob" {
		t.Errorf("match pair = (%s, %s), want ordered (alice, bob)", result.Match.User1ID, result.Match.User2ID)
	}
	if result.Match.ConversationID == nil {
		t.Fatal("match must carry its conversation id")
	}
	if _, err := conversations.GetByID(ctx, *result.Match.ConversationID); err != nil {
		t.Errorf("conversation not created: %v", err)
	}
	if len(matches.matches) != 1 {
		t.Errorf("got %d matches, want 1", len(matches.matches))
	}
}

func TestSwipe_PassNeverMatches(t *testing.T) {
	uc, _, _, _, _ := newTestUseCase(t)
	ctx := context.Background()

	if _, err := uc.Swipe(ctx, "bob", "alice", domain.ActionLike); err != nil {
		t.Fatalf("like failed: %v", err)
	}
	result, err := uc.Swipe(ctx, "alice", "bob", domain.ActionPass)
	if err != nil {
		t.Fatalf("pass failed: %v", err)
	}
	if result.IsMatch {
		t.Error("a pass must never report a match, even against a pending like")
	}
}

func TestSwipe_DuplicateRejected(t *testing.T) {
	uc, _, _, _, _ := newTestUseCase(t)
	ctx := context.Background()

	if _, err := uc.Swipe(ctx, "alice", "bob", domain.ActionLike); err != nil {
		t.Fatalf("like failed: %v", err)
	}
	if _, err := uc.Swipe(ctx, "alice", "bob", domain.ActionLike); !errors.Is(err, domain.ErrSwipeAlreadyExists) {
		t.Fatalf("got %v, want ErrSwipeAlreadyExists", err)
	}
}

func TestSwipe_SelfRejected(t *testing.T) {
	uc, _, _, _, _ := newTestUseCase(t)

	if _, err := uc.Swipe(context.Background(), "alice", "alice", domain.ActionLike); !errors.Is(err, domain.ErrCannotSwipeSelf) {
		t.Fatalf("got %v, want ErrCannotSwipeSelf", err)
	}
}

func TestUndo_RemovesSwipeAndDeactivatesMatch(t *testing.T) {
	uc, swipes, matches, _, _ := newTestUseCase(t)
	ctx := context.Background()

	if _, err := uc.Swipe(ctx, "bob", "alice", domain.ActionLike); err != nil {
		t.Fatalf("like failed: %v", err)
	}
	result, err := uc.Swipe(ctx, "alice", "bob", domain.ActionLike)
	if err != nil {
		t.Fatalf("mutual like failed: %v", err)
	}
	if !result.IsMatch {
		t.Fatal("expected a match")
	}

	if err := uc.Undo(ctx, "alice"); err != nil {
		t.Fatalf("undo failed: %v", err)
	}

	if s, _ := swipes.GetByUsers(ctx, "alice", "bob"); s != nil {
		t.Error("undone swipe still present")
	}
	match, err := matches.GetByID(ctx, result.Match.ID)
	if err != nil {
		t.Fatalf("match lookup failed: %v", err)
	}
	if match.IsActive {
		t.Error("match created by the undone swipe must be deactivated")
	}

	if err := uc.Undo(ctx, "alice"); !errors.Is(err, domain.ErrNothingToUndo) {
		t.Fatalf("second undo: got %v, want ErrNothingToUndo", err)
	}
}

func TestWhoLikedMe_RedactsForNonPremium(t *testing.T) {
	uc, _, _, _, users := newTestUseCase(t)
	ctx := context.Background()

	if _, err := uc.Swipe(ctx, "bob", "alice", domain.ActionSuperLike); err != nil {
		t.Fatalf("super-like failed: %v", err)
	}

	records, err := uc.WhoLikedMe(ctx, "alice", 50, 0)
	if err != nil {
		t.Fatalf("who-liked-me failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].IsVisible || records[0].Profile != nil {
		t.Error("non-premium viewer must receive redacted entries")
	}
	if records[0].LikeType != domain.ActionSuperLike {
		t.Errorf("like type = %s, want SUPER_LIKE", records[0].LikeType)
	}

	alice, _ := users.GetByID(ctx, "alice")
	alice.IsPremium = true

	records, err = uc.WhoLikedMe(ctx, "alice", 50, 0)
	if err != nil {
		t.Fatalf("who-liked-me failed: %v", err)
	}
	if !records[0].IsVisible || records[0].Profile == nil {
		t.Error("premium viewer must see the full like record")
	}
	if records[0].Profile.FirstName != "Bob" {
		t.Errorf("profile = %+v, want Bob's", records[0].Profile)
	}
}

func TestUnmatch(t *testing.T) {
	uc, _, matches, _, _ := newTestUseCase(t)
	ctx := context.Background()

	if _, err := uc.Swipe(ctx, "bob", "alice", domain.ActionLike); err != nil {
		t.Fatalf("like failed: %v", err)
	}
	result, err := uc.Swipe(ctx, "alice", "bob", domain.ActionLike)
	if err != nil || !result.IsMatch {
		t.Fatalf("mutual like failed: %v", err)
	}

	if err := uc.Unmatch(ctx, "carol", result.Match.ID); !errors.Is(err, domain.ErrMatchNotFound) {
		t.Fatalf("outsider unmatch: got %v, want ErrMatchNotFound", err)
	}

	if err := uc.Unmatch(ctx, "alice", result.Match.ID); err != nil {
		t.Fatalf("unmatch failed: %v", err)
	}
	match, _ := matches.GetByID(ctx, result.Match.ID)
	if match.IsActive {
		t.Error("unmatched match must be inactive")
	}
}
