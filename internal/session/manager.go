// Package session holds the process-wide view of the authenticated identity:
// current user, derived profile, derived brand profile, and the admin flag.
// The Manager is the single writer of that state; everything else reads a
// Snapshot or subscribes to changes.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"brandexpo/internal/domain"
)

// Source reports the identity of an existing session, if any.
// CurrentSession returns an empty id when no session exists.
type Source interface {
	CurrentSession(ctx context.Context) (userID string, err error)
}

// Snapshot is an immutable copy of the identity state at one point in time.
type Snapshot struct {
	UserID       string
	Profile      *domain.Profile
	BrandProfile *domain.BrandProfile
	IsAdmin      bool
	Loading      bool
}

// Manager maintains the identity state and notifies subscribers on every
// change. Loading is true until Start has completed the initial session check.
type Manager struct {
	logger           *slog.Logger
	profileRepo      domain.ProfileRepository
	brandProfileRepo domain.BrandProfileRepository

	mu           sync.RWMutex
	userID       string
	profile      *domain.Profile
	brandProfile *domain.BrandProfile
	loading      bool
	subscribers  map[int]func(Snapshot)
	nextSubID    int
}

// NewManager creates a Manager in the loading state.
func NewManager(logger *slog.Logger, profileRepo domain.ProfileRepository, brandProfileRepo domain.BrandProfileRepository) *Manager {
	return &Manager{
		logger:           logger,
		profileRepo:      profileRepo,
		brandProfileRepo: brandProfileRepo,
		loading:          true,
		subscribers:      make(map[int]func(Snapshot)),
	}
}

// Start resolves any existing session from the source and performs the
// initial profile fetches. Loading turns false when it returns.
func (m *Manager) Start(ctx context.Context, source Source) error {
	userID, err := source.CurrentSession(ctx)
	if err != nil {
		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()
		m.notify()
		return err
	}
	if userID != "" {
		m.SetSession(ctx, userID)
	}
	m.mu.Lock()
	m.loading = false
	m.mu.Unlock()
	m.notify()
	return nil
}

// SetSession is the session-change notification for a signed-in identity.
// It re-fetches profile and brand profile for the new user.
func (m *Manager) SetSession(ctx context.Context, userID string) {
	m.mu.Lock()
	m.userID = userID
	m.mu.Unlock()
	m.fetchProfile(ctx, userID)
	m.fetchBrandProfile(ctx, userID)
	m.notify()
}

// ClearSession is the session-change notification for sign-out. All derived
// state is cleared.
func (m *Manager) ClearSession() {
	m.mu.Lock()
	m.userID = ""
	m.profile = nil
	m.brandProfile = nil
	m.mu.Unlock()
	m.notify()
}

// RefreshProfile forces a profile re-fetch, e.g. after a role change.
func (m *Manager) RefreshProfile(ctx context.Context) {
	m.mu.RLock()
	userID := m.userID
	m.mu.RUnlock()
	if userID == "" {
		return
	}
	m.fetchProfile(ctx, userID)
	m.notify()
}

// RefreshBrandProfile forces a brand profile re-fetch, e.g. right after the
// user registers one.
func (m *Manager) RefreshBrandProfile(ctx context.Context) {
	m.mu.RLock()
	userID := m.userID
	m.mu.RUnlock()
	if userID == "" {
		return
	}
	m.fetchBrandProfile(ctx, userID)
	m.notify()
}

// fetchProfile keeps the previous value on failure: a transient fetch error
// must not look like a logout.
func (m *Manager) fetchProfile(ctx context.Context, userID string) {
	profile, err := m.profileRepo.GetByID(ctx, userID)
	if err != nil {
		m.logger.WarnContext(ctx, "profile fetch failed, keeping previous value", "user_id", userID, "err", err)
		return
	}
	m.mu.Lock()
	m.profile = profile
	m.mu.Unlock()
}

// fetchBrandProfile clears the value when the user has none or the fetch
// fails; absence is the normal state for users without a registered brand.
func (m *Manager) fetchBrandProfile(ctx context.Context, userID string) {
	bp, err := m.brandProfileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			m.logger.WarnContext(ctx, "brand profile fetch failed", "user_id", userID, "err", err)
		}
		m.mu.Lock()
		m.brandProfile = nil
		m.mu.Unlock()
		return
	}
	m.mu.Lock()
	m.brandProfile = bp
	m.mu.Unlock()
}

// Subscribe registers a callback invoked with a fresh Snapshot after every
// state change. The returned function unsubscribes.
func (m *Manager) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextSubID
	m.nextSubID++
	m.subscribers[id] = fn
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		delete(m.subscribers, id)
		m.mu.Unlock()
	}
}

func (m *Manager) notify() {
	snap := m.Snapshot()
	m.mu.RLock()
	fns := make([]func(Snapshot), 0, len(m.subscribers))
	for _, fn := range m.subscribers {
		fns = append(fns, fn)
	}
	m.mu.RUnlock()
	for _, fn := range fns {
		fn(snap)
	}
}

// Snapshot returns a copy of the current identity state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{
		UserID:       m.userID,
		Profile:      m.profile,
		BrandProfile: m.brandProfile,
		IsAdmin:      m.profile != nil && m.profile.Role == domain.RoleAdmin,
		Loading:      m.loading,
	}
}

// IsAdmin reports whether the current profile carries the admin role.
func (m *Manager) IsAdmin() bool {
	return m.Snapshot().IsAdmin
}
