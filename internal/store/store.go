// Package store is the in-memory persistence and identity core: users,
// channels, messages, reactions, session tokens and the standup
// scheduler. Everything is volatile and process-lifetime only.
package store

import (
	"sync"
	"sync/atomic"
	"time"

	"chatcore-backend/internal/models"

	"go.uber.org/zap"
)

type Store struct {
	sugar *zap.SugaredLogger

	// mu guards the backing slices so id assignment stays dense and
	// collision-free under concurrent registration.
	mu       sync.RWMutex
	users    []*models.User
	channels []*models.Channel
	// chanMu[i] serializes every mutation of channels[i]: message
	// appends, member list changes and the standup state machine.
	chanMu []*sync.Mutex

	// next message id, shared across all channels, never reused
	latestMessageID atomic.Int64

	resetMu    sync.Mutex
	resetCodes map[string]string // code -> email

	notify func(channelID int64, msg models.MessageSnapshot)
}

func New(sugar *zap.SugaredLogger) *Store {
	return &Store{
		sugar:      sugar,
		resetCodes: make(map[string]string),
	}
}

// SetNotify installs a hook invoked for every message appended to a
// channel, including standup flushes. The hook receives a value copy,
// runs with the channel lock held and must not call back into the
// Store.
func (s *Store) SetNotify(fn func(channelID int64, msg models.MessageSnapshot)) {
	s.notify = fn
}

// Reset drops every record. Outstanding standup timers detect the
// wipe and turn into no-ops. Intended for tests and dev tooling.
func (s *Store) Reset() {
	s.mu.Lock()
	s.users = nil
	s.channels = nil
	s.chanMu = nil
	s.latestMessageID.Store(0)
	s.mu.Unlock()

	s.resetMu.Lock()
	s.resetCodes = make(map[string]string)
	s.resetMu.Unlock()
}

// channelMuFor returns the mutex owning ch, or nil if ch no longer
// belongs to this store (it was created before a Reset).
func (s *Store) channelMuFor(ch *models.Channel) *sync.Mutex {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.channelMuLocked(ch)
}

// channelMuLocked is channelMuFor for callers already holding s.mu.
func (s *Store) channelMuLocked(ch *models.Channel) *sync.Mutex {
	if ch.ID < 0 || ch.ID >= int64(len(s.channels)) || s.channels[ch.ID] != ch {
		return nil
	}
	return s.chanMu[ch.ID]
}

func currentTime() int64 {
	return time.Now().Unix()
}
