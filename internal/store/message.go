package store

import (
	"fmt"
	"sync"

	"chatcore-backend/internal/models"
)

// PostMessage appends a message to the channel's history. The id comes
// from the global counter, so ids are strictly increasing and unique
// across all channels no matter how posts interleave.
func (s *Store) PostMessage(channel *models.Channel, sender *models.User, body string, timeCreated int64) *models.Message {
	// the sender copy for the notification is taken before the channel
	// lock; s.mu must not be acquired while holding it
	senderSnap := s.UserSnapshot(sender)

	mu := s.channelMuFor(channel)
	if mu == nil {
		return nil
	}
	mu.Lock()
	defer mu.Unlock()

	return s.postLocked(channel, sender, senderSnap, body, timeCreated)
}

func (s *Store) postLocked(channel *models.Channel, sender *models.User, senderSnap models.User, body string, timeCreated int64) *models.Message {
	msg := &models.Message{
		ID:          s.latestMessageID.Add(1) - 1,
		Sender:      sender,
		Body:        body,
		TimeCreated: timeCreated,
		Reacts:      []*models.React{},
	}
	channel.Messages = append(channel.Messages, msg)

	if s.notify != nil {
		s.notify(channel.ID, models.MessageSnapshot{
			ID:          msg.ID,
			Sender:      senderSnap,
			Body:        body,
			TimeCreated: timeCreated,
			Reacts:      []models.ReactSnapshot{},
		})
	}
	return msg
}

// Messages returns a snapshot of the channel's history in
// chronological order.
func (s *Store) Messages(channel *models.Channel) []*models.Message {
	mu := s.channelMuFor(channel)
	if mu == nil {
		return nil
	}
	mu.Lock()
	defer mu.Unlock()

	out := make([]*models.Message, len(channel.Messages))
	copy(out, channel.Messages)
	return out
}

// MessageByID resolves the channel first, then scans its history.
func (s *Store) MessageByID(messageID int64) *models.Message {
	channel := s.ChannelByMessageID(messageID)
	if channel == nil {
		return nil
	}

	mu := s.channelMuFor(channel)
	if mu == nil {
		return nil
	}
	mu.Lock()
	defer mu.Unlock()

	return messageInChannelLocked(channel, messageID)
}

func messageInChannelLocked(channel *models.Channel, messageID int64) *models.Message {
	for _, msg := range channel.Messages {
		if msg.ID == messageID {
			return msg
		}
	}
	return nil
}

// AddReact records a reaction. The first reactor of a given type
// creates the react record; later reactors of the same type are
// appended to it. Reacting twice with the same type appends the
// reactor twice; dedup is the caller's concern.
func (s *Store) AddReact(messageID int64, reactor *models.User, reactID int64) error {
	_, mu, msg := s.lockMessage(messageID)
	if msg == nil {
		return fmt.Errorf("%w: message %d", ErrNotFound, messageID)
	}
	defer mu.Unlock()

	for _, react := range msg.Reacts {
		if react.ReactID == reactID {
			react.Reactors = append(react.Reactors, reactor)
			return nil
		}
	}
	msg.Reacts = append(msg.Reacts, &models.React{
		ReactID:  reactID,
		Reactors: []*models.User{reactor},
	})
	return nil
}

// RemoveReact removes the reactor from the react record of the given
// type. A record emptied of reactors stays on the message.
func (s *Store) RemoveReact(messageID int64, reactor *models.User, reactID int64) error {
	_, mu, msg := s.lockMessage(messageID)
	if msg == nil {
		return fmt.Errorf("%w: message %d", ErrNotFound, messageID)
	}
	defer mu.Unlock()

	for _, react := range msg.Reacts {
		if react.ReactID != reactID {
			continue
		}
		for i := range react.Reactors {
			if react.Reactors[i] == reactor {
				react.Reactors = append(react.Reactors[:i], react.Reactors[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: user %d has no react %d on message %d", ErrNotFound, reactor.ID, reactID, messageID)
	}
	return fmt.Errorf("%w: no react %d on message %d", ErrNotFound, reactID, messageID)
}

func (s *Store) Pin(messageID int64) error {
	return s.setPinned(messageID, true)
}

func (s *Store) Unpin(messageID int64) error {
	return s.setPinned(messageID, false)
}

func (s *Store) setPinned(messageID int64, pinned bool) error {
	_, mu, msg := s.lockMessage(messageID)
	if msg == nil {
		return fmt.Errorf("%w: message %d", ErrNotFound, messageID)
	}
	defer mu.Unlock()

	msg.IsPinned = pinned
	return nil
}

// lockMessage resolves messageID and returns its channel and message
// with the channel lock held. On a nil message the lock is already
// released and must not be unlocked by the caller.
func (s *Store) lockMessage(messageID int64) (*models.Channel, *sync.Mutex, *models.Message) {
	channel := s.ChannelByMessageID(messageID)
	if channel == nil {
		return nil, nil, nil
	}

	mu := s.channelMuFor(channel)
	if mu == nil {
		return nil, nil, nil
	}
	mu.Lock()

	msg := messageInChannelLocked(channel, messageID)
	if msg == nil {
		mu.Unlock()
		return nil, nil, nil
	}
	return channel, mu, msg
}
