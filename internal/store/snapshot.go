package store

import "chatcore-backend/internal/models"

// User fields are guarded by s.mu, channel histories by the channel
// mutex. Live records must therefore never reach an encoder; these
// accessors hand out value copies taken under the right locks, in the
// usual store-then-channel order.

// UserSnapshot returns a value copy of user, safe to marshal while
// profile updates continue.
func (s *Store) UserSnapshot(user *models.User) models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return *user
}

// ChannelSnapshot deep-copies the channel, its member lists and its
// whole history. Returns nil for a channel from before a Reset.
func (s *Store) ChannelSnapshot(channel *models.Channel) *models.ChannelSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	mu := s.channelMuLocked(channel)
	if mu == nil {
		return nil
	}
	mu.Lock()
	defer mu.Unlock()

	snap := &models.ChannelSnapshot{
		ID:           channel.ID,
		Name:         channel.Name,
		IsPublic:     channel.IsPublic,
		OwnerMembers: copyUsers(channel.OwnerMembers),
		AllMembers:   copyUsers(channel.AllMembers),
		Messages:     make([]models.MessageSnapshot, 0, len(channel.Messages)),
		Standup: models.StandupInfo{
			IsActive:   channel.Standup.IsActive,
			TimeFinish: channel.Standup.TimeFinish,
		},
	}
	for _, msg := range channel.Messages {
		snap.Messages = append(snap.Messages, snapshotMessage(msg))
	}
	return snap
}

// MessagesSnapshot returns value copies of the channel's history in
// chronological order.
func (s *Store) MessagesSnapshot(channel *models.Channel) []models.MessageSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	mu := s.channelMuLocked(channel)
	if mu == nil {
		return nil
	}
	mu.Lock()
	defer mu.Unlock()

	out := make([]models.MessageSnapshot, 0, len(channel.Messages))
	for _, msg := range channel.Messages {
		out = append(out, snapshotMessage(msg))
	}
	return out
}

// MessageSnapshotByID resolves a message id to a value copy.
func (s *Store) MessageSnapshotByID(messageID int64) *models.MessageSnapshot {
	channel := s.ChannelByMessageID(messageID)
	if channel == nil {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	mu := s.channelMuLocked(channel)
	if mu == nil {
		return nil
	}
	mu.Lock()
	defer mu.Unlock()

	msg := messageInChannelLocked(channel, messageID)
	if msg == nil {
		return nil
	}
	snap := snapshotMessage(msg)
	return &snap
}

// snapshotMessage must be called with both s.mu and the channel mutex
// held: the sender copy reads registry-guarded fields, the react lists
// are channel-guarded.
func snapshotMessage(msg *models.Message) models.MessageSnapshot {
	snap := models.MessageSnapshot{
		ID:          msg.ID,
		Sender:      *msg.Sender,
		Body:        msg.Body,
		TimeCreated: msg.TimeCreated,
		Reacts:      make([]models.ReactSnapshot, 0, len(msg.Reacts)),
		IsPinned:    msg.IsPinned,
	}
	for _, react := range msg.Reacts {
		snap.Reacts = append(snap.Reacts, models.ReactSnapshot{
			ReactID:  react.ReactID,
			Reactors: copyUsers(react.Reactors),
		})
	}
	return snap
}

func copyUsers(users []*models.User) []models.User {
	out := make([]models.User, 0, len(users))
	for _, user := range users {
		out = append(out, *user)
	}
	return out
}
