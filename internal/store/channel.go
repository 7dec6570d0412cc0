package store

import (
	"fmt"
	"sync"

	"chatcore-backend/internal/models"
	"chatcore-backend/internal/validator"
)

// CreateChannel assigns the next sequential channel id and seeds the
// creator into both the owner and member lists.
func (s *Store) CreateChannel(creator *models.User, name string, isPublic bool) (*models.Channel, error) {
	if err := validator.Name(name); err != nil {
		return nil, fmt.Errorf("%w: channel name: %v", ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	channel := &models.Channel{
		ID:           int64(len(s.channels)),
		Name:         name,
		IsPublic:     isPublic,
		OwnerMembers: []*models.User{creator},
		AllMembers:   []*models.User{creator},
		Messages:     []*models.Message{},
	}
	s.channels = append(s.channels, channel)
	s.chanMu = append(s.chanMu, &sync.Mutex{})

	return channel, nil
}

func (s *Store) ChannelByID(channelID int64) *models.Channel {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if channelID < 0 || channelID >= int64(len(s.channels)) {
		return nil
	}
	return s.channels[channelID]
}

// ChannelByMessageID scans every channel's history. Message ids are
// global but storage is per-channel, so this is the only way to map
// one back to its channel.
func (s *Store) ChannelByMessageID(messageID int64) *models.Channel {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i, channel := range s.channels {
		s.chanMu[i].Lock()
		found := messageInChannelLocked(channel, messageID) != nil
		s.chanMu[i].Unlock()
		if found {
			return channel
		}
	}
	return nil
}

// AddMember is idempotent: adding a user who is already in the channel
// is a no-op.
func (s *Store) AddMember(channel *models.Channel, user *models.User) {
	mu := s.channelMuFor(channel)
	if mu == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()

	if memberIndex(channel.AllMembers, user) < 0 {
		channel.AllMembers = append(channel.AllMembers, user)
	}
}

// RemoveMember drops the user from the member list and, if present,
// from the owner list, keeping owners a subset of members.
func (s *Store) RemoveMember(channel *models.Channel, user *models.User) error {
	mu := s.channelMuFor(channel)
	if mu == nil {
		return fmt.Errorf("%w: channel %d", ErrNotFound, channel.ID)
	}
	mu.Lock()
	defer mu.Unlock()

	i := memberIndex(channel.AllMembers, user)
	if i < 0 {
		return fmt.Errorf("%w: user %d is not a member of channel %d", ErrNotFound, user.ID, channel.ID)
	}
	channel.AllMembers = append(channel.AllMembers[:i], channel.AllMembers[i+1:]...)

	if j := memberIndex(channel.OwnerMembers, user); j >= 0 {
		channel.OwnerMembers = append(channel.OwnerMembers[:j], channel.OwnerMembers[j+1:]...)
	}
	return nil
}

// AddOwner promotes a user, adding them to the member list first if
// needed.
func (s *Store) AddOwner(channel *models.Channel, user *models.User) {
	mu := s.channelMuFor(channel)
	if mu == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()

	if memberIndex(channel.AllMembers, user) < 0 {
		channel.AllMembers = append(channel.AllMembers, user)
	}
	if memberIndex(channel.OwnerMembers, user) < 0 {
		channel.OwnerMembers = append(channel.OwnerMembers, user)
	}
}

func (s *Store) RemoveOwner(channel *models.Channel, user *models.User) error {
	mu := s.channelMuFor(channel)
	if mu == nil {
		return fmt.Errorf("%w: channel %d", ErrNotFound, channel.ID)
	}
	mu.Lock()
	defer mu.Unlock()

	i := memberIndex(channel.OwnerMembers, user)
	if i < 0 {
		return fmt.Errorf("%w: user %d is not an owner of channel %d", ErrNotFound, user.ID, channel.ID)
	}
	channel.OwnerMembers = append(channel.OwnerMembers[:i], channel.OwnerMembers[i+1:]...)
	return nil
}

// IsOwner reports whether user is in the channel's owner list.
func (s *Store) IsOwner(channel *models.Channel, user *models.User) bool {
	mu := s.channelMuFor(channel)
	if mu == nil {
		return false
	}
	mu.Lock()
	defer mu.Unlock()

	return memberIndex(channel.OwnerMembers, user) >= 0
}

// IsMember reports whether user is in the channel's member list.
func (s *Store) IsMember(channel *models.Channel, user *models.User) bool {
	mu := s.channelMuFor(channel)
	if mu == nil {
		return false
	}
	mu.Lock()
	defer mu.Unlock()

	return memberIndex(channel.AllMembers, user) >= 0
}

func memberIndex(members []*models.User, user *models.User) int {
	for i := range members {
		if members[i] == user {
			return i
		}
	}
	return -1
}
