package store

import (
	"fmt"
	"strings"
	"time"

	"chatcore-backend/internal/models"
)

// StartStandup activates a standup window on the channel and arms a
// one-shot timer that flushes it after length seconds. The timer is
// fire-and-forget: nothing waits on it and there is no cancellation.
// Returns the finish timestamp.
func (s *Store) StartStandup(channel *models.Channel, initiator *models.User, length int64) (int64, error) {
	initiatorSnap := s.UserSnapshot(initiator)

	mu := s.channelMuFor(channel)
	if mu == nil {
		return 0, fmt.Errorf("%w: channel %d", ErrNotFound, channel.ID)
	}
	mu.Lock()
	defer mu.Unlock()

	if channel.Standup.IsActive {
		return 0, fmt.Errorf("%w: a standup is already active in channel %d", ErrConflict, channel.ID)
	}

	timeFinish := currentTime() + length
	channel.Standup = models.StandupStatus{
		IsActive:          true,
		TimeFinish:        timeFinish,
		Initiator:         initiator,
		Queued:            []models.QueuedMessage{},
		InitiatorSnapshot: initiatorSnap,
	}

	time.AfterFunc(time.Duration(length)*time.Second, func() {
		s.EndStandup(channel)
	})

	return timeFinish, nil
}

// EnqueueStandup queues a submission for the active window. No message
// id is assigned until the window closes.
func (s *Store) EnqueueStandup(channel *models.Channel, sender *models.User, body string) error {
	senderHandle := s.UserSnapshot(sender).Handle

	mu := s.channelMuFor(channel)
	if mu == nil {
		return fmt.Errorf("%w: channel %d", ErrNotFound, channel.ID)
	}
	mu.Lock()
	defer mu.Unlock()

	if !channel.Standup.IsActive {
		return fmt.Errorf("%w: no active standup in channel %d", ErrConflict, channel.ID)
	}

	channel.Standup.Queued = append(channel.Standup.Queued, models.QueuedMessage{
		SenderHandle: senderHandle,
		Body:         body,
	})
	return nil
}

// EndStandup closes the channel's standup window: if anything was
// queued it synthesizes one message of "<handle>: <body>" lines in
// submission order, authored by the initiator. The status reset is
// unconditional and happens before synthesis, so the channel can never
// be left stuck active. Invoked by the timer armed in StartStandup;
// calling it on an inactive channel is a no-op.
func (s *Store) EndStandup(channel *models.Channel) {
	mu := s.channelMuFor(channel)
	if mu == nil {
		// the store was reset after this timer was armed
		return
	}
	mu.Lock()
	defer mu.Unlock()

	if !channel.Standup.IsActive {
		return
	}

	initiator := channel.Standup.Initiator
	initiatorSnap := channel.Standup.InitiatorSnapshot
	queued := channel.Standup.Queued
	channel.Standup = models.StandupStatus{}

	if len(queued) == 0 {
		return
	}

	lines := make([]string, 0, len(queued))
	for _, q := range queued {
		lines = append(lines, fmt.Sprintf("%s: %s", q.SenderHandle, q.Body))
	}

	msg := s.postLocked(channel, initiator, initiatorSnap, strings.Join(lines, "\n"), currentTime())
	s.sugar.Debugf("Flushed standup in channel [%d] into message [%d] with %d submissions", channel.ID, msg.ID, len(queued))
}

// StandupActive reports whether a standup is running and when it ends.
func (s *Store) StandupActive(channel *models.Channel) (bool, int64) {
	mu := s.channelMuFor(channel)
	if mu == nil {
		return false, 0
	}
	mu.Lock()
	defer mu.Unlock()

	return channel.Standup.IsActive, channel.Standup.TimeFinish
}
