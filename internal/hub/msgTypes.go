package hub

const (
	MessageCreated = "MessageCreated"

	StandupStarted = "StandupStarted"
)
