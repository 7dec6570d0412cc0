package models

// User ids are dense and sequential from 0, so the registry indexes
// directly into its backing slice. PasswordHash and Token never leave
// the process.
type User struct {
	ID            int64  `json:"id"`
	Email         string `json:"email"`
	PasswordHash  string `json:"-"`
	NameFirst     string `json:"nameFirst"`
	NameLast      string `json:"nameLast"`
	Handle        string `json:"handle"`
	Token         string `json:"-"`
	PermissionID  int    `json:"permissionID"`
	ProfileImgURL string `json:"profileImgURL"`
}

type Channel struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	IsPublic     bool    `json:"isPublic"`
	OwnerMembers []*User `json:"ownerMembers"`
	AllMembers   []*User `json:"allMembers"`
	// append-only, insertion order is chronological order
	Messages []*Message    `json:"messages"`
	Standup  StandupStatus `json:"standup"`
}

type Message struct {
	ID          int64    `json:"id"`
	Sender      *User    `json:"sender"`
	Body        string   `json:"body"`
	TimeCreated int64    `json:"timeCreated"`
	Reacts      []*React `json:"reacts"`
	IsPinned    bool     `json:"isPinned"`
}

// React groups every user who applied the same reaction type to a
// message. At most one React exists per (message, react type) pair.
type React struct {
	ReactID  int64   `json:"reactID"`
	Reactors []*User `json:"reactors"`
}

type StandupStatus struct {
	IsActive   bool            `json:"isActive"`
	TimeFinish int64           `json:"timeFinish"`
	Initiator  *User           `json:"-"`
	Queued     []QueuedMessage `json:"-"`
	// InitiatorSnapshot is captured at start because the expiry path
	// runs under the channel lock only and cannot take the registry
	// lock to read the initiator's fields.
	InitiatorSnapshot User `json:"-"`
}

// QueuedMessage is a standup submission waiting for the window to
// close. The sender's handle is captured at submission time; no
// message id is consumed until the queue is flushed.
type QueuedMessage struct {
	SenderHandle string
	Body         string
}

// Snapshots are value copies taken under the store's locks. Encoders
// and event subscribers marshal these, never the live records, which
// keep changing under their locks.

type ChannelSnapshot struct {
	ID           int64             `json:"id"`
	Name         string            `json:"name"`
	IsPublic     bool              `json:"isPublic"`
	OwnerMembers []User            `json:"ownerMembers"`
	AllMembers   []User            `json:"allMembers"`
	Messages     []MessageSnapshot `json:"messages"`
	Standup      StandupInfo       `json:"standup"`
}

type MessageSnapshot struct {
	ID          int64           `json:"id"`
	Sender      User            `json:"sender"`
	Body        string          `json:"body"`
	TimeCreated int64           `json:"timeCreated"`
	Reacts      []ReactSnapshot `json:"reacts"`
	IsPinned    bool            `json:"isPinned"`
}

type ReactSnapshot struct {
	ReactID  int64  `json:"reactID"`
	Reactors []User `json:"reactors"`
}

type StandupInfo struct {
	IsActive   bool  `json:"isActive"`
	TimeFinish int64 `json:"timeFinish"`
}

type ConfigFile struct {
	Address           string
	Port              string
	TlsCert           string
	TlsKey            string
	PrintHttpRequests bool
	JwtSecret         string
	SnowflakeWorkerID int64
	SmtpUsername      string
	SmtpPassword      string
	SmtpServer        string
	SmtpPort          int
}
