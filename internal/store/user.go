package store

import (
	"fmt"
	"strconv"
	"strings"

	"chatcore-backend/internal/hash"
	"chatcore-backend/internal/models"
	"chatcore-backend/internal/token"
	"chatcore-backend/internal/validator"

	"github.com/google/uuid"
)

const handleMaxLength = 20

// Register creates a new user. Ids are assigned densely from 0 and the
// very first user receives permission level 1, everyone after level 2.
func (s *Store) Register(email, password, nameFirst, nameLast string) (*models.User, error) {
	if err := validator.Email(email); err != nil {
		return nil, fmt.Errorf("%w: email: %v", ErrValidation, err)
	}
	if err := validator.Password(password); err != nil {
		return nil, fmt.Errorf("%w: password: %v", ErrValidation, err)
	}
	if err := validator.Name(nameFirst); err != nil {
		return nil, fmt.Errorf("%w: first name: %v", ErrValidation, err)
	}
	if err := validator.Name(nameLast); err != nil {
		return nil, fmt.Errorf("%w: last name: %v", ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userByEmailLocked(email) != nil {
		return nil, fmt.Errorf("%w: email %s is already registered", ErrValidation, email)
	}

	userID := int64(len(s.users))

	permissionID := 2
	if len(s.users) == 0 {
		permissionID = 1
	}

	sessionToken, err := token.Encode(userID)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           userID,
		Email:        email,
		PasswordHash: hash.Password(password),
		NameFirst:    nameFirst,
		NameLast:     nameLast,
		Handle:       s.generateHandleLocked(userID, nameFirst, nameLast),
		Token:        sessionToken,
		PermissionID: permissionID,
	}
	s.users = append(s.users, user)

	return user, nil
}

// generateHandleLocked derives a unique handle from the lowercased
// name concatenation, truncated to 20 characters. On collision the
// user's id is prepended and the result re-truncated until unique.
func (s *Store) generateHandleLocked(userID int64, nameFirst, nameLast string) string {
	handle := truncateRunes(strings.ToLower(nameFirst+nameLast), handleMaxLength)
	for s.handleTakenLocked(handle) {
		handle = truncateRunes(strconv.FormatInt(userID, 10)+handle, handleMaxLength)
	}
	return handle
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func (s *Store) handleTakenLocked(handle string) bool {
	for _, user := range s.users {
		if user.Handle == handle {
			return true
		}
	}
	return false
}

func (s *Store) userByEmailLocked(email string) *models.User {
	for _, user := range s.users {
		if user.Email == email {
			return user
		}
	}
	return nil
}

// Authenticate resolves a session token to a user. It fails closed:
// decode errors, out-of-range ids and revoked sessions (empty stored
// token) all yield nil.
func (s *Store) Authenticate(sessionToken string) *models.User {
	userID, err := token.Decode(sessionToken)
	if err != nil {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if userID < 0 || userID >= int64(len(s.users)) {
		return nil
	}
	user := s.users[userID]
	if user.Token == "" {
		return nil
	}
	return user
}

func (s *Store) UserByEmail(email string) *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userByEmailLocked(email)
}

func (s *Store) UserByID(userID int64) *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if userID < 0 || userID >= int64(len(s.users)) {
		return nil
	}
	return s.users[userID]
}

func (s *Store) UserByHandle(handle string) *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Handle == handle {
			return user
		}
	}
	return nil
}

func (s *Store) UpdatePassword(user *models.User, newPassword string) error {
	if err := validator.Password(newPassword); err != nil {
		return fmt.Errorf("%w: password: %v", ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user.PasswordHash = hash.Password(newPassword)
	return nil
}

// VerifyPassword compares digests, never plaintext.
func (s *Store) VerifyPassword(user *models.User, candidate string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return user.PasswordHash == hash.Password(candidate)
}

// IssueToken generates a fresh signed token for user and stores it,
// marking the session as live.
func (s *Store) IssueToken(user *models.User) (string, error) {
	sessionToken, err := token.Encode(user.ID)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user.Token = sessionToken
	return sessionToken, nil
}

// RevokeToken logs the user out. Authenticate fails for this id until
// IssueToken is called again.
func (s *Store) RevokeToken(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.Token = ""
}

func (s *Store) SetNames(user *models.User, nameFirst, nameLast string) error {
	if err := validator.Name(nameFirst); err != nil {
		return fmt.Errorf("%w: first name: %v", ErrValidation, err)
	}
	if err := validator.Name(nameLast); err != nil {
		return fmt.Errorf("%w: last name: %v", ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user.NameFirst = nameFirst
	user.NameLast = nameLast
	return nil
}

func (s *Store) SetEmail(user *models.User, email string) error {
	if err := validator.Email(email); err != nil {
		return fmt.Errorf("%w: email: %v", ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing := s.userByEmailLocked(email); existing != nil && existing != user {
		return fmt.Errorf("%w: email %s is already registered", ErrValidation, email)
	}
	user.Email = email
	return nil
}

func (s *Store) SetHandle(user *models.User, handle string) error {
	if err := validator.Handle(handle); err != nil {
		return fmt.Errorf("%w: handle: %v", ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, other := range s.users {
		if other != user && other.Handle == handle {
			return fmt.Errorf("%w: handle %s is already taken", ErrValidation, handle)
		}
	}
	user.Handle = handle
	return nil
}

func (s *Store) SetProfileImage(user *models.User, url string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.ProfileImgURL = url
}

// RequestPasswordReset issues a single-use reset code for the account
// registered under email.
func (s *Store) RequestPasswordReset(email string) (string, error) {
	if s.UserByEmail(email) == nil {
		return "", fmt.Errorf("%w: no user with email %s", ErrNotFound, email)
	}

	code := uuid.NewString()

	s.resetMu.Lock()
	defer s.resetMu.Unlock()

	s.resetCodes[code] = email
	return code, nil
}

// ResetPassword consumes a reset code and replaces the password of the
// account it was issued for.
func (s *Store) ResetPassword(code, newPassword string) error {
	if err := validator.Password(newPassword); err != nil {
		return fmt.Errorf("%w: password: %v", ErrValidation, err)
	}

	s.resetMu.Lock()
	email, ok := s.resetCodes[code]
	if ok {
		delete(s.resetCodes, code)
	}
	s.resetMu.Unlock()

	if !ok {
		return fmt.Errorf("%w: unknown reset code", ErrNotFound)
	}

	user := s.UserByEmail(email)
	if user == nil {
		return fmt.Errorf("%w: no user with email %s", ErrNotFound, email)
	}
	return s.UpdatePassword(user, newPassword)
}
