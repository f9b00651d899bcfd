package domain

import "errors"

var (
	// ErrEmptyBody is returned when a message is sent with a blank body.
	ErrEmptyBody = errors.New("message body cannot be empty")
	// ErrMissingFields is returned when required registration fields are absent.
	ErrMissingFields = errors.New("missing required fields")
	// ErrInvalidCredentials covers both unknown usernames and bad passwords on
	// login, so responses do not reveal which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is returned when a session token is absent, malformed,
	// expired, or carries a bad signature.
	ErrInvalidToken = errors.New("invalid token")
	// ErrUnauthorized is returned when an authenticated caller fails a
	// per-resource authorization rule (self, participant, recipient).
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUserNotFound is returned when a username does not resolve to a user.
	ErrUserNotFound = errors.New("user not found")
	// ErrMessageNotFound is returned when a message id does not exist.
	ErrMessageNotFound = errors.New("message not found")
	// ErrUserExists is returned when registering an already-taken username.
	ErrUserExists = errors.New("user already exists")
)
