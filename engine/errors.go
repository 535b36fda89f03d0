package engine

import "errors"

// Error kinds returned by engine operations. Handlers map them to HTTP
// status codes with errors.Is; anything else is reported as an internal
// error without leaking detail to the client.
var (
	ErrUnauthenticated        = errors.New("unauthenticated")
	ErrNotFound               = errors.New("not found")
	ErrInvalidArgument        = errors.New("invalid argument")
	ErrForbidden              = errors.New("forbidden")
	ErrConflict               = errors.New("conflict")
	ErrAlreadyRetweetedPost   = errors.New("post is already a retweet")
	ErrAlreadyRetweetedByUser = errors.New("post already retweeted by user")
)
