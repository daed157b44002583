package service

import "errors"

var (
	// ErrUnauthorized covers every mutating call arriving without a username.
	ErrUnauthorized       = errors.New("login required")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrMissingCredentials = errors.New("username and password are required")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmptyComment       = errors.New("comment must not be empty")
	ErrCommentTooLong     = errors.New("comment exceeds the maximum length")
	ErrArticleNotFound    = errors.New("article not found")
	ErrCommentNotFound    = errors.New("comment not found")

	// ErrUpstreamUnavailable never crosses the feed gateway boundary; it is
	// absorbed into placeholder content so callers always get a feed.
	ErrUpstreamUnavailable = errors.New("upstream provider unavailable")
)
