package social

import "errors"

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrContentRequired = errors.New("content is required")
	ErrSelfFollow      = errors.New("cannot follow yourself")

	// ErrNotPostAuthor is returned when someone other than the author deletes a post.
	ErrNotPostAuthor = errors.New("only the author can delete a post")
)
