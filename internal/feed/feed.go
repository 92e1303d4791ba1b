// Package feed contains the HTTP clients for the backend's two pollable
// feeds: notifications and messages.
package feed

import (
	"context"
	"errors"
	"fmt"

	"github.com/nvaldez/feedtray/internal/model"
)

// AuthError indicates that authentication has failed or expired.
// It is returned when the backend responds with 401.
type AuthError struct {
	Feed    model.FeedKind
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error (%s): %s", e.Feed, e.Message)
}

// IsAuthError reports whether err (or any error in its chain) is an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// Snapshot holds the result of one successful feed fetch: the backend's
// unread count and the recent items, most-recent-first.
type Snapshot struct {
	UnreadCount int
	Items       []model.Item
}

// Feed defines the contract each pollable feed implements.
type Feed interface {
	// Kind returns the feed identifier.
	Kind() model.FeedKind

	// Fetch retrieves the current unread count and recent items.
	Fetch(ctx context.Context) (*Snapshot, error)
}
