package poll

import (
	"github.com/nvaldez/feedtray/internal/model"
	"github.com/nvaldez/feedtray/internal/text"
)

// PopupText composes the transient popup line for a new item: title plus
// message for notifications, sender plus body for messages, each truncated
// to its limit. Backend text is sanitized before it can reach a terminal.
func PopupText(item model.Item) string {
	limit := notificationPopupLimit
	if item.Feed == model.FeedMessages {
		limit = messagePopupLimit
	}

	composed := item.Title
	if item.Body != "" {
		composed += ": " + item.Body
	}
	return text.Truncate(text.Sanitize(composed), limit)
}
