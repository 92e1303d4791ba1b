package feed

import (
	"fmt"
	"time"
)

// notificationPayload is the response of GET <notificationPath>.
type notificationPayload struct {
	UnreadCount   int                `json:"unread_count"`
	Notifications []notificationWire `json:"notifications"`
}

// notificationWire is a single notification as returned by the backend.
type notificationWire struct {
	ID               int64  `json:"id"`
	Title            string `json:"title"`
	Message          string `json:"message"`
	NotificationType string `json:"notification_type"`
	IsRead           bool   `json:"is_read"`
	CreatedAt        string `json:"created_at"`
	Sender           string `json:"sender"`
}

// messagePayload is the response of GET <messagePath>.
type messagePayload struct {
	UnreadCount int           `json:"unread_count"`
	Messages    []messageWire `json:"messages"`
}

// messageWire is a single message summary as returned by the backend.
type messageWire struct {
	ID             int64  `json:"id"`
	ConversationID int64  `json:"conversation_id"`
	SenderName     string `json:"sender_name"`
	Body           string `json:"body"`
	IsRead         bool   `json:"is_read"`
	CreatedAt      string `json:"created_at"`
}

// markReadResponse is the response of the mark-read endpoint.
type markReadResponse struct {
	Status      string `json:"status"`
	UnreadCount int    `json:"unread_count"`
}

// timestampLayouts are the accepted created_at formats. The backend emits
// ISO-8601; naive datetimes (no offset) appear when it runs without
// timezone support and parse as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// parseTimestamp parses a backend created_at value. An unparsable
// timestamp makes the whole response count as malformed.
func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parsing timestamp %q", value)
}
