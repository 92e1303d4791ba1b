package model

import "time"

// FeedKind identifies which of the two pollable feeds an item came from.
type FeedKind string

const (
	FeedNotifications FeedKind = "notifications"
	FeedMessages      FeedKind = "messages"
)

// Notification categories used by the backend. Each category selects a
// display icon and color pair in the theme package; unknown categories
// fall back to a neutral default.
const (
	CategoryOrderPlaced       = "order_placed"
	CategoryOrderConfirmed    = "order_confirmed"
	CategoryOrderProcessing   = "order_processing"
	CategoryOrderCompleted    = "order_completed"
	CategoryOrderCancelled    = "order_cancelled"
	CategoryDeliveryShipped   = "delivery_shipped"
	CategoryDeliveryOut       = "delivery_out"
	CategoryDeliveryDelivered = "delivery_delivered"
	CategoryPaymentPaid       = "payment_paid"
	CategoryPaymentVerified   = "payment_verified"
	CategoryStockLow          = "stock_low"
	CategoryStockOut          = "stock_out"
	CategoryNewMessage        = "new_message"
	CategorySystem            = "system"
)

// Item is the unified representation of a single feed entry. Items are
// immutable snapshots produced per poll; the client never mutates them.
type Item struct {
	// ID is the item's identifier in the backend.
	ID int64 `json:"id" db:"item_id"`

	// Feed identifies which feed produced this item.
	Feed FeedKind `json:"feed" db:"feed"`

	// Title is the notification title, or the sender name for messages.
	Title string `json:"title" db:"title"`

	// Body is the notification message text or the message body.
	Body string `json:"body" db:"body"`

	// Category is the backend notification type (empty for messages).
	Category string `json:"category" db:"category"`

	// Unread reports whether the item is still unread on the backend.
	Unread bool `json:"unread" db:"unread"`

	// CreatedAt is when the item was created on the backend.
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
