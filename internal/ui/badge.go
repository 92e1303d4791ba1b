package ui

import "fmt"

// badgeMax mirrors the backend convention of capping displayed counts.
const badgeMax = 99

// BadgeText returns the badge text for an unread count: the count itself
// up to 99, "99+" above that, and an empty string (badge hidden) at zero.
func BadgeText(count int) string {
	switch {
	case count <= 0:
		return ""
	case count > badgeMax:
		return "99+"
	default:
		return fmt.Sprintf("%d", count)
	}
}

// CountLabel suffixes a label with its unread count, used for the
// sidebar-style panel headings. A zero count leaves the label bare.
func CountLabel(label string, count int) string {
	badge := BadgeText(count)
	if badge == "" {
		return label
	}
	return fmt.Sprintf("%s (%s)", label, badge)
}
