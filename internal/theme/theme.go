package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nvaldez/feedtray/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for the top header bar and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// BadgeStyle renders the unread-count badge in the header.
var BadgeStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorRed).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// PanelStyle wraps a dropdown panel.
var PanelStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// FocusedPanelStyle highlights the panel that has keyboard focus.
var FocusedPanelStyle = PanelStyle.BorderForeground(ColorBlue)

// PanelTitleStyle is used for the dropdown panel headings.
var PanelTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorBlue)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// EmptyStyle renders the explicit empty-state placeholder.
var EmptyStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true).
	PaddingLeft(2)

// TimeStyle renders relative timestamps.
var TimeStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// ToastStyle renders a transient popup line.
var ToastStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// DimmedStyle de-emphasizes read items.
var DimmedStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// CategoryStyle is the display triple for one notification category.
type CategoryStyle struct {
	Icon       string
	Foreground lipgloss.AdaptiveColor
	Background lipgloss.AdaptiveColor
}

// categoryStyles is the fixed category lookup table. It is a static map,
// not a rule engine; unknown categories get categoryDefault.
var categoryStyles = map[string]CategoryStyle{
	model.CategoryOrderPlaced:       {Icon: "🛒", Foreground: ColorBlue, Background: ColorSubtle},
	model.CategoryOrderConfirmed:    {Icon: "✔", Foreground: ColorGreen, Background: ColorSubtle},
	model.CategoryOrderProcessing:   {Icon: "⚙", Foreground: ColorYellow, Background: ColorSubtle},
	model.CategoryOrderCompleted:    {Icon: "✅", Foreground: ColorGreen, Background: ColorSubtle},
	model.CategoryOrderCancelled:    {Icon: "✖", Foreground: ColorRed, Background: ColorSubtle},
	model.CategoryDeliveryShipped:   {Icon: "🚚", Foreground: ColorOrange, Background: ColorSubtle},
	model.CategoryDeliveryOut:       {Icon: "🚚", Foreground: ColorOrange, Background: ColorSubtle},
	model.CategoryDeliveryDelivered: {Icon: "📦", Foreground: ColorGreen, Background: ColorSubtle},
	model.CategoryPaymentPaid:       {Icon: "💰", Foreground: ColorGreen, Background: ColorSubtle},
	model.CategoryPaymentVerified:   {Icon: "💳", Foreground: ColorGreen, Background: ColorSubtle},
	model.CategoryStockLow:          {Icon: "⚠", Foreground: ColorYellow, Background: ColorSubtle},
	model.CategoryStockOut:          {Icon: "⛔", Foreground: ColorRed, Background: ColorSubtle},
	model.CategoryNewMessage:        {Icon: "✉", Foreground: ColorMagenta, Background: ColorSubtle},
	model.CategorySystem:            {Icon: "ℹ", Foreground: ColorGray, Background: ColorSubtle},
}

// categoryDefault is the neutral fallback triple.
var categoryDefault = CategoryStyle{
	Icon:       "•",
	Foreground: ColorGray,
	Background: ColorSubtle,
}

// ForCategory returns the display triple for the given notification
// category, falling back to a neutral default for unknown tags.
func ForCategory(category string) CategoryStyle {
	if cs, ok := categoryStyles[category]; ok {
		return cs
	}
	return categoryDefault
}
