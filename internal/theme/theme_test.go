package theme

import (
	"testing"

	"github.com/nvaldez/feedtray/internal/model"
)

func TestForCategoryKnown(t *testing.T) {
	cs := ForCategory(model.CategoryOrderPlaced)
	if cs.Icon != "🛒" {
		t.Errorf("icon = %q", cs.Icon)
	}
	if cs.Foreground != ColorBlue {
		t.Errorf("foreground = %v", cs.Foreground)
	}
	if cs.Background != ColorSubtle {
		t.Errorf("background = %v", cs.Background)
	}
}

func TestForCategoryUnknownFallsBack(t *testing.T) {
	for _, tag := range []string{"", "bogus", "ORDER_PLACED"} {
		cs := ForCategory(tag)
		if cs != categoryDefault {
			t.Errorf("ForCategory(%q) = %+v, want default", tag, cs)
		}
	}
}
