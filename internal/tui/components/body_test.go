package components

import (
	"fmt"
	"strings"
	"testing"
)

func numbered(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %02d", i)
	}
	return strings.Join(lines, "\n")
}

func TestBody_Scroll(t *testing.T) {
	b := NewBody()
	b.SetSize(40, 6)
	b.SetContent(numbered(30))

	if b.LineCount() != 30 {
		t.Fatalf("LineCount() = %d, want 30", b.LineCount())
	}

	b.Update(key("j"))
	b.Update(key("down"))
	if b.Offset() != 2 {
		t.Errorf("Offset() = %d after two downs, want 2", b.Offset())
	}
	b.Update(key("k"))
	if b.Offset() != 1 {
		t.Errorf("Offset() = %d after up, want 1", b.Offset())
	}

	b.Update(key("G"))
	if b.ScrollPercent() != 1 {
		t.Errorf("G should scroll to the bottom, got %v", b.ScrollPercent())
	}
	b.Update(key("g"))
	if b.Offset() != 0 {
		t.Errorf("g should scroll to the top, got %d", b.Offset())
	}
}

func TestBody_SetContentKeepsOffset(t *testing.T) {
	b := NewBody()
	b.SetSize(40, 6)
	b.SetContent(numbered(30))
	for range 5 {
		b.Update(key("j"))
	}

	b.SetContent(numbered(30))
	if b.Offset() != 5 {
		t.Errorf("Offset() = %d after reload, want 5", b.Offset())
	}

	b.SetContent(numbered(3))
	if b.Offset() != 0 {
		t.Errorf("short content should clamp the offset, got %d", b.Offset())
	}
}

func TestBody_View(t *testing.T) {
	b := NewBody()
	b.SetTitle("12 districts")
	b.SetSize(40, 4)
	b.SetContent(numbered(10))

	view := b.View()
	if !strings.Contains(view, "12 districts") {
		t.Error("view should contain the title")
	}
	if !strings.Contains(view, "line 00") || strings.Contains(view, "line 05") {
		t.Errorf("view should show only the first lines, got %q", view)
	}
}

func TestBody_Empty(t *testing.T) {
	b := NewBody()
	if b.LineCount() != 0 || b.Content() != "" {
		t.Error("new body should be empty")
	}
}
