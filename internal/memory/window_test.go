package memory

import (
	"fmt"
	"testing"

	"github.com/docchat/docchat-backend/internal/entity"
)

func TestWindow_AppendAndOrder(t *testing.T) {
	w := NewWindow(5)

	w.Append(entity.Turn{Role: entity.RoleUser, Text: "question"})
	w.Append(entity.Turn{Role: entity.RoleAssistant, Text: "answer"})

	turns := w.Window()
	if len(turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(turns))
	}
	if turns[0].Role != entity.RoleUser || turns[1].Role != entity.RoleAssistant {
		t.Errorf("turns out of order: %+v", turns)
	}
}

func TestWindow_EvictsOldestPair(t *testing.T) {
	w := NewWindow(5)

	for i := 0; i < 6; i++ {
		w.Append(entity.Turn{Role: entity.RoleUser, Text: fmt.Sprintf("q%d", i)})
		w.Append(entity.Turn{Role: entity.RoleAssistant, Text: fmt.Sprintf("a%d", i)})
	}

	turns := w.Window()
	if len(turns) != 10 {
		t.Fatalf("expected window capped at 10 turns, got %d", len(turns))
	}
	if turns[0].Text != "q1" {
		t.Errorf("expected oldest pair evicted, first turn is %q", turns[0].Text)
	}
	if turns[9].Text != "a5" {
		t.Errorf("expected newest turn retained, last turn is %q", turns[9].Text)
	}
}

func TestWindow_Clear(t *testing.T) {
	w := NewWindow(5)
	w.Append(entity.Turn{Role: entity.RoleUser, Text: "q"})

	w.Clear()

	if turns := w.Window(); len(turns) != 0 {
		t.Errorf("expected empty window after clear, got %d turns", len(turns))
	}
}

func TestWindow_CopyIsolation(t *testing.T) {
	w := NewWindow(5)
	w.Append(entity.Turn{Role: entity.RoleUser, Text: "q"})

	turns := w.Window()
	turns[0].Text = "mutated"

	if w.Window()[0].Text != "q" {
		t.Error("Window() must return a copy")
	}
}
