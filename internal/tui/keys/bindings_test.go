package keys

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestHandleEvent(t *testing.T) {
	r := NewRegistry()
	quit := 0
	r.Add("quit", &Action{
		Key: tcell.KeyCtrlQ, Description: "^Q:quit", Visible: true,
		Handler: func() { quit++ },
	})

	if !r.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)) {
		t.Error("HandleEvent(Ctrl-Q) = false, want true")
	}
	if quit != 1 {
		t.Errorf("quit handler ran %d times, want 1", quit)
	}

	if r.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Error("plain q must not be consumed")
	}
}

func TestRuneAction(t *testing.T) {
	a := &Action{Key: tcell.KeyRune, Rune: '?'}
	if !a.Matches(tcell.NewEventKey(tcell.KeyRune, '?', tcell.ModNone)) {
		t.Error("Matches('?') = false")
	}
	if a.Matches(tcell.NewEventKey(tcell.KeyRune, '/', tcell.ModNone)) {
		t.Error("Matches('/') = true")
	}
}

func TestHints(t *testing.T) {
	r := NewRegistry()
	r.Add("quit", &Action{Key: tcell.KeyCtrlQ, Description: "^Q:quit", Visible: true, Handler: func() {}})
	r.Add("interrupt", &Action{Key: tcell.KeyCtrlC, Description: "^C:quit", Handler: func() {}})
	r.Add("clear", &Action{Key: tcell.KeyCtrlL, Description: "^L:clear", Visible: true, Handler: func() {}})

	got := r.Hints()
	want := []string{"^L:clear", "^Q:quit"}
	if len(got) != len(want) {
		t.Fatalf("Hints() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Hints()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
