package model

import (
	"testing"
	"time"
)

func TestFlashExpiry(t *testing.T) {
	var f Flash
	now := time.Unix(1000, 0)

	if got := f.Message(now); got != "" {
		t.Errorf("zero Flash = %q, want empty", got)
	}

	f.Set("keyboard lost", now.Add(time.Second))
	if got := f.Message(now); got != "keyboard lost" {
		t.Errorf("Message() = %q, want %q", got, "keyboard lost")
	}
	if got := f.Message(now.Add(time.Second)); got != "" {
		t.Errorf("Message() at expiry = %q, want empty", got)
	}
}

func TestFlashClear(t *testing.T) {
	var f Flash
	now := time.Unix(1000, 0)
	f.Set("reset", now.Add(time.Minute))
	f.Clear()
	if got := f.Message(now); got != "" {
		t.Errorf("Message() after Clear = %q, want empty", got)
	}
}
