// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"testing"
	"time"
)

func TestTypewriterRevealsRuneByRune(t *testing.T) {
	tw := newTypewriter(time.Millisecond)

	cmd := tw.Start("Hi!")
	if cmd == nil {
		t.Fatal("Start returned no tick command")
	}
	if tw.Prefix() != "" {
		t.Errorf("prefix before first tick = %q", tw.Prefix())
	}

	want := []string{"H", "Hi", "Hi!"}
	for i, prefix := range want {
		cmd = tw.Advance(TypewriterTickMsg{Gen: tw.gen})
		if got := tw.Prefix(); got != prefix {
			t.Errorf("step %d prefix = %q, want %q", i, got, prefix)
		}
	}

	if cmd != nil {
		t.Error("tick scheduled past the end of the text")
	}
	if tw.Active() {
		t.Error("typewriter still active after full reveal")
	}
	if tw.Advance(TypewriterTickMsg{Gen: tw.gen}) != nil {
		t.Error("Advance after completion scheduled a tick")
	}
	if tw.Prefix() != "Hi!" {
		t.Errorf("prefix after completion = %q", tw.Prefix())
	}
}

func TestTypewriterIgnoresStaleGeneration(t *testing.T) {
	tw := newTypewriter(time.Millisecond)

	tw.Start("first")
	stale := tw.gen
	tw.Advance(TypewriterTickMsg{Gen: stale})

	tw.Start("second")
	if cmd := tw.Advance(TypewriterTickMsg{Gen: stale}); cmd != nil {
		t.Error("stale tick scheduled a follow-up")
	}
	if tw.Prefix() != "" {
		t.Errorf("stale tick advanced the reveal: prefix = %q", tw.Prefix())
	}

	tw.Advance(TypewriterTickMsg{Gen: tw.gen})
	if tw.Prefix() != "s" {
		t.Errorf("prefix = %q, want %q", tw.Prefix(), "s")
	}
}

func TestTypewriterDisabledShowsFullText(t *testing.T) {
	tw := newTypewriter(0)

	if cmd := tw.Start("instant"); cmd != nil {
		t.Error("disabled typewriter scheduled a tick")
	}
	if tw.Active() {
		t.Error("disabled typewriter reports active")
	}
	if tw.Prefix() != "instant" {
		t.Errorf("prefix = %q", tw.Prefix())
	}
}

func TestTypewriterStopCompletesReveal(t *testing.T) {
	tw := newTypewriter(time.Millisecond)

	tw.Start("hello")
	tw.Advance(TypewriterTickMsg{Gen: tw.gen})
	tw.Stop()

	if tw.Active() {
		t.Error("typewriter active after Stop")
	}
	if tw.Prefix() != "hello" {
		t.Errorf("prefix after Stop = %q", tw.Prefix())
	}
}
