// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// TYPEWRITER REVEAL
// =============================================================================

// typewriter reveals the newest assistant reply one rune per tick.
//
// Every Start bumps the generation counter, so ticks scheduled for an
// earlier target carry a stale generation and are ignored when they
// arrive. Once the full text is shown the reveal is over; there is no
// way to rewind it.
type typewriter struct {
	target   []rune
	shown    int
	gen      int
	interval time.Duration
}

// newTypewriter returns a typewriter with the given per-rune interval.
// A zero or negative interval disables the effect.
func newTypewriter(interval time.Duration) typewriter {
	return typewriter{interval: interval}
}

// Start begins revealing text and returns the first tick command, or nil
// when the effect is disabled or there is nothing to reveal.
func (tw *typewriter) Start(text string) tea.Cmd {
	tw.gen++
	tw.target = []rune(text)
	tw.shown = 0

	if tw.interval <= 0 || len(tw.target) == 0 {
		tw.shown = len(tw.target)
		return nil
	}
	return tw.tick()
}

// Stop abandons the current reveal and shows the target in full.
func (tw *typewriter) Stop() {
	tw.gen++
	tw.shown = len(tw.target)
}

// Advance applies one tick. Stale generations are no-ops. Returns the
// next tick command, or nil when the reveal is complete.
func (tw *typewriter) Advance(msg TypewriterTickMsg) tea.Cmd {
	if msg.Gen != tw.gen || tw.shown >= len(tw.target) {
		return nil
	}
	tw.shown++
	if tw.shown >= len(tw.target) {
		return nil
	}
	return tw.tick()
}

// Active reports whether a reveal is still in progress.
func (tw *typewriter) Active() bool {
	return tw.shown < len(tw.target)
}

// Prefix returns the currently visible portion of the target.
func (tw *typewriter) Prefix() string {
	return string(tw.target[:tw.shown])
}

// tick schedules the next reveal step, stamped with the current generation.
func (tw *typewriter) tick() tea.Cmd {
	gen := tw.gen
	return tea.Tick(tw.interval, func(time.Time) tea.Msg {
		return TypewriterTickMsg{Gen: gen}
	})
}
