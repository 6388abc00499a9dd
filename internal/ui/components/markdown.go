// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// renderer is cached per word-wrap width; glamour renderer construction is
// expensive relative to a render.
var (
	rendererMu    sync.Mutex
	renderer      *glamour.TermRenderer
	rendererWidth int
)

// RenderMarkdown renders assistant markdown for the terminal. On any
// renderer failure the raw text comes back unchanged; a readable transcript
// beats a styled one.
func RenderMarkdown(text string, width int) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	if width < 20 {
		width = 20
	}

	rendererMu.Lock()
	defer rendererMu.Unlock()

	if renderer == nil || rendererWidth != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return text
		}
		renderer = r
		rendererWidth = width
	}

	out, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}
