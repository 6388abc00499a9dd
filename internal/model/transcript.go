// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// GreetingText is the canonical opening line of every new chat.
const GreetingText = "Hello! How can I help you today? You can search for a policy to get started."

// Greeting returns the initial assistant message every transcript starts with.
func Greeting() Message {
	return NewAssistantMessage(GreetingText)
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// Transcript is the ordered sequence of messages shown in a chat session.
//
// The transcript is append-only with one exception: ReplaceAt, used to swap
// the "Thinking..." placeholder for the real answer without disturbing the
// position of any other entry.
type Transcript struct {
	messages []Message
}

// NewTranscript returns a transcript seeded with the greeting.
func NewTranscript() *Transcript {
	return &Transcript{messages: []Message{Greeting()}}
}

// FromMessages builds a transcript from loaded session data. An empty slice
// falls back to the greeting so the view never renders an empty chat.
func FromMessages(msgs []Message) *Transcript {
	if len(msgs) == 0 {
		return NewTranscript()
	}
	t := &Transcript{messages: make([]Message, len(msgs))}
	copy(t.messages, msgs)
	return t
}

// Append adds a message to the end and returns its index.
func (t *Transcript) Append(msg Message) int {
	t.messages = append(t.messages, msg)
	return len(t.messages) - 1
}

// ReplaceAt swaps the entry at index for msg. Out-of-range indices are
// ignored rather than panicking; a stale result for a transcript that was
// reset underneath it must not corrupt the new session.
func (t *Transcript) ReplaceAt(index int, msg Message) {
	if index < 0 || index >= len(t.messages) {
		return
	}
	t.messages[index] = msg
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// At returns the message at index. ok is false when out of range.
func (t *Transcript) At(index int) (Message, bool) {
	if index < 0 || index >= len(t.messages) {
		return Message{}, false
	}
	return t.messages[index], true
}

// Last returns the final message, or ok=false for the impossible empty case.
func (t *Transcript) Last() (Message, bool) {
	if len(t.messages) == 0 {
		return Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}

// Messages returns the underlying slice for rendering. Callers must treat
// the result as read-only.
func (t *Transcript) Messages() []Message {
	return t.messages
}

// Tail returns up to n of the most recent messages, skipping the greeting
// at index zero. Used to build the conversational context sent with a
// question.
func (t *Transcript) Tail(n int) []Message {
	if n <= 0 || len(t.messages) <= 1 {
		return nil
	}
	body := t.messages[1:]
	if len(body) > n {
		body = body[len(body)-n:]
	}
	out := make([]Message, len(body))
	copy(out, body)
	return out
}

// HasUserActivity reports whether anything beyond the greeting happened.
// Sessions without activity are not worth persisting.
func (t *Transcript) HasUserActivity() bool {
	return len(t.messages) > 1
}

// Clone returns a deep-enough copy for a fire-and-forget save. Message
// values are immutable so a slice copy suffices.
func (t *Transcript) Clone() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}
