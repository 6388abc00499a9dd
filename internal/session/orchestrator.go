// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/polichat/internal/api"
	"github.com/jeranaias/polichat/internal/model"
)

// HistoryWindow is how many non-greeting transcript entries are sent as
// conversational context with a question.
const HistoryWindow = 8

// Fixed transcript texts.
const (
	// PlaceholderText is the transient assistant entry shown while a
	// request is outstanding.
	PlaceholderText = "Thinking..."

	// ConnectivityFailureText replaces the placeholder on transport failure.
	ConnectivityFailureText = "Sorry, I am having trouble connecting to the server."

	// TermsFailureText is appended when crucial terms cannot be fetched.
	TermsFailureText = "Sorry, I am having trouble fetching the policy details."

	// offerPoliciesText introduces a selectable policy list.
	offerPoliciesText = "I found these policies for you. Please select one to ask questions:"
)

// =============================================================================
// ORCHESTRATOR
// =============================================================================

// Orchestrator owns all mutable session state. It is not safe for
// concurrent use; the Bubble Tea update loop is its only caller.
type Orchestrator struct {
	transcript *model.Transcript
	selected   *model.Policy
	activeID   string
	inFlight   bool
}

// New returns an orchestrator holding a fresh greeting-only session.
func New() *Orchestrator {
	return &Orchestrator{transcript: model.NewTranscript()}
}

// Transcript returns the current transcript for rendering.
func (o *Orchestrator) Transcript() *model.Transcript {
	return o.transcript
}

// SelectedPolicy returns the policy questions are scoped to, or nil.
func (o *Orchestrator) SelectedPolicy() *model.Policy {
	return o.selected
}

// ActiveID returns the id of the loaded session, or "" for a new chat.
func (o *Orchestrator) ActiveID() string {
	return o.activeID
}

// InFlight reports whether a request is outstanding.
func (o *Orchestrator) InFlight() bool {
	return o.inFlight
}

// reset returns the orchestrator to a greeting-only session.
func (o *Orchestrator) reset() {
	o.transcript = model.NewTranscript()
	o.selected = nil
	o.activeID = ""
}

// =============================================================================
// OPERATIONS
// =============================================================================

// StartNewChat resets to a fresh session. When the outgoing transcript has
// user activity it is persisted first, fire-and-forget; the reset never
// waits for the save.
func (o *Orchestrator) StartNewChat(client *api.Client) tea.Cmd {
	save := o.saveCurrentCmd(client)
	o.reset()
	return save
}

// saveCurrentCmd captures the current session for persistence. Returns nil
// when only the greeting exists.
func (o *Orchestrator) saveCurrentCmd(client *api.Client) tea.Cmd {
	if !o.transcript.HasUserActivity() {
		return nil
	}
	req := api.SaveChatRequest{
		ChatID:         o.activeID,
		Messages:       o.transcript.Clone(),
		SelectedPolicy: o.selected,
	}
	return func() tea.Msg {
		err := client.SaveChat(context.Background(), req)
		if err != nil {
			log.Printf("session: failed to save chat: %v", err)
		}
		return SessionSavedMsg{Err: err}
	}
}

// LoadSession switches to a stored session. Loading the already-active id
// is a no-op. The outgoing session is saved fire-and-forget, matching
// StartNewChat.
func (o *Orchestrator) LoadSession(client *api.Client, id string) tea.Cmd {
	if id == "" || id == o.activeID {
		return nil
	}

	save := o.saveCurrentCmd(client)
	o.inFlight = true

	load := func() tea.Msg {
		session, err := client.GetChat(context.Background(), id)
		return SessionLoadedMsg{ID: id, Session: session, Err: err}
	}
	if save != nil {
		return tea.Batch(save, load)
	}
	return load
}

// HandleSessionLoaded applies a session fetch result. On any failure the
// orchestrator falls back to a fresh chat rather than showing a broken
// transcript.
func (o *Orchestrator) HandleSessionLoaded(msg SessionLoadedMsg) {
	o.inFlight = false

	if msg.Err != nil || msg.Session == nil {
		log.Printf("session: failed to load chat %s: %v", msg.ID, msg.Err)
		o.reset()
		return
	}

	id := msg.Session.ID
	if id == "" {
		id = msg.ID
	}
	o.activeID = id
	o.transcript = model.FromMessages(msg.Session.Messages)
	o.selected = msg.Session.SelectedPolicy
}

// SubmitQuery sends a question to the assistant. Blank input and
// submissions while a request is outstanding are no-ops; this is the sole
// reentrancy guard.
func (o *Orchestrator) SubmitQuery(client *api.Client, text string) tea.Cmd {
	text = strings.TrimSpace(text)
	if text == "" || o.inFlight {
		return nil
	}

	// Context is the conversation before this question; the question
	// itself travels in its own field.
	history := o.transcript.Tail(HistoryWindow)

	o.transcript.Append(model.NewUserMessage(text))
	index := o.transcript.Append(model.NewAssistantMessage(PlaceholderText))
	o.inFlight = true

	req := api.AskRequest{Question: text, History: history}
	if o.selected != nil {
		req.PolicyID = o.selected.ID
	}

	return func() tea.Msg {
		resp, err := client.AskQuestion(context.Background(), req)
		return AnswerMsg{Index: index, Resp: resp, Err: err}
	}
}

// HandleAnswer swaps the placeholder for the real answer. The transcript
// length is invariant across the round trip.
func (o *Orchestrator) HandleAnswer(msg AnswerMsg) {
	o.inFlight = false
	o.transcript.ReplaceAt(msg.Index, answerMessage(msg))
}

// answerMessage maps an answer outcome to the replacement transcript entry.
func answerMessage(msg AnswerMsg) model.Message {
	if msg.Err != nil {
		return model.NewAssistantMessage(failureText(msg.Err))
	}

	if msg.Resp.NeedsClarification() {
		text := msg.Resp.Reply()
		if text == "" {
			text = offerPoliciesText
		}
		reply := model.NewAssistantMessage(text)
		reply.Policies = msg.Resp.Policies
		return reply
	}

	reply := model.NewAssistantMessage(msg.Resp.Reply())
	reply.Recommended = msg.Resp.Recommended
	return reply
}

// failureText prefers the backend's own message for application errors and
// falls back to the fixed connectivity text for transport failures.
func failureText(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return ConnectivityFailureText
}

// SelectPolicy scopes the conversation to a policy and fetches its crucial
// terms. Guarded by the in-flight flag like SubmitQuery.
func (o *Orchestrator) SelectPolicy(client *api.Client, policy model.Policy) tea.Cmd {
	if o.inFlight {
		return nil
	}

	p := policy
	o.selected = &p
	o.transcript.Append(model.NewUserMessage(fmt.Sprintf("Tell me more about %q", policy.Name)))
	o.inFlight = true

	return func() tea.Msg {
		terms, err := client.CrucialTerms(context.Background(), policy.ID)
		return TermsMsg{Policy: policy, Terms: terms, Err: err}
	}
}

// HandleTerms appends the synthesized term summary, or the fixed failure
// message when the fetch failed.
func (o *Orchestrator) HandleTerms(msg TermsMsg) {
	o.inFlight = false

	if msg.Err != nil {
		log.Printf("session: failed to fetch terms for %s: %v", msg.Policy.ID, msg.Err)
		o.transcript.Append(model.NewAssistantMessage(TermsFailureText))
		return
	}
	o.transcript.Append(model.NewAssistantMessage(summarizeTerms(msg.Policy, msg.Terms)))
}

// summarizeTerms builds the assistant's introduction to a policy: the
// first term in full, up to three more term names as teasers, and a
// closing prompt inviting questions.
func summarizeTerms(policy model.Policy, terms []model.ImportantTerm) string {
	var b strings.Builder

	if len(terms) == 0 {
		fmt.Fprintf(&b, "I couldn't find key terms for **%s**.\n\n", policy.Name)
	} else {
		first := terms[0]
		fmt.Fprintf(&b, "The most important thing to know about **%s**:\n\n", policy.Name)
		fmt.Fprintf(&b, "**%s:**\n%s\n\n", first.Term, first.Description)
		if first.UserMustKnow != "" {
			fmt.Fprintf(&b, "*You must know: %s*\n\n", first.UserMustKnow)
		}

		if len(terms) > 1 {
			teasers := make([]string, 0, 3)
			for _, term := range terms[1:] {
				teasers = append(teasers, term.Term)
				if len(teasers) == 3 {
					break
				}
			}
			fmt.Fprintf(&b, "Other key terms worth a look: %s.\n\n", strings.Join(teasers, ", "))
		}
	}

	fmt.Fprintf(&b, "What would you like to know about %s? You can ask questions like \"what is the waiting period?\"", policy.Name)
	return b.String()
}

// SearchPolicies runs a policy search with the same guard and
// placeholder-swap discipline as SubmitQuery.
func (o *Orchestrator) SearchPolicies(client *api.Client, query string) tea.Cmd {
	query = strings.TrimSpace(query)
	if query == "" || o.inFlight {
		return nil
	}

	o.transcript.Append(model.NewUserMessage(fmt.Sprintf("Search for %q", query)))
	index := o.transcript.Append(model.NewAssistantMessage(PlaceholderText))
	o.inFlight = true

	return func() tea.Msg {
		policies, err := client.SearchPolicies(context.Background(), query)
		return SearchMsg{Index: index, Query: query, Policies: policies, Err: err}
	}
}

// HandleSearch swaps the placeholder for the search outcome.
func (o *Orchestrator) HandleSearch(msg SearchMsg) {
	o.inFlight = false

	var reply model.Message
	switch {
	case msg.Err != nil:
		reply = model.NewAssistantMessage(failureText(msg.Err))
	case len(msg.Policies) == 0:
		reply = model.NewAssistantMessage(fmt.Sprintf("Sorry, I couldn't find any policies matching %q.", msg.Query))
	default:
		reply = model.NewAssistantMessage(offerPoliciesText)
		reply.Policies = msg.Policies
	}
	o.transcript.ReplaceAt(msg.Index, reply)
}
