// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/polichat/internal/model"
)

func TestAskQuestionSendsContext(t *testing.T) {
	var got AskRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, PathAskQuestion, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(AskResponse{
			Action: ActionGeneralQuery,
			Answer: "Waiting periods vary by policy.",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.AskQuestion(context.Background(), AskRequest{
		Question: "what is the waiting period?",
		PolicyID: "pol-7",
	})
	require.NoError(t, err)

	assert.Equal(t, "what is the waiting period?", got.Question)
	assert.Equal(t, "pol-7", got.PolicyID)
	assert.Equal(t, "Waiting periods vary by policy.", resp.Reply())
	assert.False(t, resp.NeedsClarification())
}

func TestAskResponseClarification(t *testing.T) {
	tests := []struct {
		name string
		resp AskResponse
		want bool
	}{
		{
			name: "show_policies with offers",
			resp: AskResponse{Action: ActionShowPolicies, Policies: []model.Policy{{ID: "p1"}}},
			want: true,
		},
		{
			name: "ask_clarification with offers",
			resp: AskResponse{Action: ActionAskClarification, Policies: []model.Policy{{ID: "p1"}}},
			want: true,
		},
		{
			name: "clarification action without offers",
			resp: AskResponse{Action: ActionShowPolicies},
			want: false,
		},
		{
			name: "recommendation action",
			resp: AskResponse{Action: ActionRecommendPolicies, Policies: []model.Policy{{ID: "p1"}}},
			want: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.resp.NeedsClarification())
		})
	}
}

func TestAskResponseReplyFallsBackToMessage(t *testing.T) {
	resp := AskResponse{Action: ActionError, Message: "backend is unhappy"}
	assert.Equal(t, "backend is unhappy", resp.Reply())

	resp.Answer = "real answer"
	assert.Equal(t, "real answer", resp.Reply())
}

func TestNonOKStatusBecomesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{"message": "upstream exploded"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.ListChats(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "upstream exploded", apiErr.Message)
}

func TestGetChatEscapesID(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		json.NewEncoder(w).Encode(ChatSession{ID: "weird/id"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	session, err := client.GetChat(context.Background(), "weird/id")
	require.NoError(t, err)

	assert.Equal(t, "/history/chats/weird%2Fid", gotPath)
	assert.Equal(t, "weird/id", session.ID)
}

func TestSearchPoliciesQueryEncoding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "family floater", r.URL.Query().Get("q"))
		json.NewEncoder(w).Encode([]model.Policy{{ID: "p1", Name: "Family First"}})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	policies, err := client.SearchPolicies(context.Background(), "family floater")
	require.NoError(t, err)
	require.Len(t, policies, 1)
	assert.Equal(t, "Family First", policies[0].Name)
}

func TestCrucialTermsPostsPolicyID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "pol-3", req["policy_id"])

		json.NewEncoder(w).Encode([]model.ImportantTerm{
			{Term: "Waiting Period", Description: "30 days", UserMustKnow: "No claims in the first month."},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	terms, err := client.CrucialTerms(context.Background(), "pol-3")
	require.NoError(t, err)
	require.Len(t, terms, 1)
	assert.Equal(t, "Waiting Period", terms[0].Term)
}
