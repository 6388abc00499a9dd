// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the HTTP client for the policy-assistant backend.
//
// The backend owns every non-trivial decision: natural-language
// understanding, policy matching, metric computation, and session storage.
// This client is a thin JSON transport with no retries and no caching;
// failures surface as errors for the orchestrator to translate into
// transcript content.
package api
