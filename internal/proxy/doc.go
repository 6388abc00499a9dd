// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package proxy implements the API passthrough server behind `polichat serve`.
//
// The proxy forwards each route verbatim (method, query, JSON body) to the
// configured backend origin and relays the response. It never transforms
// payloads, never caches, and never retries. Failures are normalized to two
// envelopes: backend non-2xx responses keep their status with
// {"message": ...}, transport failures become 500 with
// {"message": ..., "details": ...}.
package proxy
