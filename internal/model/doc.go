// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat transcripts, policies,
// and backend value types.
//
// Everything in this package is transient, in-memory state. Durability is
// delegated entirely to the backend service; polichat never writes session
// data to disk.
package model
