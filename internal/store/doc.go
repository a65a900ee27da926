// Reelpick - Telegram Movie Recommendation Bot
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

// Package store implements Reelpick's durable state: the movie store
// (every movie ever fetched from the catalog, deduplicated by id) and the
// recommendation ledger (which movies have been shown to which users).
//
// Both collections are JSON files rewritten wholesale after every mutating
// operation. The write is not transactional and not crash-safe mid-write;
// a failed write leaves the in-memory state ahead of the durable state,
// which is logged loudly and counted but never surfaced to the user.
// A single active process is assumed - there is no cross-process locking.
//
// Load is self-healing: a missing or unreadable file initializes an empty
// collection and persists it immediately rather than failing startup.
package store
