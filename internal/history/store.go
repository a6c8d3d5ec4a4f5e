/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package history keeps a linear undo/redo sequence of full state snapshots.
package history

import "sync"

// Config controls depth caps.
type Config struct {
	// MaxEntries limits how many snapshots are kept (0 means unlimited).
	// The oldest entries are pruned first.
	MaxEntries int
}

// Store holds snapshots and a current index. Entries after the index are redo
// states. It is safe for concurrent use.
//
// Every entry is a complete snapshot; memory grows linearly with the number of
// commits, which MaxEntries can bound.
type Store[T any] struct {
	cfg     Config
	mu      sync.Mutex
	entries []T
	index   int
	// pruned counts entries dropped by the cap, for diagnostics
	pruned int
}

// New creates a store whose only entry is initial.
func New[T any](initial T, cfg Config) *Store[T] {
	if cfg.MaxEntries < 0 {
		cfg.MaxEntries = 0
	}
	return &Store[T]{cfg: cfg, entries: []T{initial}}
}

// Commit records s. With overwrite the entry at the current index is replaced
// in place; otherwise redo entries are discarded, s is appended and the index
// advances.
func (h *Store[T]) Commit(s T, overwrite bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.commitLocked(s, overwrite)
}

// CommitFunc is Commit with the new state derived from the current one.
func (h *Store[T]) CommitFunc(fn func(cur T) T, overwrite bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.commitLocked(fn(h.entries[h.index]), overwrite)
}

func (h *Store[T]) commitLocked(s T, overwrite bool) {
	if overwrite {
		h.entries[h.index] = s
		return
	}
	// Any new change invalidates redo
	h.entries = append(h.entries[:h.index+1:h.index+1], s)
	h.index++
	h.enforceCapsLocked()
}

// Undo steps back one entry. It reports false at the oldest entry.
func (h *Store[T]) Undo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.index == 0 {
		return false
	}
	h.index--
	return true
}

// Redo steps forward one entry. It reports false at the newest entry.
func (h *Store[T]) Redo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.index >= len(h.entries)-1 {
		return false
	}
	h.index++
	return true
}

// Current returns the snapshot at the current index.
func (h *Store[T]) Current() T {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.index]
}

func (h *Store[T]) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index > 0
}

func (h *Store[T]) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index < len(h.entries)-1
}

func (h *Store[T]) Index() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index
}

func (h *Store[T]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Reset drops all entries and starts over from initial.
func (h *Store[T]) Reset(initial T) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = []T{initial}
	h.index = 0
}

// Stats returns current sizes for diagnostics.
func (h *Store[T]) Stats() (entries, index, pruned int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries), h.index, h.pruned
}

func (h *Store[T]) enforceCapsLocked() {
	if h.cfg.MaxEntries <= 0 || len(h.entries) <= h.cfg.MaxEntries {
		return
	}
	// drop the oldest extras
	toDrop := len(h.entries) - h.cfg.MaxEntries
	if toDrop > h.index {
		toDrop = h.index
	}
	h.entries = append([]T{}, h.entries[toDrop:]...)
	h.index -= toDrop
	h.pruned += toDrop
}
