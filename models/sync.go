// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrMalformedState is returned by [DecodeSyncedState] when the payload is
	// not a JSON object or one of its fields has the wrong shape.
	ErrMalformedState = errors.New("malformed synced state")

	// ErrLikedItemWithoutID is returned by [DecodeSyncedState] when a liked
	// item carries an empty id. Such an item could never be deduplicated.
	ErrLikedItemWithoutID = errors.New("liked item without id")
)

// LikedItem is a single liked image. Identity is ID; every other field is
// payload that travels with the first occurrence of the item.
type LikedItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	ImageURL    string `json:"image_url"`
	Link        string `json:"link"`
	Description string `json:"description,omitempty"`
	ArtistName  string `json:"artist_name,omitempty"`
	MediaSource string `json:"media_source,omitempty"`
	CategoryID  string `json:"category_id,omitempty"`
}

// SyncedState is the snapshot exchanged between devices and the server.
//
// Favourites maps a media source identifier to the set of category
// identifiers marked as favourite for that source. The slice has set
// semantics: order carries no meaning and values are unique.
//
// LikedImages is ordered by first appearance and unique by [LikedItem.ID].
type SyncedState struct {
	Favourites  map[string][]string `json:"favourites"`
	LikedImages []LikedItem         `json:"likedImages"`
}

// NewSyncedState returns an empty state with non-nil collections, so it
// encodes as {"favourites":{},"likedImages":[]}.
func NewSyncedState() SyncedState {
	return SyncedState{
		Favourites:  make(map[string][]string),
		LikedImages: make([]LikedItem, 0),
	}
}

// Normalized returns s with nil collections replaced by empty ones.
func (s SyncedState) Normalized() SyncedState {
	if s.Favourites == nil {
		s.Favourites = make(map[string][]string)
	}
	if s.LikedImages == nil {
		s.LikedImages = make([]LikedItem, 0)
	}
	return s
}

// Clone returns a deep copy of s.
func (s SyncedState) Clone() SyncedState {
	out := SyncedState{
		Favourites:  make(map[string][]string, len(s.Favourites)),
		LikedImages: make([]LikedItem, len(s.LikedImages)),
	}
	for source, categories := range s.Favourites {
		out.Favourites[source] = append([]string(nil), categories...)
	}
	copy(out.LikedImages, s.LikedImages)
	return out
}

// Encode serializes the state into its wire form.
func (s SyncedState) Encode() ([]byte, error) {
	return json.Marshal(s.Normalized())
}

// DecodeSyncedState parses a wire message into a state fragment.
//
// The payload must be a JSON object. Missing collections are treated as
// empty; collections of the wrong type and liked items without an id make
// the whole payload malformed.
func DecodeSyncedState(payload []byte) (SyncedState, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return SyncedState{}, fmt.Errorf("%w: payload is not a JSON object", ErrMalformedState)
	}

	var state SyncedState
	if err := json.Unmarshal(trimmed, &state); err != nil {
		return SyncedState{}, fmt.Errorf("%w: %w", ErrMalformedState, err)
	}

	for i, item := range state.LikedImages {
		if item.ID == "" {
			return SyncedState{}, fmt.Errorf("%w: likedImages[%d]", ErrLikedItemWithoutID, i)
		}
	}

	return state.Normalized(), nil
}

// StoredState is the durable record kept for one identity.
type StoredState struct {
	Token     string
	State     SyncedState
	UpdatedAt time.Time
}
