// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// TokenResponse is returned by the token generation endpoint.
type TokenResponse struct {
	Token string `json:"token"`
}

// DataSize carries the size counters of a canonical state.
type DataSize struct {
	// Favourites is the number of media sources with at least one entry.
	Favourites int `json:"favourites"`

	// LikedImages is the length of the liked images sequence.
	LikedImages int `json:"likedImages"`
}

// SyncStatus describes one identity without opening a connection to it.
type SyncStatus struct {
	// Connected is the number of live sessions attached to the identity.
	Connected int `json:"connected"`

	// LastUpdated is the time of the last successful persist in unix
	// milliseconds, or nil when the state has never been persisted.
	LastUpdated *int64 `json:"lastUpdated"`

	// DataSize holds size counters of the canonical state.
	DataSize DataSize `json:"dataSize"`
}

// SizeOf returns the size counters of state.
func SizeOf(state SyncedState) DataSize {
	return DataSize{
		Favourites:  len(state.Favourites),
		LikedImages: len(state.LikedImages),
	}
}
