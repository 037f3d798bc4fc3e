// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/bijukaru-sync/models"
)

func liked(ids ...string) []models.LikedItem {
	out := make([]models.LikedItem, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.LikedItem{ID: id, Title: "title " + id})
	}
	return out
}

func likedIDs(items []models.LikedItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name         string
		canonical    models.SyncedState
		incoming     models.SyncedState
		wantFav      map[string][]string
		wantLikedIDs []string
	}{
		{
			name:         "both empty",
			canonical:    models.NewSyncedState(),
			incoming:     models.NewSyncedState(),
			wantFav:      map[string][]string{},
			wantLikedIDs: []string{},
		},
		{
			name:      "favourites union per source keeps canonical order",
			canonical: models.SyncedState{Favourites: map[string][]string{"apod": {"a", "b"}}},
			incoming:  models.SyncedState{Favourites: map[string][]string{"apod": {"c", "a"}, "mars": {"x"}}},
			wantFav: map[string][]string{
				"apod": {"a", "b", "c"},
				"mars": {"x"},
			},
			wantLikedIDs: []string{},
		},
		{
			name:         "duplicate liked id keeps first occurrence",
			canonical:    models.SyncedState{LikedImages: liked("img1", "img2")},
			incoming:     models.SyncedState{LikedImages: liked("img2", "img3", "img1")},
			wantFav:      map[string][]string{},
			wantLikedIDs: []string{"img1", "img2", "img3"},
		},
		{
			name:         "duplicates inside one input collapse",
			canonical:    models.NewSyncedState(),
			incoming:     models.SyncedState{Favourites: map[string][]string{"apod": {"a", "a"}}, LikedImages: liked("img1", "img1")},
			wantFav:      map[string][]string{"apod": {"a"}},
			wantLikedIDs: []string{"img1"},
		},
		{
			name:         "nil collections",
			canonical:    models.SyncedState{},
			incoming:     models.SyncedState{},
			wantFav:      map[string][]string{},
			wantLikedIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.canonical, tt.incoming)

			assert.Equal(t, tt.wantFav, got.Favourites)
			assert.Equal(t, tt.wantLikedIDs, likedIDs(got.LikedImages))
		})
	}
}

func TestMerge_FirstOccurrencePayloadWins(t *testing.T) {
	canonical := models.SyncedState{LikedImages: []models.LikedItem{{ID: "img1", Title: "first"}}}
	incoming := models.SyncedState{LikedImages: []models.LikedItem{{ID: "img1", Title: "second"}}}

	got := Merge(canonical, incoming)

	require.Len(t, got.LikedImages, 1)
	assert.Equal(t, "first", got.LikedImages[0].Title)
}

func TestMerge_Idempotent(t *testing.T) {
	s := models.SyncedState{
		Favourites:  map[string][]string{"apod": {"a", "b"}, "mars": {"x"}},
		LikedImages: liked("img1", "img2"),
	}

	once := Merge(models.NewSyncedState(), s)
	twice := Merge(once, s)

	assert.Equal(t, once, twice)
	assert.Equal(t, once, Merge(once, once))
}

func TestMerge_ResultIsSuperset(t *testing.T) {
	canonical := models.SyncedState{
		Favourites:  map[string][]string{"apod": {"a"}},
		LikedImages: liked("img1"),
	}
	incoming := models.SyncedState{
		Favourites:  map[string][]string{"apod": {"b"}, "mars": {"x"}},
		LikedImages: liked("img2"),
	}

	got := Merge(canonical, incoming)

	for _, in := range []models.SyncedState{canonical, incoming} {
		for source, categories := range in.Favourites {
			assert.Subset(t, got.Favourites[source], categories)
		}
		assert.Subset(t, likedIDs(got.LikedImages), likedIDs(in.LikedImages))
	}
}

func TestMerge_MembershipIndependentOfOrder(t *testing.T) {
	x := models.SyncedState{Favourites: map[string][]string{"apod": {"a", "b"}}, LikedImages: liked("img1")}
	y := models.SyncedState{Favourites: map[string][]string{"apod": {"c"}, "mars": {"m"}}, LikedImages: liked("img2", "img1")}

	xy := Merge(Merge(models.NewSyncedState(), x), y)
	yx := Merge(Merge(models.NewSyncedState(), y), x)

	require.Len(t, xy.Favourites, len(yx.Favourites))
	for source := range xy.Favourites {
		assert.ElementsMatch(t, xy.Favourites[source], yx.Favourites[source])
	}
	assert.ElementsMatch(t, likedIDs(xy.LikedImages), likedIDs(yx.LikedImages))
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	canonical := models.SyncedState{
		Favourites:  map[string][]string{"apod": {"a"}},
		LikedImages: liked("img1"),
	}
	incoming := models.SyncedState{
		Favourites:  map[string][]string{"apod": {"b"}},
		LikedImages: liked("img2"),
	}
	canonicalBefore := canonical.Clone()
	incomingBefore := incoming.Clone()

	got := Merge(canonical, incoming)
	got.Favourites["apod"][0] = "changed"

	assert.Equal(t, canonicalBefore, canonical)
	assert.Equal(t, incomingBefore, incoming)
}
