// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "github.com/MKhiriev/bijukaru-sync/models"

// Merge combines the canonical state with an incoming fragment.
//
// Favourites are merged per media source as a set union: categories of
// canonical keep their order and new categories follow in incoming order.
// Liked images keep canonical order and gain every incoming item whose id is
// not yet present. Nothing is ever removed and neither input is modified.
func Merge(canonical, incoming models.SyncedState) models.SyncedState {
	out := models.SyncedState{
		Favourites:  make(map[string][]string, len(canonical.Favourites)+len(incoming.Favourites)),
		LikedImages: make([]models.LikedItem, 0, len(canonical.LikedImages)+len(incoming.LikedImages)),
	}

	for source, categories := range canonical.Favourites {
		out.Favourites[source] = unionInto(nil, categories)
	}
	for source, categories := range incoming.Favourites {
		out.Favourites[source] = unionInto(out.Favourites[source], categories)
	}

	seen := make(map[string]struct{}, cap(out.LikedImages))
	for _, items := range [][]models.LikedItem{canonical.LikedImages, incoming.LikedImages} {
		for _, item := range items {
			if _, ok := seen[item.ID]; ok {
				continue
			}
			seen[item.ID] = struct{}{}
			out.LikedImages = append(out.LikedImages, item)
		}
	}

	return out
}

// unionInto appends the values of add missing from dst. A nil dst with an
// empty add yields an empty non-nil slice.
func unionInto(dst, add []string) []string {
	if dst == nil {
		dst = make([]string, 0, len(add))
	}

	present := make(map[string]struct{}, len(dst)+len(add))
	for _, v := range dst {
		present[v] = struct{}{}
	}
	for _, v := range add {
		if _, ok := present[v]; ok {
			continue
		}
		present[v] = struct{}{}
		dst = append(dst, v)
	}

	return dst
}
