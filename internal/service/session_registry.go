// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"sync"

	"github.com/MKhiriev/bijukaru-sync/internal/logger"
)

type sessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]map[string]Session

	logger *logger.Logger
}

func NewSessionRegistry(logger *logger.Logger) SessionRegistry {
	return &sessionRegistry{
		sessions: make(map[string]map[string]Session),
		logger:   logger,
	}
}

func (r *sessionRegistry) Add(s Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	byID, ok := r.sessions[s.Token()]
	if !ok {
		byID = make(map[string]Session)
		r.sessions[s.Token()] = byID
	}
	byID[s.ID()] = s
}

func (r *sessionRegistry) Remove(s Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	byID, ok := r.sessions[s.Token()]
	if !ok {
		return
	}
	delete(byID, s.ID())
	if len(byID) == 0 {
		delete(r.sessions, s.Token())
	}
}

func (r *sessionRegistry) OpenSessions(token string) []Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byID := r.sessions[token]
	out := make([]Session, 0, len(byID))
	for _, s := range byID {
		out = append(out, s)
	}
	return out
}

func (r *sessionRegistry) Count(token string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions[token])
}

func (r *sessionRegistry) CloseAll(reason string) int {
	r.mu.RLock()
	all := make([]Session, 0)
	for _, byID := range r.sessions {
		for _, s := range byID {
			all = append(all, s)
		}
	}
	r.mu.RUnlock()

	for _, s := range all {
		if err := s.Close(reason); err != nil {
			r.logger.Debug().Err(err).Str("session_id", s.ID()).Msg("error closing session")
		}
	}
	return len(all)
}
