// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/bijukaru-sync/internal/logger"
	"github.com/MKhiriev/bijukaru-sync/models"
)

var errSendFailed = errors.New("send failed")

// fakeSession records every message it is sent.
type fakeSession struct {
	id    string
	token string

	mu       sync.Mutex
	sent     [][]byte
	sendErr  error
	closed   bool
	closeMsg string
}

func newFakeSession(id, token string) *fakeSession {
	return &fakeSession{id: id, token: token}
}

func (f *fakeSession) ID() string    { return f.id }
func (f *fakeSession) Token() string { return f.token }

func (f *fakeSession) Send(_ context.Context, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, append([]byte(nil), payload...))
	return nil
}

func (f *fakeSession) Close(reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true
	f.closeMsg = reason
	return nil
}

func (f *fakeSession) failSends() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sendErr = errSendFailed
}

func (f *fakeSession) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

// last decodes the most recent message sent to the session.
func (f *fakeSession) last(t *testing.T) models.SyncedState {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()

	require.NotEmpty(t, f.sent, "session %s received nothing", f.id)
	state, err := models.DecodeSyncedState(f.sent[len(f.sent)-1])
	require.NoError(t, err)
	return state
}

func TestSessionRegistry_AddRemove(t *testing.T) {
	r := NewSessionRegistry(logger.Nop())

	a := newFakeSession("a", "TOKEN001")
	b := newFakeSession("b", "TOKEN001")
	c := newFakeSession("c", "TOKEN002")

	r.Add(a)
	r.Add(b)
	r.Add(c)
	r.Add(a)

	assert.Equal(t, 2, r.Count("TOKEN001"))
	assert.Equal(t, 1, r.Count("TOKEN002"))
	assert.ElementsMatch(t, []Session{a, b}, r.OpenSessions("TOKEN001"))

	r.Remove(a)
	r.Remove(a)
	assert.Equal(t, 1, r.Count("TOKEN001"))

	r.Remove(b)
	assert.Equal(t, 0, r.Count("TOKEN001"))
	assert.Empty(t, r.OpenSessions("TOKEN001"))
	assert.Empty(t, r.OpenSessions("UNKNOWN1"))
}

func TestSessionRegistry_CloseAll(t *testing.T) {
	r := NewSessionRegistry(logger.Nop())

	a := newFakeSession("a", "TOKEN001")
	b := newFakeSession("b", "TOKEN002")
	r.Add(a)
	r.Add(b)

	n := r.CloseAll("server shutting down")

	assert.Equal(t, 2, n)
	for _, s := range []*fakeSession{a, b} {
		assert.True(t, s.closed)
		assert.Equal(t, "server shutting down", s.closeMsg)
	}
}

func TestSessionRegistry_Concurrent(t *testing.T) {
	r := NewSessionRegistry(logger.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := newFakeSession(string(rune('A'+i%26))+string(rune('0'+i/26)), "TOKEN001")
			r.Add(s)
			_ = r.OpenSessions("TOKEN001")
			r.Remove(s)
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, r.Count("TOKEN001"))
}
