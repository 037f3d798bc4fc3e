// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"

	"github.com/coder/websocket"
)

// wsSession implements service.Session on top of one WebSocket connection.
type wsSession struct {
	id    string
	token string
	conn  *websocket.Conn
}

func newWSSession(id, token string, conn *websocket.Conn) *wsSession {
	return &wsSession{id: id, token: token, conn: conn}
}

func (s *wsSession) ID() string {
	return s.id
}

func (s *wsSession) Token() string {
	return s.token
}

func (s *wsSession) Send(ctx context.Context, payload []byte) error {
	return s.conn.Write(ctx, websocket.MessageText, payload)
}

// Close ends the connection with 1001 going away.
func (s *wsSession) Close(reason string) error {
	return s.conn.Close(websocket.StatusGoingAway, reason)
}
