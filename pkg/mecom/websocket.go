// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The mecom-go Authors

package mecom

import (
	"bytes"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocketConfig carries the optional settings for a bridge connection.
type WebSocketConfig struct {
	Username      string
	Password      string
	SkipTLSVerify bool
	ReadTimeout   time.Duration
}

// WebSocketTransport talks to a device behind a serial-to-WebSocket
// bridge. Frames ride in binary messages; a single message may carry
// several CR terminated lines or a fraction of one.
type WebSocketTransport struct {
	conn        *websocket.Conn
	buf         []byte
	readTimeout time.Duration
}

// OpenWebSocket dials a ws:// or wss:// bridge.
func OpenWebSocket(wsURL string, cfg WebSocketConfig) (*WebSocketTransport, error) {
	u, err := url.Parse(wsURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return nil, fmt.Errorf("unsupported scheme %q, want ws or wss", u.Scheme)
	}

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	if u.Scheme == "wss" && cfg.SkipTLSVerify {
		dialer.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	header := http.Header{}
	if cfg.Username != "" || cfg.Password != "" {
		auth := base64.StdEncoding.EncodeToString([]byte(cfg.Username + ":" + cfg.Password))
		header.Set("Authorization", "Basic "+auth)
	}

	conn, _, err := dialer.Dial(wsURL, header)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", wsURL, err)
	}

	readTimeout := cfg.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = DefaultReadTimeout
	}
	return &WebSocketTransport{conn: conn, readTimeout: readTimeout}, nil
}

// Send writes the frame as a single binary message.
func (t *WebSocketTransport) Send(frame []byte) error {
	return t.conn.WriteMessage(websocket.BinaryMessage, frame)
}

// ReceiveLine returns the next CR terminated line, reading further
// messages from the bridge as needed.
func (t *WebSocketTransport) ReceiveLine() ([]byte, error) {
	for {
		if i := bytes.IndexByte(t.buf, '\r'); i >= 0 {
			line := append([]byte(nil), t.buf[:i]...)
			t.buf = t.buf[i+1:]
			return line, nil
		}

		if err := t.conn.SetReadDeadline(time.Now().Add(t.readTimeout)); err != nil {
			return nil, err
		}
		_, msg, err := t.conn.ReadMessage()
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				return nil, ErrTimeout
			}
			return nil, err
		}
		t.buf = append(t.buf, msg...)
	}
}

// Close closes the WebSocket connection.
func (t *WebSocketTransport) Close() error {
	return t.conn.Close()
}
