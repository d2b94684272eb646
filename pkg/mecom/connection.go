// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The mecom-go Authors

package mecom

import (
	"errors"
	"fmt"
	"math/rand"
)

// attemptCount is how many times a request is sent before the
// transaction is given up.
const attemptCount = 3

// Connection runs transactions over a transport: it sends a request
// frame, waits for the matching answer, and resends on timeout.
type Connection struct {
	codec          *FrameCodec
	transport      Transport
	stats          *Statistics
	sequence       uint16
	isReady        bool
	defaultAddress int
	strict         bool
}

// Option configures a Connection.
type Option func(*Connection)

// WithDefaultAddress sets the address substituted into frames that
// carry AddressDefault.
func WithDefaultAddress(address int) Option {
	return func(c *Connection) { c.defaultAddress = address }
}

// WithStrictValidation makes the connection verify that answers carry
// the expected sequence number and address, retrying on mismatch.
func WithStrictValidation() Option {
	return func(c *Connection) { c.strict = true }
}

// NewConnection wraps a transport. The sequence number starts at a
// random value so restarted hosts do not collide with stale acknowledge
// frames.
func NewConnection(t Transport, opts ...Option) *Connection {
	c := &Connection{
		transport:      t,
		stats:          NewStatistics(),
		sequence:       uint16(rand.Intn(0x10000)),
		isReady:        true,
		defaultAddress: 1,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.codec = NewFrameCodec(t, c.stats)
	return c
}

// Stats returns the connection's transaction statistics.
func (c *Connection) Stats() *Statistics { return c.stats }

// DefaultAddress returns the address substituted into frames that carry
// AddressDefault.
func (c *Connection) DefaultAddress() int { return c.defaultAddress }

// SetDefaultAddress changes the default device address.
func (c *Connection) SetDefaultAddress(address int) { c.defaultAddress = address }

// IsReady reports whether the last transaction left the interface
// usable.
func (c *Connection) IsReady() bool { return c.isReady }

// SetReady clears or sets the ready flag, for recovering after a
// communication error.
func (c *Connection) SetReady(ready bool) { c.isReady = ready }

// CheckIfConnected reports whether the connection is open and ready.
func (c *Connection) CheckIfConnected() bool {
	return c.transport != nil && c.isReady
}

// Close closes the underlying transport.
func (c *Connection) Close() error {
	if c.transport == nil {
		return nil
	}
	err := c.transport.Close()
	c.transport = nil
	c.isReady = false
	return err
}

// Query sends a request and returns the device's data answer.
func (c *Connection) Query(tx Frame) (Frame, error) {
	return c.transact("query", tx)
}

// Set sends a request that the device answers with a bare acknowledge.
func (c *Connection) Set(tx Frame) (Frame, error) {
	return c.transact("set", tx)
}

func (c *Connection) transact(op string, tx Frame) (Frame, error) {
	if c.transport == nil {
		return Frame{}, ErrNotConnected
	}
	if tx.Control == 0 {
		tx.Control = ControlHost
	}
	if tx.Address == AddressDefault {
		tx.Address = c.defaultAddress
	}
	c.sequence++
	tx.Sequence = c.sequence

	var rx Frame
	for trialsLeft := attemptCount; trialsLeft > 0; trialsLeft-- {
		if trialsLeft < attemptCount {
			c.stats.Retries++
		}
		if err := c.codec.Send(tx); err != nil {
			c.isReady = false
			return rx, &CommunicationError{Op: op, Err: err}
		}
		if tx.Address == AddressBroadcast {
			// Devices never answer a broadcast.
			return Frame{Address: AddressDefault}, nil
		}

		var err error
		rx, err = c.codec.Receive()
		if err != nil {
			if errors.Is(err, ErrTimeout) {
				c.stats.Timeouts++
				if trialsLeft > 1 {
					continue
				}
			}
			c.isReady = false
			return rx, &CommunicationError{Op: op, Err: err}
		}

		if rx.Rcv == RcvData && len(rx.Payload) > 0 && rx.Payload[0] == '+' {
			c.stats.ServerErrors++
			return rx, serverError(rx.Payload)
		}
		if c.strict && !matches(op, tx, rx) {
			continue
		}
		return rx, nil
	}

	c.isReady = false
	return rx, &CommunicationError{Op: op, Err: mismatch(op, tx, rx)}
}

func serverError(payload string) error {
	code := -1
	if len(payload) >= 3 {
		if v, err := ReadUint8(payload[1:3]); err == nil {
			code = int(v)
		}
	}
	return &ServerError{Code: code}
}

func matches(op string, tx, rx Frame) bool {
	if op == "query" && rx.Rcv != RcvData {
		return false
	}
	return rx.Sequence == tx.Sequence && rx.Address == tx.Address
}

func mismatch(op string, tx, rx Frame) error {
	if op == "query" && rx.Rcv != RcvData {
		return fmt.Errorf("wrong type of package received: got %s, expected %s", rx.Rcv, RcvData)
	}
	if rx.Sequence != tx.Sequence {
		return fmt.Errorf("sequence mismatch: got %d, expected %d", rx.Sequence, tx.Sequence)
	}
	if rx.Address != tx.Address {
		return fmt.Errorf("address mismatch: got %d, expected %d", rx.Address, tx.Address)
	}
	return errors.New("unknown error")
}
