// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The mecom-go Authors

package mecom

import (
	"errors"
	"math/rand"
	"os"
	"strconv"
	"testing"
	"time"
)

// fakeTransport feeds scripted lines to a codec and records what was
// sent.
type fakeTransport struct {
	sent  [][]byte
	lines [][]byte
	errs  []error
}

func (t *fakeTransport) Send(frame []byte) error {
	t.sent = append(t.sent, append([]byte(nil), frame...))
	return nil
}

func (t *fakeTransport) ReceiveLine() ([]byte, error) {
	if len(t.errs) > 0 {
		err := t.errs[0]
		t.errs = t.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	if len(t.lines) == 0 {
		return nil, ErrTimeout
	}
	line := t.lines[0]
	t.lines = t.lines[1:]
	return line, nil
}

func (t *fakeTransport) Close() error { return nil }

func TestSerialize(t *testing.T) {
	f := Frame{Control: ControlHost, Address: 1, Sequence: 0x00AB, Payload: "?IF01"}
	data := Serialize(f)

	if data[len(data)-1] != '\r' {
		t.Fatalf("frame does not end with CR: %q", data)
	}
	line := string(data[:len(data)-1])
	if want := "#0100AB?IF01"; line[:len(want)] != want {
		t.Errorf("header = %q, want prefix %q", line, want)
	}
	// header (7) + payload (5) + crc (4)
	if len(line) != 16 {
		t.Errorf("frame length = %d, want 16", len(line))
	}
	crc, err := ReadUint16(line[12:])
	if err != nil {
		t.Fatalf("crc field: %v", err)
	}
	if want := CalculateCRC([]byte(line[:12])); crc != want {
		t.Errorf("crc = 0x%04X, want 0x%04X", crc, want)
	}
}

func TestParseDataFrame(t *testing.T) {
	codec := NewFrameCodec(&fakeTransport{}, nil)

	answer := Frame{Control: ControlDevice, Address: 5, Sequence: 0x1234, Payload: "3FC00000"}
	line := Serialize(answer)
	line = line[:len(line)-1] // strip CR

	rx, err := codec.Parse(line)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if rx.Rcv != RcvData {
		t.Errorf("Rcv = %v, want DATA", rx.Rcv)
	}
	if rx.Address != 5 || rx.Sequence != 0x1234 || rx.Payload != "3FC00000" {
		t.Errorf("parsed frame = %+v", rx)
	}
}

func TestParseChecksumMismatch(t *testing.T) {
	codec := NewFrameCodec(&fakeTransport{}, nil)

	answer := Frame{Control: ControlDevice, Address: 5, Sequence: 0x1234, Payload: "3FC00000"}
	line := Serialize(answer)
	line = line[:len(line)-1]
	line[8] ^= 0x01 // corrupt a payload character

	_, err := codec.Parse(line)
	if !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("got %v, want ErrChecksumMismatch", err)
	}
	if codec.stats.CRCErrors != 1 {
		t.Errorf("CRCErrors = %d, want 1", codec.stats.CRCErrors)
	}
}

func TestParseShortFrame(t *testing.T) {
	codec := NewFrameCodec(&fakeTransport{}, nil)
	if _, err := codec.Parse([]byte("!0112")); err == nil {
		t.Error("expected error for short frame")
	}
}

func TestParseACK(t *testing.T) {
	transport := &fakeTransport{}
	codec := NewFrameCodec(transport, nil)

	tx := NewFrame(2)
	tx.Sequence = 0xBEEF
	tx.Payload = "VS03E801000003E8"
	if err := codec.Send(tx); err != nil {
		t.Fatalf("Send: %v", err)
	}

	sent := transport.sent[0]
	sent = sent[:len(sent)-1]
	// The device acknowledges by echoing the request CRC.
	ack := append([]byte("!"), sent[1:7]...)
	ack = append(ack, sent[len(sent)-4:]...)

	rx, err := codec.Parse(ack)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if rx.Rcv != RcvACK {
		t.Errorf("Rcv = %v, want ACK", rx.Rcv)
	}
	// The acknowledge carries the request's address and sequence so
	// it can be validated like a data frame.
	if rx.Address != 2 || rx.Sequence != 0xBEEF {
		t.Errorf("ack frame = %+v, want address 2 sequence 0xBEEF", rx)
	}
}

func TestParseStaleACK(t *testing.T) {
	transport := &fakeTransport{}
	codec := NewFrameCodec(transport, nil)

	tx := NewFrame(2)
	tx.Payload = "RS"
	if err := codec.Send(tx); err != nil {
		t.Fatalf("Send: %v", err)
	}

	// 11 characters but the echoed CRC belongs to some earlier request.
	rx, err := codec.Parse([]byte("!02000100AA"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if rx.Rcv != RcvEmpty {
		t.Errorf("Rcv = %v, want EMPTY for stale acknowledge", rx.Rcv)
	}
}

// getFuzzRounds returns the number of fuzz rounds from FUZZ_ROUNDS env var, default 1000
func getFuzzRounds() int {
	if envRounds := os.Getenv("FUZZ_ROUNDS"); envRounds != "" {
		if rounds, err := strconv.Atoi(envRounds); err == nil && rounds > 0 {
			return rounds
		}
	}
	return 1000
}

// getFuzzSeed returns the seed from FUZZ_SEED env var, or generates one from current time
func getFuzzSeed() int64 {
	if envSeed := os.Getenv("FUZZ_SEED"); envSeed != "" {
		if seed, err := strconv.ParseInt(envSeed, 10, 64); err == nil {
			return seed
		}
	}
	return time.Now().UnixNano()
}

// newFuzzRng creates a new random number generator and logs the seed for reproducibility
func newFuzzRng(t *testing.T) *rand.Rand {
	seed := getFuzzSeed()
	t.Logf("Seed: %d (reproduce with FUZZ_SEED=%d)", seed, seed)
	return rand.New(rand.NewSource(seed))
}

func TestFuzzFrameRoundTrip(t *testing.T) {
	rng := newFuzzRng(t)
	rounds := getFuzzRounds()
	codec := NewFrameCodec(&fakeTransport{}, nil)

	const hexChars = "0123456789ABCDEF"

	for i := 0; i < rounds; i++ {
		payload := make([]byte, 1+rng.Intn(32))
		for j := range payload {
			payload[j] = hexChars[rng.Intn(len(hexChars))]
		}

		f := Frame{
			Control:  ControlDevice,
			Address:  rng.Intn(256),
			Sequence: uint16(rng.Intn(0x10000)),
			Payload:  string(payload),
		}
		line := Serialize(f)
		line = line[:len(line)-1]

		rx, err := codec.Parse(line)
		if err != nil {
			t.Fatalf("round %d: Parse(%q): %v", i, line, err)
		}
		if rx.Rcv != RcvData || rx.Address != f.Address ||
			rx.Sequence != f.Sequence || rx.Payload != f.Payload {
			t.Fatalf("round %d: got %+v, want %+v", i, rx, f)
		}
	}
}
