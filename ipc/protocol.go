package ipc

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
)

// MaxEnvelope bounds a single envelope payload.
const MaxEnvelope = 1 << 20

// Envelope is the wire format of the framed transports.
// Data is kept as RawMessage so handlers can defer deserialization to the concrete type.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func NewEnvelope(msgType string, data any) (Envelope, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal data: %w", err)
	}
	return Envelope{Type: msgType, Data: raw}, nil
}

// Decode unmarshals the envelope data into out.
func (e Envelope) Decode(out any) error {
	if err := json.Unmarshal(e.Data, out); err != nil {
		return fmt.Errorf("unmarshal %s: %w", e.Type, err)
	}
	return nil
}

// headerLen is the size of the little-endian payload length in front of
// every framed envelope.
const headerLen = 4

// ReadEnvelope reads one framed envelope. A zero or oversized length means
// the stream lost sync and is reported as ErrProtocol.
func ReadEnvelope(r io.Reader) (Envelope, error) {
	var hdr [headerLen]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return Envelope{}, fmt.Errorf("read length: %w", err)
	}
	n := binary.LittleEndian.Uint32(hdr[:])
	if n == 0 || n > MaxEnvelope {
		return Envelope{}, fmt.Errorf("invalid message length %d: %w", n, ErrProtocol)
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return Envelope{}, fmt.Errorf("read %d-byte payload: %w", n, err)
	}
	return unmarshalEnvelope(payload)
}

func unmarshalEnvelope(payload []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return Envelope{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	return env, nil
}

// WriteEnvelope frames env and writes it with a single Write, so the peer
// never sees a length without its payload. Envelopes the reader would
// reject are refused here.
func WriteEnvelope(w io.Writer, env Envelope) error {
	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal %s envelope: %w", env.Type, err)
	}
	if len(payload) > MaxEnvelope {
		return fmt.Errorf("%s envelope of %d bytes: %w", env.Type, len(payload), ErrProtocol)
	}
	frame := make([]byte, 0, headerLen+len(payload))
	frame = binary.LittleEndian.AppendUint32(frame, uint32(len(payload)))
	frame = append(frame, payload...)
	if _, err := w.Write(frame); err != nil {
		return fmt.Errorf("write %s envelope: %w", env.Type, err)
	}
	return nil
}
