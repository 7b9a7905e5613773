package domain

import (
	"encoding/json"
	"fmt"
)

// Slate is the in-progress transaction payload exchanged between wallet
// participants before finalization. The transport layer carries, frames
// and serializes it but never interprets its contents; construction and
// validation belong to the transaction-negotiation layer.
type Slate []byte

// NewSlate validates b as JSON and wraps it.
func NewSlate(b []byte) (Slate, error) {
	if !json.Valid(b) {
		return nil, fmt.Errorf("%w: slate is not valid JSON", ErrEncoding)
	}
	return Slate(append([]byte(nil), b...)), nil
}

// MarshalJSON emits the raw slate bytes unchanged.
func (s Slate) MarshalJSON() ([]byte, error) {
	if len(s) == 0 {
		return []byte("null"), nil
	}
	return s, nil
}

// UnmarshalJSON stores the raw bytes unchanged.
func (s *Slate) UnmarshalJSON(data []byte) error {
	*s = append((*s)[:0], data...)
	return nil
}
