package adapters

import (
	"crypto/sha256"
	"encoding/base32"
	"fmt"
	"io"
	"strings"

	"emberwallet/internal/domain"
)

// Armor frames and alphabet. The 32-symbol set omits characters that
// are easy to mistranscribe (0/O, 1/l/I).
const (
	armorHeader = "BEGINSLATE."
	armorFooter = ".ENDSLATE."

	armorAlphabet = "abcdefghijkmnpqrstuvwxyz23456789"

	// armorWordLen groups the symbol stream into words a human can read
	// aloud or retype without losing their place.
	armorWordLen = 15

	armorChecksumBytes = 4
)

var armorEncoding = base32.NewEncoding(armorAlphabet).WithPadding(base32.NoPadding)

// Armor encodes a slate into the fixed-alphabet text form used for
// manual out-of-band exchange. A 4-byte double-SHA-256 checksum is
// prepended so transcription errors are caught before the slate reaches
// the negotiation layer.
func Armor(slate domain.Slate) (string, error) {
	if len(slate) == 0 {
		return "", fmt.Errorf("%w: cannot armor an empty slate", domain.ErrEncoding)
	}

	payload := make([]byte, 0, armorChecksumBytes+len(slate))
	payload = append(payload, armorChecksum(slate)...)
	payload = append(payload, slate...)

	encoded := armorEncoding.EncodeToString(payload)

	var b strings.Builder
	b.WriteString(armorHeader)
	for i := 0; i < len(encoded); i += armorWordLen {
		end := i + armorWordLen
		if end > len(encoded) {
			end = len(encoded)
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(encoded[i:end])
	}
	b.WriteString(armorFooter)
	return b.String(), nil
}

// Unarmor decodes armored text back to the exact slate bytes. Any
// symbol outside the alphabet, a damaged frame, or a checksum mismatch
// is an encoding failure.
func Unarmor(text string) (domain.Slate, error) {
	text = strings.TrimSpace(text)
	start := strings.Index(text, armorHeader)
	end := strings.LastIndex(text, armorFooter)
	if start < 0 || end < 0 || end <= start {
		return nil, fmt.Errorf("%w: armor frame markers missing", domain.ErrEncoding)
	}
	body := text[start+len(armorHeader) : end]

	// Whitespace is layout, not content.
	body = strings.Join(strings.Fields(body), "")

	payload, err := armorEncoding.DecodeString(body)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid armor symbol", domain.ErrEncoding)
	}
	if len(payload) <= armorChecksumBytes {
		return nil, fmt.Errorf("%w: armored slate too short", domain.ErrEncoding)
	}

	check, raw := payload[:armorChecksumBytes], payload[armorChecksumBytes:]
	if string(check) != string(armorChecksum(raw)) {
		return nil, fmt.Errorf("%w: armor checksum mismatch", domain.ErrEncoding)
	}

	slate, err := domain.NewSlate(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: armored payload is not a valid slate", domain.ErrEncoding)
	}
	return slate, nil
}

func armorChecksum(b []byte) []byte {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return second[:armorChecksumBytes]
}

// ArmoredSlate reads and writes armored slates on a passive text
// medium, typically stdin/stdout for copy/paste relay.
type ArmoredSlate struct {
	In  io.Reader
	Out io.Writer
}

var (
	_ domain.SlatePutter = ArmoredSlate{}
	_ domain.SlateGetter = ArmoredSlate{}
)

// PutTx armors the slate and writes it to Out.
func (a ArmoredSlate) PutTx(slate domain.Slate) error {
	text, err := Armor(slate)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(a.Out, text+"\n"); err != nil {
		return fmt.Errorf("%w: writing armored slate: %v", domain.ErrIO, err)
	}
	return nil
}

// GetTx reads armored text from In and decodes it.
func (a ArmoredSlate) GetTx() (domain.Slate, error) {
	raw, err := io.ReadAll(a.In)
	if err != nil {
		return nil, fmt.Errorf("%w: reading armored slate: %v", domain.ErrIO, err)
	}
	return Unarmor(string(raw))
}
