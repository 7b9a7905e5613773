package domain

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// WalletAddress is the wallet's stable public identity key (ed25519),
// independent of network location. It routes slates to the correct peer
// over the relay and is immutable once derived from the keychain.
type WalletAddress [AddressBytes]byte

// ParseAddress decodes a 64-character hex wallet address.
func ParseAddress(s string) (WalletAddress, error) {
	var a WalletAddress
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != AddressBytes {
		return a, fmt.Errorf("%w: wallet address must be %d hex-encoded bytes", ErrEncoding, AddressBytes)
	}
	copy(a[:], raw)
	return a, nil
}

// IsAddress reports whether s parses as a wallet address.
func IsAddress(s string) bool {
	_, err := ParseAddress(s)
	return err == nil
}

func (a WalletAddress) String() string { return hex.EncodeToString(a[:]) }

// MarshalJSON encodes the address as a hex string.
func (a WalletAddress) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON mirrors MarshalJSON.
func (a *WalletAddress) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: wallet address is not a JSON string", ErrEncoding)
	}
	parsed, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
