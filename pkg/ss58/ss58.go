// Package ss58 encodes and decodes Substrate SS58 account addresses.
package ss58

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/btcsuite/btcutil/base58"
	"golang.org/x/crypto/blake2b"
)

const (
	AccountIDLen = 32
	checksumLen  = 2
	maxPrefix    = 16383
)

var (
	ErrInvalidAddress = errors.New("invalid ss58 address")
	checksumPreimage  = []byte("SS58PRE")
)

// Decode returns the network prefix and the 32 byte account id of addr.
func Decode(addr string) (uint16, []byte, error) {
	raw := base58.Decode(addr)
	if len(raw) == 0 {
		return 0, nil, fmt.Errorf("%w: %q is not base58", ErrInvalidAddress, addr)
	}

	var prefix uint16
	var prefixLen int
	switch {
	case raw[0] < 64:
		prefix, prefixLen = uint16(raw[0]), 1
	case raw[0] < 128:
		if len(raw) < 2 {
			return 0, nil, fmt.Errorf("%w: %q too short", ErrInvalidAddress, addr)
		}
		lower := (raw[0] << 2) | (raw[1] >> 6)
		upper := raw[1] & 0b0011_1111
		prefix, prefixLen = uint16(lower)|uint16(upper)<<8, 2
	default:
		return 0, nil, fmt.Errorf("%w: %q has reserved prefix", ErrInvalidAddress, addr)
	}

	if len(raw) != prefixLen+AccountIDLen+checksumLen {
		return 0, nil, fmt.Errorf("%w: %q has length %d", ErrInvalidAddress, addr, len(raw))
	}
	body := raw[:prefixLen+AccountIDLen]
	if !bytes.Equal(checksum(body), raw[prefixLen+AccountIDLen:]) {
		return 0, nil, fmt.Errorf("%w: %q checksum mismatch", ErrInvalidAddress, addr)
	}
	return prefix, append([]byte(nil), raw[prefixLen:prefixLen+AccountIDLen]...), nil
}

// Encode renders a 32 byte account id under the given network prefix.
func Encode(prefix uint16, accountID []byte) (string, error) {
	if len(accountID) != AccountIDLen {
		return "", fmt.Errorf("%w: account id has length %d", ErrInvalidAddress, len(accountID))
	}
	if prefix > maxPrefix {
		return "", fmt.Errorf("%w: prefix %d out of range", ErrInvalidAddress, prefix)
	}

	var body []byte
	if prefix < 64 {
		body = append(body, byte(prefix))
	} else {
		first := byte((prefix&0b0000_0000_1111_1100)>>2) | 0b0100_0000
		second := byte(prefix>>8) | byte((prefix&0b0000_0000_0000_0011)<<6)
		body = append(body, first, second)
	}
	body = append(body, accountID...)
	return base58.Encode(append(body, checksum(body)...)), nil
}

// Valid reports whether addr decodes to an account id.
func Valid(addr string) bool {
	_, _, err := Decode(addr)
	return err == nil
}

func checksum(body []byte) []byte {
	h, _ := blake2b.New512(nil)
	h.Write(checksumPreimage)
	h.Write(body)
	return h.Sum(nil)[:checksumLen]
}
