package elements

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/holiman/uint256"
)

const unitIDLength = 32

// CompareUnitIDs orders unit identifiers numerically.
func CompareUnitIDs(a, b *uint256.Int) int {
	return a.Cmp(b)
}

// FreeUnitID zeroes the identifier once the tree is done with it.
func FreeUnitID(id *uint256.Int) {
	id.Clear()
}

// ParseUnitID parses a hex encoded identifier of at most 32 bytes, "0x" prefix is optional.
func ParseUnitID(s string) (*uint256.Int, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid unit id %q: %w", s, err)
	}
	if len(b) == 0 {
		return nil, fmt.Errorf("invalid unit id: empty")
	}
	if len(b) > unitIDLength {
		return nil, fmt.Errorf("invalid unit id: %d bytes, max %d", len(b), unitIDLength)
	}
	return new(uint256.Int).SetBytes(b), nil
}

// FormatUnitID returns the identifier as 0x-prefixed 32 byte hex.
func FormatUnitID(id *uint256.Int) string {
	b := id.Bytes32()
	return fmt.Sprintf("0x%X", b[:])
}
