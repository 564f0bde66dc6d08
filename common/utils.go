// Package common provides small shared helpers used across packages.
package common

import (
	"encoding/hex"
	"errors"
	"os"
	"strings"
)

// FileExist reports whether the path names an existing file.
func FileExist(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}

// FromHex decodes a hex string, with or without a 0x prefix.
func FromHex(str string) ([]byte, error) {
	s := strings.TrimPrefix(str, "0x")
	if len(s)%2 != 0 {
		return nil, errors.New("hex string of odd length: " + str)
	}
	return hex.DecodeString(s)
}

// ToHex encodes bytes to a plain lowercase hex string.
func ToHex(b []byte) string {
	return hex.EncodeToString(b)
}
