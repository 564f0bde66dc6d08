package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHexRoundTrip(t *testing.T) {
	b, err := FromHex("0xdeadbeef")
	assert.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, b)
	assert.Equal(t, "deadbeef", ToHex(b))

	b, err = FromHex("00ff")
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xff}, b)

	_, err = FromHex("abc")
	assert.Error(t, err)
	_, err = FromHex("zz")
	assert.Error(t, err)
}

func TestFileExist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	assert.False(t, FileExist(path))
	assert.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	assert.True(t, FileExist(path))
}
