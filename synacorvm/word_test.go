package synacorvm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytesToWordsLittleEndian(t *testing.T) {
	words, err := BytesToWords([]byte{0x01, 0x00, 0xff, 0x7f})
	require.NoError(t, err)
	assert.Equal(t, []Word{1, 0x7fff}, words)
}

func TestBytesToWordsOddLength(t *testing.T) {
	_, err := BytesToWords([]byte{0x01})
	assert.Error(t, err)
}

func TestWordsToBytesRoundTrip(t *testing.T) {
	words := []Word{9, 32768, 65535, 0}
	b := WordsToBytes(words)
	back, err := BytesToWords(b)
	require.NoError(t, err)
	assert.Equal(t, words, back)
}
