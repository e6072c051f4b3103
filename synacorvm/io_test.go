package synacorvm

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineReaderDrainsLineBeforeRefilling(t *testing.T) {
	var lr lineReader
	src := bufio.NewReader(strings.NewReader("ab\ncd"))

	var got []byte
	for i := 0; i < 3; i++ {
		b, ok, err := lr.nextByte(src)
		require.NoError(t, err)
		require.True(t, ok)
		got = append(got, b)
	}
	assert.Equal(t, []byte("ab\n"), got)

	b, ok, err := lr.nextByte(src)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, byte('c'), b)
}

func TestLineReaderSuspendsOnEmptySource(t *testing.T) {
	var lr lineReader
	src := bufio.NewReader(strings.NewReader(""))

	_, ok, err := lr.nextByte(src)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLineReaderSnapshotBytesRoundTrip(t *testing.T) {
	var lr lineReader
	lr.setBytes([]byte("xy"))
	assert.Equal(t, []byte("xy"), lr.bytes())
}
