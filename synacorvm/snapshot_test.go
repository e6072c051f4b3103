package synacorvm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Snapshotting a machine suspended at `in` and restoring it must continue
// exactly as if the original machine had been resumed directly.
func TestSnapshotRoundTripAcrossSuspension(t *testing.T) {
	prog := []Word{20, 32768, 19, 32768, 0} // in r0; out r0; halt

	m := New()
	require.NoError(t, m.LoadProgram(prog))
	reason, err := m.Run(strings.NewReader(""), &bytes.Buffer{})
	require.NoError(t, err)
	require.Equal(t, NoMoreInput, reason)

	data := m.Serialize()
	restored, err := RestoreMachine(data)
	require.NoError(t, err)

	var out bytes.Buffer
	reason, err = restored.Run(strings.NewReader("Z\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, Halted, reason)
	assert.Equal(t, "Z", out.String())
}

func TestSnapshotPreservesStackAndRegisters(t *testing.T) {
	m := New()
	prog := []Word{
		1, 32768, 7, // set r0, 7
		2, 32768, // push r0
		20, 32769, // in r1 (forces suspension with empty input)
		0,
	}
	require.NoError(t, m.LoadProgram(prog))
	reason, err := m.Run(strings.NewReader(""), &bytes.Buffer{})
	require.NoError(t, err)
	require.Equal(t, NoMoreInput, reason)

	restored, err := RestoreMachine(m.Serialize())
	require.NoError(t, err)
	assert.Equal(t, Word(7), restored.Register(0))
	assert.Equal(t, 1, restored.stack.len())
	assert.Equal(t, m.IP(), restored.IP())
}

func TestRestoreMachineRejectsShortBuffer(t *testing.T) {
	_, err := RestoreMachine([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrSnapshotTooShort)
}

func TestRestoreMachineRejectsBadVersion(t *testing.T) {
	data := New().Serialize()
	data[0] = 99
	_, err := RestoreMachine(data)
	assert.ErrorIs(t, err, ErrSnapshotVersion)
}
