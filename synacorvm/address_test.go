package synacorvm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLiteral(t *testing.T) {
	m := New()
	for _, v := range []Word{0, 1, 32767} {
		got, err := m.resolve(v)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestResolveRegister(t *testing.T) {
	m := New()
	m.regs[3] = 42
	got, err := m.resolve(Word(FirstRegister + 3))
	require.NoError(t, err)
	assert.Equal(t, Word(42), got)
}

func TestResolveInvalidValue(t *testing.T) {
	m := New()
	_, err := m.resolve(Word(MaxValue))
	var target *InvalidValueError
	assert.ErrorAs(t, err, &target)
}

func TestWriteRefRequiresRegister(t *testing.T) {
	m := New()
	_, err := m.writeRef(5)
	var target *InvalidRegisterError
	assert.ErrorAs(t, err, &target)

	ref, err := m.writeRef(Word(FirstRegister + 1))
	require.NoError(t, err)
	*ref = 99
	assert.Equal(t, Word(99), m.regs[1])
}
