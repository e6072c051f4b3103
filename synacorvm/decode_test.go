package synacorvm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeArityMatchesNumWords(t *testing.T) {
	cases := []struct {
		op    Opcode
		words []Word
		n     int
	}{
		{OpHalt, []Word{0}, 1},
		{OpSet, []Word{1, 32768, 5}, 3},
		{OpPush, []Word{2, 5}, 2},
		{OpPop, []Word{3, 32768}, 2},
		{OpEq, []Word{4, 32768, 1, 2}, 4},
		{OpGt, []Word{5, 32768, 1, 2}, 4},
		{OpJmp, []Word{6, 0}, 2},
		{OpJt, []Word{7, 1, 0}, 3},
		{OpJf, []Word{8, 1, 0}, 3},
		{OpAdd, []Word{9, 32768, 1, 2}, 4},
		{OpMult, []Word{10, 32768, 1, 2}, 4},
		{OpMod, []Word{11, 32768, 1, 2}, 4},
		{OpAnd, []Word{12, 32768, 1, 2}, 4},
		{OpOr, []Word{13, 32768, 1, 2}, 4},
		{OpNot, []Word{14, 32768, 1}, 3},
		{OpRmem, []Word{15, 32768, 100}, 3},
		{OpWmem, []Word{16, 100, 1}, 3},
		{OpCall, []Word{17, 0}, 2},
		{OpRet, []Word{18}, 1},
		{OpOut, []Word{19, 65}, 2},
		{OpIn, []Word{20, 32768}, 2},
		{OpNoop, []Word{21}, 1},
	}

	for _, c := range cases {
		instr, n, err := Decode(c.words)
		require.NoError(t, err, c.op.String())
		assert.Equal(t, c.op, instr.Op)
		assert.Equal(t, c.n, n)
		assert.Equal(t, c.n, instr.NumWords())
	}
}

func TestDecodeInvalidOpcode(t *testing.T) {
	_, _, err := Decode([]Word{22})
	var target *InvalidOpcodeError
	assert.ErrorAs(t, err, &target)
	assert.Equal(t, Word(22), target.Opcode)
}

func TestDecodeEndOfBuffer(t *testing.T) {
	_, _, err := Decode([]Word{9, 32768})
	var target *EndOfBufferError
	assert.ErrorAs(t, err, &target)
}

func TestDecodeEmptySlice(t *testing.T) {
	_, _, err := Decode(nil)
	var target *EndOfBufferError
	assert.ErrorAs(t, err, &target)
}
