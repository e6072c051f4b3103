package synacorvm

// Opcode identifies one of the 22 Synacor-architecture instructions.
type Opcode int

const (
	OpHalt Opcode = iota
	OpSet
	OpPush
	OpPop
	OpEq
	OpGt
	OpJmp
	OpJt
	OpJf
	OpAdd
	OpMult
	OpMod
	OpAnd
	OpOr
	OpNot
	OpRmem
	OpWmem
	OpCall
	OpRet
	OpOut
	OpIn
	OpNoop
)

var opcodeNames = map[Opcode]string{
	OpHalt: "halt",
	OpSet:  "set",
	OpPush: "push",
	OpPop:  "pop",
	OpEq:   "eq",
	OpGt:   "gt",
	OpJmp:  "jmp",
	OpJt:   "jt",
	OpJf:   "jf",
	OpAdd:  "add",
	OpMult: "mult",
	OpMod:  "mod",
	OpAnd:  "and",
	OpOr:   "or",
	OpNot:  "not",
	OpRmem: "rmem",
	OpWmem: "wmem",
	OpCall: "call",
	OpRet:  "ret",
	OpOut:  "out",
	OpIn:   "in",
	OpNoop: "noop",
}

// String returns the opcode's mnemonic, or "unknown" if out of range.
func (op Opcode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return "unknown"
}

// arity is the number of operand words each opcode consumes, indexed by
// Opcode. It mirrors spec.md §4.2's instruction table exactly.
var arity = [...]int{
	OpHalt: 0,
	OpSet:  2,
	OpPush: 1,
	OpPop:  1,
	OpEq:   3,
	OpGt:   3,
	OpJmp:  1,
	OpJt:   2,
	OpJf:   2,
	OpAdd:  3,
	OpMult: 3,
	OpMod:  3,
	OpAnd:  3,
	OpOr:   3,
	OpNot:  2,
	OpRmem: 2,
	OpWmem: 2,
	OpCall: 1,
	OpRet:  0,
	OpOut:  1,
	OpIn:   1,
	OpNoop: 0,
}

// Instruction is a decoded instruction: an opcode plus its operand words,
// taken positionally as described in spec.md §4.2's per-opcode table.
type Instruction struct {
	Op   Opcode
	Args [3]Word
}

// NumWords returns 1 (for the opcode word) plus the instruction's arity.
func (instr Instruction) NumWords() int {
	return 1 + arity[instr.Op]
}

// Decode reads one instruction from the start of words. It returns the
// decoded instruction and the number of words consumed (equal to
// Instruction.NumWords()). Decode is pure: it has no access to and makes
// no assumption about Machine state.
func Decode(words []Word) (Instruction, int, error) {
	if len(words) < 1 {
		return Instruction{}, 0, &EndOfBufferError{}
	}

	opWord := words[0]
	if int(opWord) >= len(arity) {
		return Instruction{}, 0, &InvalidOpcodeError{Opcode: opWord}
	}
	op := Opcode(opWord)

	n := arity[op]
	if len(words) < 1+n {
		return Instruction{}, 0, &EndOfBufferError{}
	}

	var instr Instruction
	instr.Op = op
	for i := 0; i < n; i++ {
		instr.Args[i] = words[1+i]
	}
	return instr, instr.NumWords(), nil
}
