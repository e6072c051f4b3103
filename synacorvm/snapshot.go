package synacorvm

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// snapshotVersion is incremented whenever the binary layout below changes.
// Grounded on user-none-go-chip-m68k/serialize.go's version-byte
// convention.
const snapshotVersion = 1

// ErrSnapshotTooShort is returned by RestoreMachine when data is too short
// to contain a valid snapshot.
var ErrSnapshotTooShort = errors.New("synacorvm: snapshot buffer too small")

// ErrSnapshotVersion is returned by RestoreMachine when data was written
// by an incompatible snapshot version.
var ErrSnapshotVersion = errors.New("synacorvm: unsupported snapshot version")

// Serialize captures the machine's full state — memory, registers, IP,
// stack, and pending input — as a little-endian binary blob. Round-
// tripping through Serialize/RestoreMachine reproduces bit-identical
// subsequent Run behavior, per spec.md §5's state-persistence guarantee
// and SPEC_FULL.md §4.7.
//
// Layout: 1-byte version, MemSize words, NumRegisters words, 1 word IP,
// a uint16 stack length followed by that many words, a uint16
// pending-input length followed by that many raw bytes. All multi-byte
// fields are little-endian, matching the program binary format itself
// (spec.md §6).
func (m *Machine) Serialize() []byte {
	stackWords := m.stack.words()
	pending := m.input.bytes()

	size := 1 + MemSize*2 + NumRegisters*2 + 2 + 2 + len(stackWords)*2 + 2 + len(pending)
	buf := make([]byte, size)

	buf[0] = snapshotVersion
	off := 1

	for _, w := range m.memory {
		binary.LittleEndian.PutUint16(buf[off:], uint16(w))
		off += 2
	}
	for _, w := range m.regs {
		binary.LittleEndian.PutUint16(buf[off:], uint16(w))
		off += 2
	}
	binary.LittleEndian.PutUint16(buf[off:], uint16(m.ip))
	off += 2

	binary.LittleEndian.PutUint16(buf[off:], uint16(len(stackWords)))
	off += 2
	for _, w := range stackWords {
		binary.LittleEndian.PutUint16(buf[off:], uint16(w))
		off += 2
	}

	binary.LittleEndian.PutUint16(buf[off:], uint16(len(pending)))
	off += 2
	copy(buf[off:], pending)
	off += len(pending)

	return buf[:off]
}

// RestoreMachine reconstructs a Machine from a blob produced by Serialize.
func RestoreMachine(data []byte) (*Machine, error) {
	if len(data) < 1 {
		return nil, ErrSnapshotTooShort
	}
	if data[0] != snapshotVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSnapshotVersion, data[0], snapshotVersion)
	}
	off := 1

	need := func(n int) error {
		if len(data)-off < n {
			return ErrSnapshotTooShort
		}
		return nil
	}

	if err := need(MemSize * 2); err != nil {
		return nil, err
	}
	m := New()
	for i := range m.memory {
		m.memory[i] = Word(binary.LittleEndian.Uint16(data[off:]))
		off += 2
	}

	if err := need(NumRegisters * 2); err != nil {
		return nil, err
	}
	for i := range m.regs {
		m.regs[i] = Word(binary.LittleEndian.Uint16(data[off:]))
		off += 2
	}

	if err := need(2); err != nil {
		return nil, err
	}
	m.ip = Word(binary.LittleEndian.Uint16(data[off:]))
	off += 2

	if err := need(2); err != nil {
		return nil, err
	}
	stackLen := int(binary.LittleEndian.Uint16(data[off:]))
	off += 2
	if err := need(stackLen * 2); err != nil {
		return nil, err
	}
	for i := 0; i < stackLen; i++ {
		m.stack.push(Word(binary.LittleEndian.Uint16(data[off:])))
		off += 2
	}

	if err := need(2); err != nil {
		return nil, err
	}
	pendingLen := int(binary.LittleEndian.Uint16(data[off:]))
	off += 2
	if err := need(pendingLen); err != nil {
		return nil, err
	}
	m.input.setBytes(data[off : off+pendingLen])
	off += pendingLen

	return m, nil
}
