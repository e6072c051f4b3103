package synacorvm

import "fmt"

// Word is a 16-bit value. All VM arithmetic is modulo 32768; Word itself
// carries no such restriction since register/write-target validation is
// done separately in address.go.
type Word uint16

// BytesToWords decodes a little-endian byte sequence into words, pairing
// low byte first and high byte second. b must have even length.
func BytesToWords(b []byte) ([]Word, error) {
	if len(b)%2 != 0 {
		return nil, fmt.Errorf("synacorvm: odd byte length %d, cannot pair into words", len(b))
	}

	words := make([]Word, len(b)/2)
	for i := range words {
		words[i] = Word(b[2*i]) | Word(b[2*i+1])<<8
	}
	return words, nil
}

// WordsToBytes is the symmetric reverse of BytesToWords. Not used by the
// engine itself; exists for round-trip testing and for clients that want
// to re-emit a program (e.g. after patching memory).
func WordsToBytes(words []Word) []byte {
	b := make([]byte, len(words)*2)
	for i, w := range words {
		b[2*i] = byte(w)
		b[2*i+1] = byte(w >> 8)
	}
	return b
}
