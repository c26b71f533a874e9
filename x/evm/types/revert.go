package types

import (
	"encoding/binary"
	"fmt"
)

// errorSelector is the 4-byte selector of the Solidity built-in
// Error(string) revert reason ABI-encoding.
var errorSelector = [4]byte{0x08, 0xc3, 0x79, 0xa0}

const maxRevertReasonLen = 1024

// DecodeRevertReason recognizes the Solidity Error(string) revert encoding:
// a 4-byte selector, a 32-byte offset word, a 32-byte length word and the
// UTF-8 body (spec.md §4.4 "Revert decoding"). It rejects data shorter than
// 68 bytes or with a mismatched selector, and caps the reported reason at
// 1024 bytes.
func DecodeRevertReason(data []byte) (string, bool) {
	const headerLen = 4 + 32 + 32
	if len(data) < headerLen {
		return "", false
	}
	var sel [4]byte
	copy(sel[:], data[:4])
	if sel != errorSelector {
		return "", false
	}
	lengthWord := data[4+32 : 4+32+32]
	length := bigEndianUint64Tail(lengthWord)
	body := data[headerLen:]
	if uint64(len(body)) < length {
		length = uint64(len(body))
	}
	if length > maxRevertReasonLen {
		length = maxRevertReasonLen
	}
	return string(body[:length]), true
}

// bigEndianUint64Tail reads the low 8 bytes of a 32-byte big-endian word,
// which is sufficient for any length ABI encoding will plausibly produce.
func bigEndianUint64Tail(word []byte) uint64 {
	if len(word) < 8 {
		return 0
	}
	return binary.BigEndian.Uint64(word[len(word)-8:])
}

// FormatRevert renders a decoded revert reason the way call results surface
// it to clients, e.g. `reverted: hello`.
func FormatRevert(reason string) string {
	return fmt.Sprintf("reverted: %s", reason)
}
