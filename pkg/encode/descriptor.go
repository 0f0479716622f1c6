// Package encode implements the fast, type-specialized row encoders for
// the common normal-case types and the generic slow-path encoder that
// covers everything else.
package encode

import "encoding/binary"

func putUint64(b []byte, v uint64) {
	binary.LittleEndian.PutUint64(b, v)
}

// descriptorWord packs a string field's descriptor: low 32 bits are the
// byte offset from the slot's own address to the string bytes; high 32
// bits are the byte length including the trailing NUL.
func descriptorWord(offset, length uint32) uint64 {
	return uint64(offset) | uint64(length)<<32
}

// stringOffset computes the offset, relative to the address of the fixed
// slot at fieldIndex, of the start of that field's string bytes in the
// tail. nFixedSlots is the row's total fixed-slot count (fields, plus one
// more if any field is variable length); tailOffsetBefore is how many tail
// bytes precede this field's string within the row.
func stringOffset(nFixedSlots, fieldIndex, tailOffsetBefore int) int {
	return (nFixedSlots-fieldIndex)*8 + tailOffsetBefore
}

// putString writes descriptor+string into a row's slot and tail area.
// slot is the full requiredBytes buffer for the row; slotIndex is the
// field's position among the fixed slots; tailOffsetBefore is the byte
// offset, within the tail portion of slot, where this field's bytes
// begin. Returns the number of tail bytes written (len(s)+1 for the NUL).
func putString(slot []byte, nFixedSlots, slotIndex, tailOffsetBefore int, s string) int {
	off := stringOffset(nFixedSlots, slotIndex, tailOffsetBefore)
	length := len(s) + 1
	binary.LittleEndian.PutUint64(slot[slotIndex*8:slotIndex*8+8], descriptorWord(uint32(off), uint32(length)))
	tailStart := nFixedSlots*8 + tailOffsetBefore
	copy(slot[tailStart:], s)
	slot[tailStart+len(s)] = 0x00
	return length
}
