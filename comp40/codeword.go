package comp40

import (
	"github.com/mrjoshuak/go-comp40/bitpack"
)

// Codeword field layout, most significant to least significant:
//
//	a  unsigned 6 bits at lsb 26
//	b  signed   6 bits at lsb 20
//	c  signed   6 bits at lsb 14
//	d  signed   6 bits at lsb 8
//	pb unsigned 4 bits at lsb 4
//	pr unsigned 4 bits at lsb 0
const (
	coeffWidth  = 6
	chromaWidth = 4

	aLSB  = 26
	bLSB  = 20
	cLSB  = 14
	dLSB  = 8
	pbLSB = 4
	prLSB = 0
)

// packBlock assembles one quantized block into a 32-bit codeword. The fit
// test of every field is a precondition of packing; the quantizer's clamp
// ranges satisfy them by construction.
func packBlock(q quantizedBlock) uint32 {
	var w bitpack.Word
	w = bitpack.SetUnsigned(w, coeffWidth, aLSB, uint64(q.A))
	w = bitpack.SetSigned(w, coeffWidth, bLSB, int64(q.B))
	w = bitpack.SetSigned(w, coeffWidth, cLSB, int64(q.C))
	w = bitpack.SetSigned(w, coeffWidth, dLSB, int64(q.D))
	w = bitpack.SetUnsigned(w, chromaWidth, pbLSB, uint64(q.Pb))
	w = bitpack.SetUnsigned(w, chromaWidth, prLSB, uint64(q.Pr))
	return uint32(w)
}

// unpackCodeword splits a 32-bit codeword back into its quantized fields.
// Every 32-bit pattern is a valid codeword, so unpacking cannot fail.
func unpackCodeword(cw uint32) quantizedBlock {
	w := bitpack.Word(cw)
	return quantizedBlock{
		A:  uint8(bitpack.GetUnsigned(w, coeffWidth, aLSB)),
		B:  int8(bitpack.GetSigned(w, coeffWidth, bLSB)),
		C:  int8(bitpack.GetSigned(w, coeffWidth, cLSB)),
		D:  int8(bitpack.GetSigned(w, coeffWidth, dLSB)),
		Pb: uint8(bitpack.GetUnsigned(w, chromaWidth, pbLSB)),
		Pr: uint8(bitpack.GetUnsigned(w, chromaWidth, prLSB)),
	}
}
