package util
import (
	"errors"
	"fmt"
)

const (
	BitsPerByte = 8
	LengthBits = 32	// size of the length prefix, one bit per sample
)

var ErrUnalignedBits = errors.New("bitstream length is not a multiple of 8")

/*
 * transform data from/to binary form.
 * every byte becomes 8 entries of 0 or 1, most significant bit first.
 */
func ToBin( x byte ) []byte {
	result := make( []byte, BitsPerByte )
	for i := 0; i < BitsPerByte; i++ {
		result[i] = (x >> uint(BitsPerByte - 1 - i)) & 1
	}
	return result
}

func FromBin( x []byte ) byte {
	result := byte(0)
	for i := 0; i < BitsPerByte; i++ {
		result = (result << 1) | (x[i] & 1)
	}
	return result
}

// ToBits packs data into a bitstream of exactly 8*len(data) bits.
func ToBits( data []byte ) []uint8 {
	bits := make( []uint8, 0, len(data) * BitsPerByte )
	for _, b := range data {
		bits = append( bits, ToBin( b )... )
	}
	return bits
}

// FromBits is the inverse of ToBits.
func FromBits( bits []uint8 ) ([]byte, error) {
	if len(bits) % BitsPerByte != 0 {
		return nil, fmt.Errorf("%w (%d bits)", ErrUnalignedBits, len(bits))
	}
	result := make( []byte, 0, len(bits) / BitsPerByte )
	for i := 0; i < len(bits); i += BitsPerByte {
		result = append( result, FromBin( bits[i:i+BitsPerByte] ) )
	}
	return result, nil
}

// PutUint32Bits writes v big-endian as LengthBits bits into dst.
func PutUint32Bits( dst []uint8, v uint32 ) {
	_ = dst[LengthBits-1]
	for i := 0; i < LengthBits; i++ {
		dst[i] = uint8( (v >> uint(LengthBits - 1 - i)) & 1 )
	}
}

func Uint32FromBits( src []uint8 ) uint32 {
	_ = src[LengthBits-1]
	var v uint32
	for i := 0; i < LengthBits; i++ {
		v = (v << 1) | uint32(src[i] & 1)
	}
	return v
}
