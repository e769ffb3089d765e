package lsb
import (
	"errors"
	"fmt"
	"math"

	"stegende/stegano/util"
)

const (
	// payload may use at most 1/CapacityDivisor of all samples
	CapacityDivisor = 4
)

// Capacity returns how many message bytes fit into the given amount of samples.
func Capacity( samples int ) int {
	n := samples / CapacityDivisor / util.BitsPerByte - len(Terminator)
	for n > 0 && checkCapacity( PayloadBits( n ), samples ) != nil {
		n--
	}
	if n < 0 {
		return 0
	}
	return n
}

func checkCapacity( bits, samples int ) error {
	if bits * CapacityDivisor > samples ||
		util.LengthBits + bits > samples ||
		uint64(bits) > math.MaxUint32 {
		return fmt.Errorf("%w: %d payload bits, %d samples allow %d",
			ErrCapacityExceeded, bits, samples, samples / CapacityDivisor)
	}
	return nil
}

// only the lowest bit of every sample is touched
func writeBits( samples []uint8, bits []uint8, offset int ) {
	for i, bit := range bits {
		samples[offset + i] = (samples[offset + i] & 0xfe) | (bit & 1)
	}
}

func readBits( samples []uint8, offset, count int ) []uint8 {
	bits := make( []uint8, count )
	for i := range bits {
		bits[i] = samples[offset + i] & 1
	}
	return bits
}

/*
 * Embed hides the message in a copy of samples. The first 32 samples carry
 * the payload length in bits, the payload follows. Nothing is written when
 * the payload does not fit.
 */
func Embed( samples []uint8, message string, pw util.Password ) ([]uint8, error) {
	sealed, err := Seal( message, pw )
	if err != nil {
		return nil, err
	}
	payload := util.ToBits( sealed )
	if err := checkCapacity( len(payload), len(samples) ); err != nil {
		return nil, err
	}

	result := make( []uint8, len(samples) )
	copy( result, samples )

	prefix := make( []uint8, util.LengthBits )
	util.PutUint32Bits( prefix, uint32(len(payload)) )
	writeBits( result, prefix, 0 )
	writeBits( result, payload, util.LengthBits )
	return result, nil
}

func Extract( samples []uint8, pw util.Password ) (string, error) {
	if len(samples) < util.LengthBits {
		return "", fmt.Errorf("%w: %d samples", ErrBufferTooSmall, len(samples))
	}
	length := util.Uint32FromBits( readBits( samples, 0, util.LengthBits ) )
	if uint64(util.LengthBits) + uint64(length) > uint64(len(samples)) {
		return "", fmt.Errorf("%w: declared %d bits, %d samples available",
			ErrBufferTooSmall, length, len(samples) - util.LengthBits)
	}

	payload, err := util.FromBits( readBits( samples, util.LengthBits, int(length) ) )
	if err != nil {
		if errors.Is( err, util.ErrUnalignedBits ) {
			return "", fmt.Errorf("%w: %v", ErrCorruptPayload, err)
		}
		return "", err
	}
	return Open( payload, pw )
}

// Encode returns a new buffer carrying the message; buf stays untouched.
func Encode( buf *PixelBuffer, message string, pw util.Password ) (*PixelBuffer, error) {
	if buf == nil {
		return nil, fmt.Errorf("%w: no pixels", ErrBufferTooSmall)
	}
	pix, err := Embed( buf.Pix, message, pw )
	if err != nil {
		return nil, err
	}
	return &PixelBuffer{
		Width: buf.Width,
		Height: buf.Height,
		Pix: pix,
	}, nil
}

func Decode( buf *PixelBuffer, pw util.Password ) (string, error) {
	if buf == nil {
		return "", fmt.Errorf("%w: no pixels", ErrBufferTooSmall)
	}
	return Extract( buf.Pix, pw )
}
