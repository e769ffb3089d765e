package util
import (
	"bytes"
	"errors"
	"testing"
)

func TestToBin( t *testing.T ) {
	bits := ToBin( 0x41 )	// 'A'
	expected := []byte{ 0, 1, 0, 0, 0, 0, 0, 1 }
	if bytes.Equal( bits, expected ) == false {
		t.Errorf("Invalid bits for 'A': %v != %v", bits, expected)
	}
	if FromBin( bits ) != 0x41 {
		t.Errorf("FromBin failed: %x", FromBin( bits ))
	}
}

func TestBitsRoundTrip( t *testing.T ) {
	tests := [][]byte{
		nil,
		[]byte{},
		[]byte("Hello world!"),
		[]byte("END_OF_MESSAGE"),
		[]byte{ 0x00, 0xff, 0x80, 0x01 },
		[]byte("Grüße, 世界"),
		bytes.Repeat( []byte("a"), 4096 ),
	}
	for _, data := range tests {
		bits := ToBits( data )
		if len(bits) != len(data) * BitsPerByte {
			t.Errorf("Invalid amount of bits: %d != %d", len(bits), len(data) * BitsPerByte)
		}
		for _, b := range bits {
			if b > 1 {
				t.Fatalf("Bit out of range: %d", b)
			}
		}
		decoded, err := FromBits( bits )
		if err != nil {
			t.Errorf("Failed to decode bits: %v", err)
		} else if bytes.Equal( decoded, data ) == false {
			t.Errorf("Bits spoiled the data. %v != %v", decoded, data)
		}
	}
}

func TestFromBitsUnaligned( t *testing.T ) {
	for _, n := range []int{ 1, 7, 9, 15 } {
		_, err := FromBits( make( []uint8, n ) )
		if errors.Is( err, ErrUnalignedBits ) == false {
			t.Errorf("%d bits: expected ErrUnalignedBits, got %v", n, err)
		}
	}
}

func TestUint32Bits( t *testing.T ) {
	values := []uint32{ 0, 1, 128, 0xdeadbeef, 0xffffffff }
	for _, v := range values {
		bits := make( []uint8, LengthBits )
		PutUint32Bits( bits, v )
		if got := Uint32FromBits( bits ); got != v {
			t.Errorf("Length prefix spoiled: %d != %d", got, v)
		}
	}

	// most significant bit goes first
	bits := make( []uint8, LengthBits )
	PutUint32Bits( bits, 1 )
	if bits[LengthBits-1] != 1 || bits[0] != 0 {
		t.Errorf("Length prefix is not big-endian: %v", bits)
	}
}
