package lsb

const (
	ChannelsPerPixel = 4	// r, g, b, a
)

/*
 * PixelBuffer is a row-major sequence of 8-bit channel samples,
 * Width*Height*4 of them. The codec never writes into a buffer it was
 * given, it returns a fresh one instead.
 */
type PixelBuffer struct {
	Width	int
	Height	int
	Pix	[]uint8
}

func NewPixelBuffer( width, height int ) *PixelBuffer {
	return &PixelBuffer{
		Width: width,
		Height: height,
		Pix: make( []uint8, width * height * ChannelsPerPixel ),
	}
}

func(b *PixelBuffer) SampleCount() int {
	if b == nil {
		return 0
	}
	return len(b.Pix)
}

func(b *PixelBuffer) Clone() *PixelBuffer {
	pix := make( []uint8, len(b.Pix) )
	copy( pix, b.Pix )
	return &PixelBuffer{ b.Width, b.Height, pix }
}
