package img
import (
	"stegende/stegano/lsb"
	"stegende/stegano/util"
)

const (
	bmpChannels = 3
)

/*
 * BMP keeps the message in the red, green and blue samples only. Alpha does
 * not survive a BMP round trip, so the output is written fully opaque (24 bit).
 */
func bmpSamples( buf *lsb.PixelBuffer ) []uint8 {
	pixels := buf.Width * buf.Height
	samples := make( []uint8, 0, pixels * bmpChannels )
	for i := 0; i < pixels; i++ {
		px := buf.Pix[i * lsb.ChannelsPerPixel:]
		samples = append( samples, px[0], px[1], px[2] )
	}
	return samples
}

func putBmpSamples( buf *lsb.PixelBuffer, samples []uint8 ) {
	for i := 0; i < buf.Width * buf.Height; i++ {
		px := buf.Pix[i * lsb.ChannelsPerPixel:]
		copy( px[:bmpChannels], samples[i * bmpChannels:] )
		px[3] = 0xff
	}
}

// HideInBMP accepts any decoy format, the result is always a BMP.
func HideInBMP( decoy []byte, message string, pw util.Password ) ([]byte, error) {
	buf, _, err := DecodePixelBuffer( decoy )
	if err != nil {
		return nil, err
	}
	samples, err := lsb.Embed( bmpSamples( buf ), message, pw )
	if err != nil {
		return nil, err
	}
	putBmpSamples( buf, samples )
	return EncodePixelBuffer( buf, FormatBMP, 0 )
}

func RevealFromBMP( decoy []byte, pw util.Password ) (string, error) {
	buf, _, err := DecodePixelBuffer( decoy )
	if err != nil {
		return "", err
	}
	return lsb.Extract( bmpSamples( buf ), pw )
}
