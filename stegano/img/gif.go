package img
import (
	"bytes"
	"image/gif"

	"stegende/stegano/lsb"
	"stegende/stegano/util"
)

/*
 * GIF frames are paletted, so RGBA samples would not survive quantization.
 * The palette indices of all frames are used as samples instead, with the
 * same length prefix and terminator as for pixels.
 */
func gifSamples( g *gif.GIF ) []uint8 {
	total := 0
	for _, frame := range g.Image {
		total += len(frame.Pix)
	}
	samples := make( []uint8, 0, total )
	for _, frame := range g.Image {
		samples = append( samples, frame.Pix... )
	}
	return samples
}

func HideInGif( gifbytes []byte, message string, pw util.Password ) ([]byte, error) {
	g, err := gif.DecodeAll( bytes.NewReader( gifbytes ) )
	if err != nil {
		return nil, err
	}
	samples, err := lsb.Embed( gifSamples( g ), message, pw )
	if err != nil {
		return nil, err
	}
	// put modified indices back, frame by frame
	offset := 0
	for _, frame := range g.Image {
		offset += copy( frame.Pix, samples[offset:] )
	}

	outbuf := bytes.NewBuffer( []byte{} )
	if err = gif.EncodeAll( outbuf, g ); err != nil {
		return nil, err
	}
	return outbuf.Bytes(), nil
}

func RevealFromGif( gifbytes []byte, pw util.Password ) (string, error) {
	g, err := gif.DecodeAll( bytes.NewReader( gifbytes ) )
	if err != nil {
		return "", err
	}
	return lsb.Extract( gifSamples( g ), pw )
}
