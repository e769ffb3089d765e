package img
import (
	"stegende/stegano/lsb"
	"stegende/stegano/util"
)

// HideInPng runs the pixel codec over all RGBA samples of any decoy and
// writes a PNG.
func HideInPng( decoy []byte, message string, pw util.Password ) ([]byte, error) {
	buf, _, err := DecodePixelBuffer( decoy )
	if err != nil {
		return nil, err
	}
	encoded, err := lsb.Encode( buf, message, pw )
	if err != nil {
		return nil, err
	}
	return EncodePixelBuffer( encoded, FormatPNG, 0 )
}

func RevealFromPng( decoy []byte, pw util.Password ) (string, error) {
	buf, _, err := DecodePixelBuffer( decoy )
	if err != nil {
		return "", err
	}
	return lsb.Decode( buf, pw )
}
