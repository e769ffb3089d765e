package img
import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image/jpeg"

	"lukechampine.com/jsteg"

	"stegende/stegano/lsb"
	"stegende/stegano/util"
)

const (
	jpegLengthSize = 4
)

/*
 * JPEG recompression destroys pixel LSBs, so JPEG decoys carry the sealed
 * message in the DCT coefficients instead (jsteg). The sealed bytes get a
 * big-endian length prefix because jsteg reveals everything it can read.
 */
func HideInJpeg( jpgBytes []byte, message string, pw util.Password, quality int ) ([]byte, error) {
	img, err := jpeg.Decode( bytes.NewReader( jpgBytes ) )
	if err != nil {
		return nil, err
	}
	sealed, err := lsb.Seal( message, pw )
	if err != nil {
		return nil, err
	}
	data := make( []byte, jpegLengthSize + len(sealed) )
	binary.BigEndian.PutUint32( data, uint32(len(sealed)) )
	copy( data[jpegLengthSize:], sealed )

	if quality <= 0 {
		quality = DefaultJpegQuality
	}
	opts := &jpeg.Options{ Quality: quality }
	if capacity := jsteg.Capacity( img, opts ); capacity < len(data) {
		return nil, fmt.Errorf("%w: %d bytes to hide, JPEG holds %d",
			lsb.ErrCapacityExceeded, len(data), capacity)
	}
	outbuf := bytes.NewBuffer( []byte{} )
	if err = jsteg.Hide( outbuf, img, data, opts ); err != nil {
		return nil, err
	}
	return outbuf.Bytes(), nil
}

func RevealFromJpeg( jpgBytes []byte, pw util.Password ) (string, error) {
	hidden, err := jsteg.Reveal( bytes.NewReader( jpgBytes ) )
	if err != nil {
		return "", err
	}
	if len(hidden) < jpegLengthSize {
		return "", fmt.Errorf("%w: %d bytes revealed", lsb.ErrBufferTooSmall, len(hidden))
	}
	size := binary.BigEndian.Uint32( hidden[:jpegLengthSize] )
	if uint64(size) > uint64(len(hidden) - jpegLengthSize) {
		return "", fmt.Errorf("%w: JPEG declares %d bytes, %d available",
			lsb.ErrBufferTooSmall, size, len(hidden) - jpegLengthSize)
	}
	return lsb.Open( hidden[jpegLengthSize:jpegLengthSize+size], pw )
}
