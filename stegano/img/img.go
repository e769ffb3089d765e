package img
import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/bmp"

	"stegende/stegano/lsb"
	"stegende/stegano/util"
)

type Format string

const (
	FormatPNG Format = "png"
	FormatJPEG Format = "jpeg"
	FormatGIF Format = "gif"
	FormatBMP Format = "bmp"
	// keep the decoy's own container and carrier
	FormatKeep Format = "keep"

	DefaultJpegQuality = 95
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

// ParseFormat accepts the usual spellings and extensions of the supported formats.
func ParseFormat( s string ) (Format, error) {
	switch s {
	case "png", ".png", "PNG":
		return FormatPNG, nil
	case "jpeg", "jpg", ".jpeg", ".jpg", "JPEG", "JPG":
		return FormatJPEG, nil
	case "gif", ".gif", "GIF":
		return FormatGIF, nil
	case "bmp", ".bmp", "BMP":
		return FormatBMP, nil
	case "keep", "":
		return FormatKeep, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

func(f Format) Lossless() bool {
	return f != FormatJPEG
}

func DetectFormat( data []byte ) (Format, error) {
	if len(data) >= 3 && data[0] == 0x47 && data[1] == 0x49 && data[2] == 0x46 {
		return FormatGIF, nil
	}
	if len(data) >= 8 && data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4e &&
		data[3] == 0x47 && data[4] == 0x0d && data[5] == 0x0a &&
		data[6] == 0x1a && data[7] == 0x0a {
		return FormatPNG, nil
	}
	if len(data) >= 3 && data[0] == 0xff && data[1] == 0xd8 && data[2] == 0xff {
		return FormatJPEG, nil
	}
	if len(data) >= 2 && data[0] == 0x42 && data[1] == 0x4d {
		return FormatBMP, nil
	}
	return "", ErrUnsupportedFormat
}

// ToPixelBuffer copies any image into non-premultiplied RGBA samples.
func ToPixelBuffer( img image.Image ) *lsb.PixelBuffer {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	nrgba := image.NewNRGBA( image.Rect( 0, 0, width, height ) )
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			nrgba.Set( x, y, img.At( bounds.Min.X + x, bounds.Min.Y + y ) )
		}
	}
	return &lsb.PixelBuffer{
		Width: width,
		Height: height,
		Pix: nrgba.Pix,
	}
}

// FromPixelBuffer wraps the samples without copying them.
func FromPixelBuffer( buf *lsb.PixelBuffer ) (*image.NRGBA, error) {
	if buf == nil || len(buf.Pix) != buf.Width * buf.Height * lsb.ChannelsPerPixel {
		return nil, fmt.Errorf("pixel buffer does not match its dimensions")
	}
	return &image.NRGBA{
		Pix: buf.Pix,
		Stride: buf.Width * lsb.ChannelsPerPixel,
		Rect: image.Rect( 0, 0, buf.Width, buf.Height ),
	}, nil
}

// DecodePixelBuffer turns PNG, JPEG, GIF or BMP file bytes into samples.
func DecodePixelBuffer( data []byte ) (*lsb.PixelBuffer, Format, error) {
	format, err := DetectFormat( data )
	if err != nil {
		return nil, "", err
	}
	var img image.Image
	r := bytes.NewReader( data )
	switch format {
	case FormatPNG:
		img, err = png.Decode( r )
	case FormatJPEG:
		img, err = jpeg.Decode( r )
	case FormatGIF:
		img, err = gif.Decode( r )
	case FormatBMP:
		img, err = bmp.Decode( r )
	}
	if err != nil {
		return nil, format, fmt.Errorf("failed to decode %s: %w", format, err)
	}
	return ToPixelBuffer( img ), format, nil
}

/*
 * EncodePixelBuffer serializes samples into a container. Only lossless
 * formats keep the hidden bits; writing JPEG here is allowed but whatever
 * was embedded with the LSB codec is gone afterwards.
 */
func EncodePixelBuffer( buf *lsb.PixelBuffer, format Format, quality int ) ([]byte, error) {
	nrgba, err := FromPixelBuffer( buf )
	if err != nil {
		return nil, err
	}
	out := new(bytes.Buffer)
	switch format {
	case FormatPNG:
		err = png.Encode( out, nrgba )
	case FormatBMP:
		err = bmp.Encode( out, nrgba )
	case FormatJPEG:
		if quality <= 0 {
			quality = DefaultJpegQuality
		}
		err = jpeg.Encode( out, nrgba, &jpeg.Options{ Quality: quality } )
	default:
		return nil, fmt.Errorf("%w for writing: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return out.Bytes(), nil
}

// Hide picks the carrier by the decoy's format. The result has the same format.
func Hide( decoy []byte, message string, pw util.Password ) ([]byte, error) {
	format, err := DetectFormat( decoy )
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatGIF:
		return HideInGif( decoy, message, pw )
	case FormatJPEG:
		return HideInJpeg( decoy, message, pw, DefaultJpegQuality )
	case FormatBMP:
		return HideInBMP( decoy, message, pw )
	}
	return HideInPng( decoy, message, pw )
}

func Reveal( decoy []byte, pw util.Password ) (string, error) {
	format, err := DetectFormat( decoy )
	if err != nil {
		return "", err
	}
	switch format {
	case FormatGIF:
		return RevealFromGif( decoy, pw )
	case FormatJPEG:
		return RevealFromJpeg( decoy, pw )
	case FormatBMP:
		return RevealFromBMP( decoy, pw )
	}
	return RevealFromPng( decoy, pw )
}

// Capacity reports how many message bytes the decoy can carry.
// JPEG capacity depends on the DCT coefficients and is reported as -1.
func Capacity( decoy []byte ) (int, Format, error) {
	format, err := DetectFormat( decoy )
	if err != nil {
		return 0, "", err
	}
	switch format {
	case FormatJPEG:
		return -1, format, nil
	case FormatGIF:
		g, err := gif.DecodeAll( bytes.NewReader( decoy ) )
		if err != nil {
			return 0, format, err
		}
		return lsb.Capacity( len( gifSamples( g ) ) ), format, nil
	}
	buf, _, err := DecodePixelBuffer( decoy )
	if err != nil {
		return 0, format, err
	}
	if format == FormatBMP {
		return lsb.Capacity( buf.Width * buf.Height * bmpChannels ), format, nil
	}
	return lsb.Capacity( buf.SampleCount() ), format, nil
}

/*
 * HideAs hides the message and writes the result in the requested format.
 * PNG (all samples) and BMP (colour samples only) go through the pixel
 * codec whatever the decoy was, JPEG output
 * is produced by re-encoding the decoy as JPEG first and hiding in its
 * coefficients. FormatKeep is the same as Hide.
 */
func HideAs( decoy []byte, message string, pw util.Password, format Format, quality int ) ([]byte, error) {
	native, err := DetectFormat( decoy )
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatKeep:
		if native == FormatJPEG {
			return HideInJpeg( decoy, message, pw, quality )
		}
		return Hide( decoy, message, pw )
	case FormatPNG:
		return HideInPng( decoy, message, pw )
	case FormatBMP:
		return HideInBMP( decoy, message, pw )
	case FormatJPEG:
		if native != FormatJPEG {
			buf, _, err := DecodePixelBuffer( decoy )
			if err != nil {
				return nil, err
			}
			if decoy, err = EncodePixelBuffer( buf, FormatJPEG, quality ); err != nil {
				return nil, err
			}
		}
		return HideInJpeg( decoy, message, pw, quality )
	case FormatGIF:
		if native == FormatGIF {
			return HideInGif( decoy, message, pw )
		}
	}
	return nil, fmt.Errorf("%w for hiding: %s from %s", ErrUnsupportedFormat, format, native)
}
