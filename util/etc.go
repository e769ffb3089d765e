package util
import (
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// text typed in a terminal may come decomposed, keep one form for hiding
func FixUnicode( in string ) string {
	return norm.NFC.String( in )
}

// OutputFilename builds "<name>-hidden.<ext>" next to the input file.
func OutputFilename( input string, ext string ) string {
	base := strings.TrimSuffix( input, filepath.Ext( input ) )
	return base + "-hidden." + strings.TrimPrefix( ext, "." )
}
