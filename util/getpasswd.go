package util
import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// just a wrapper for term... the prompt goes to stderr so that
// revealed messages on stdout stay clean.
func GetPasswd( prompt string ) ([]byte, error) {
	fd := int( os.Stdin.Fd() )
	if term.IsTerminal( fd ) == false {
		return nil, fmt.Errorf("stdin is not a terminal, use --password")
	}
	fmt.Fprint( os.Stderr, prompt )
	bytepw, err := term.ReadPassword( fd )
	fmt.Fprintln( os.Stderr )
	return bytepw, err
}
