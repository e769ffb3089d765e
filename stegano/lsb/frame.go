package lsb
import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"stegende/stegano/util"
)

const (
	Terminator = "END_OF_MESSAGE"
)

var terminator = []byte(Terminator)

// Seal obfuscates the message with the password (if any) and appends the
// terminator. The terminator itself is never obfuscated.
func Seal( message string, pw util.Password ) ([]byte, error) {
	if utf8.ValidString( message ) == false {
		return nil, ErrInvalidMessage
	}
	sealed := util.Apply( []byte(message), pw )
	return append( sealed, terminator... ), nil
}

/*
 * Open cuts the payload at the terminator and reverses the obfuscation.
 * The last terminator is used, so messages that contain the marker text
 * survive a round trip.
 */
func Open( payload []byte, pw util.Password ) (string, error) {
	idx := bytes.LastIndex( payload, terminator )
	if idx < 0 {
		return "", ErrNoHiddenMessage
	}
	body := payload[:idx]
	if pw.IsSet() == false {
		if utf8.Valid( body ) == false {
			return "", ErrNoHiddenMessage
		}
		return string(body), nil
	}

	plain := util.Apply( body, pw )
	if utf8.Valid( plain ) == false {
		return "", fmt.Errorf("%w: message does not decode as text", ErrInvalidPassword)
	}
	return string(plain), nil
}

// PayloadBits is the number of payload bits a message of n bytes takes,
// length prefix excluded.
func PayloadBits( n int ) int {
	return (n + len(Terminator)) * util.BitsPerByte
}
