package lsb
import (
	"errors"
)

var (
	ErrCapacityExceeded = errors.New("message is too large for this image")
	ErrBufferTooSmall = errors.New("buffer is too small to hold a message")
	ErrCorruptPayload = errors.New("corrupt payload")
	// not steganographic and wrong password look the same from here
	ErrNoHiddenMessage = errors.New("invalid encoded image or wrong password")
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidMessage = errors.New("message is not valid UTF-8")
)
