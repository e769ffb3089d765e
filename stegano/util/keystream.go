package util

// Password is an optional obfuscation key. The zero value means no password,
// and so does a password built from an empty string.
type Password struct {
	key	[]byte
}

var NoPassword = Password{}

func NewPassword( s string ) Password {
	if s == "" {
		return NoPassword
	}
	return Password{ key: []byte(s) }
}

func(p Password) IsSet() bool {
	return len(p.key) > 0
}

/*
 * Apply xors every byte of data with the password repeated over its length.
 * Applying it twice with the same password returns the original data,
 * so the same call hides and reveals. This is obfuscation, not encryption:
 * length leaks and short keys fall to known plaintext.
 */
func Apply( data []byte, p Password ) []byte {
	result := make( []byte, len(data) )
	if p.IsSet() == false {
		copy( result, data )
		return result
	}
	for i := range data {
		result[i] = data[i] ^ p.key[ i % len(p.key) ]
	}
	return result
}
