package headerscan

import "bytes"

var whitespace = [256]bool{
	' ':  true,
	'\r': true,
	'\n': true,
	'\t': true,
}

// ValidateNotEmpty validate that line contains at least one non-whitespace character
func ValidateNotEmpty() Validator {
	return func(line []byte) bool {
		for _, b := range line {
			if !whitespace[b] {
				return true
			}
		}
		return false
	}
}

// ValidateHeaderField returns true for "name: value" lines where name is non-empty and has no whitespace.
// The request or status line of a block fails this validator.
func ValidateHeaderField() Validator {
	return func(line []byte) bool {
		idx := bytes.IndexByte(line, ':')
		if idx <= 0 {
			return false
		}
		for _, b := range line[:idx] {
			if whitespace[b] {
				return false
			}
		}
		return true
	}
}

// ValidateASCII returns true when line has no obs-text (bytes >= 0x80)
func ValidateASCII() Validator {
	return func(line []byte) bool {
		for _, b := range line {
			if b >= 0x80 {
				return false
			}
		}
		return true
	}
}
