package headerscan

import (
	"bytes"
	"errors"
)

// ErrMalformedFold is returned when a continuation line follows a line that has no colon.
// RFC 7230 only allows obs-fold inside a field value.
var ErrMalformedFold = errors.New("headerscan: obs-fold outside of a header field value")

// foldRewriter replaces the CR and LF of a fold boundary with spaces.
type foldRewriter struct {
	// colon is the offset of a colon already seen in the line being folded, or -1
	colon int
}

func newFoldRewriter() foldRewriter {
	return foldRewriter{colon: -1}
}

// rewrite unfolds the boundary at startIdx..lfIndex of the line that starts at lineStart.
func (r *foldRewriter) rewrite(buf []byte, lineStart, startIdx, lfIndex int) error {
	if r.colon < lineStart {
		idx := bytes.IndexByte(buf[lineStart:startIdx], ':')
		if idx < 0 {
			return ErrMalformedFold
		}
		r.colon = lineStart + idx
	}
	buf[startIdx] = ' '
	buf[lfIndex] = ' '
	return nil
}

func isFoldLead(b byte) bool {
	return b == ' ' || b == '\t'
}
