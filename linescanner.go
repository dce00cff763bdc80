package headerscan

import "fmt"

// State is the result of LineScanner.TryNext
type State int

// States returned by TryNext
const (
	StateScanning State = iota
	StateNeedMoreData
	StateLineReady
	StateHeadersComplete
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateScanning:
		return "Scanning"
	case StateNeedMoreData:
		return "NeedMoreData"
	case StateLineReady:
		return "LineReady"
	case StateHeadersComplete:
		return "HeadersComplete"
	case StateFailed:
		return "Failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Range is a [Start, End) span of the buffer
type Range struct {
	Start int
	End   int
}

// Len returns End - Start
func (r Range) Len() int {
	return r.End - r.Start
}

// Cursor is a scanner's position.
// LineStart is the first byte of the line being assembled and ScanOffset is where the next search starts.
type Cursor struct {
	LineStart  int
	ScanOffset int
}

// LineScanner splits a buffer into header lines, unfolding obs-fold continuations in place.
//
// The scanner owns buf until it is done. It never grows buf. When TryNext returns StateNeedMoreData
// the caller extends the buffer and hands it back with Resume.
type LineScanner struct {
	buf         []byte
	doneReading bool
	strategy    Strategy
	rewriter    foldRewriter
	cur         Cursor
	rng         Range
	state       State
	err         error
}

// NewLineScanner returns a LineScanner for buf. doneReading reports that buf will never be extended.
func NewLineScanner(buf []byte, doneReading bool, tier Tier) *LineScanner {
	return &LineScanner{
		buf:         buf,
		doneReading: doneReading,
		strategy:    StrategyFor(tier),
		rewriter:    newFoldRewriter(),
	}
}

// Resume replaces the buffer with an extended one. buf must hold the same bytes as the previous
// buffer up to the previous length.
func (s *LineScanner) Resume(buf []byte, doneReading bool) {
	if len(buf) < s.cur.ScanOffset {
		panic(fmt.Sprintf("headerscan: resumed buffer of %d bytes is behind scan offset %d", len(buf), s.cur.ScanOffset))
	}
	s.buf = buf
	s.doneReading = doneReading
	if s.state == StateNeedMoreData {
		s.state = StateScanning
	}
}

// TryNext advances to the next line.
//
// StateLineReady means Range holds the next line with CR and LF excluded. An empty Range is the
// blank line that ends a header block. StateNeedMoreData means the buffer must be extended before
// calling again. StateHeadersComplete and StateFailed are final.
func (s *LineScanner) TryNext() State {
	if s.state == StateHeadersComplete || s.state == StateFailed {
		return s.state
	}
	s.state = s.next()
	return s.state
}

func (s *LineScanner) next() State {
	buf := s.buf
	if s.cur.ScanOffset == 0 && len(buf) > 0 && isFoldLead(buf[0]) {
		// a continuation with no line before it
		s.err = ErrMalformedFold
		return StateFailed
	}
	for {
		lf := s.strategy.FindLineFeed(buf, s.cur.ScanOffset)
		if lf < 0 {
			if s.doneReading {
				return StateHeadersComplete
			}
			s.cur.ScanOffset = len(buf)
			return StateNeedMoreData
		}

		startIdx := lf
		if lf > 0 && buf[lf-1] == '\r' {
			startIdx = lf - 1
		}

		tabIdx := lf + 1
		if tabIdx == len(buf) {
			if !s.doneReading {
				// come back to this LF without rescanning the line
				s.cur.ScanOffset = startIdx
				return StateNeedMoreData
			}
		} else if isFoldLead(buf[tabIdx]) {
			err := s.rewriter.rewrite(buf, s.cur.LineStart, startIdx, lf)
			if err != nil {
				s.err = err
				return StateFailed
			}
			s.cur.ScanOffset = tabIdx
			continue
		}

		s.rng = Range{Start: s.cur.LineStart, End: startIdx}
		s.cur = Cursor{LineStart: tabIdx, ScanOffset: tabIdx}
		return StateLineReady
	}
}

// Range returns the line found by the last StateLineReady. It is valid until the next call to TryNext.
func (s *LineScanner) Range() Range {
	return s.rng
}

// Bytes returns the buffer bytes of Range
func (s *LineScanner) Bytes() []byte {
	return s.buf[s.rng.Start:s.rng.End]
}

// Err returns ErrMalformedFold after StateFailed
func (s *LineScanner) Err() error {
	return s.err
}

// Cursor returns the scanner's position
func (s *LineScanner) Cursor() Cursor {
	return s.cur
}

// State returns the result of the last TryNext
func (s *LineScanner) State() State {
	return s.state
}

// Trailing returns the unterminated bytes after the last line.
// They are never emitted as a line.
func (s *LineScanner) Trailing() Range {
	return Range{Start: s.cur.LineStart, End: len(s.buf)}
}
