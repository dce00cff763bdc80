package headerscan

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// ErrHeaderTooLarge is returned when a header block is longer than Options.MaxHeaderBytes
var ErrHeaderTooLarge = errors.New("headerscan: header block too large")

// Validator is a function that returns true when a line passes validation
type Validator func(line []byte) bool

// Options are options for reading header blocks
type Options struct {
	Tier           Tier
	ChunkSize      int
	MaxHeaderBytes int
	Concurrency    int
	Validators     []Validator

	// StorageClient and Bucket are used by OpenObject.
	// StorageOptions configure the client OpenObject creates when StorageClient is nil.
	StorageClient  *storage.Client
	StorageOptions []option.ClientOption
	Bucket         string
}

func (o *Options) withDefaults() *Options {
	if o == nil {
		o = new(Options)
	}
	out := *o
	if out.ChunkSize <= 0 {
		out.ChunkSize = DefaultChunkSize
	}
	if out.Concurrency <= 0 {
		out.Concurrency = 1
	}
	return &out
}

// Block is a header block
type Block struct {
	// Lines are the unfolded lines before the blank line, starting with the request or status line
	Lines [][]byte
	// Consumed is the number of bytes up to and including the blank line
	Consumed int
	// Rest is whatever was read past the blank line
	Rest []byte
}

func (o *Options) validateLine(line []byte) bool {
	for _, validator := range o.Validators {
		ok := validator(line)
		if !ok {
			return false
		}
	}
	return true
}

// ReadBlock reads one header block from src.
// It returns io.ErrUnexpectedEOF when src runs out before the blank line.
func ReadBlock(ctx context.Context, src FillSource, opts *Options) (*Block, error) {
	opts = opts.withDefaults()
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	buf, done, err := src.Fill(make([]byte, 0, opts.ChunkSize))
	if err != nil {
		return nil, fmt.Errorf("reading header block: %w", err)
	}
	sc := NewLineScanner(buf, done, opts.Tier)
	var ranges []Range
	for {
		switch sc.TryNext() {
		case StateLineReady:
			rng := sc.Range()
			if opts.MaxHeaderBytes > 0 && sc.Cursor().LineStart > opts.MaxHeaderBytes {
				return nil, ErrHeaderTooLarge
			}
			if rng.Len() == 0 {
				return newBlock(buf, ranges, sc.Cursor().LineStart, opts), nil
			}
			ranges = append(ranges, rng)
		case StateNeedMoreData:
			if opts.MaxHeaderBytes > 0 && len(buf) > opts.MaxHeaderBytes {
				return nil, ErrHeaderTooLarge
			}
			// a blank line can't be folded, so don't wait for the byte after it
			if isBlankLine(buf[sc.Cursor().LineStart:]) {
				return newBlock(buf, ranges, len(buf), opts), nil
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			buf, done, err = src.Fill(buf)
			if err != nil {
				return nil, fmt.Errorf("reading header block: %w", err)
			}
			sc.Resume(buf, done)
		case StateHeadersComplete:
			return nil, io.ErrUnexpectedEOF
		case StateFailed:
			return nil, sc.Err()
		}
	}
}

func isBlankLine(b []byte) bool {
	return string(b) == "\r\n" || string(b) == "\n"
}

func newBlock(buf []byte, ranges []Range, consumed int, opts *Options) *Block {
	block := &Block{
		Consumed: consumed,
		Rest:     buf[consumed:],
	}
	for _, rng := range ranges {
		line := buf[rng.Start:rng.End]
		if opts.validateLine(line) {
			block.Lines = append(block.Lines, line)
		}
	}
	return block
}
