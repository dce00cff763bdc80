package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	jsoniter "github.com/json-iterator/go"
	"github.com/willabides/headerscan"
	"golang.org/x/text/encoding/charmap"
)

var cli struct {
	Inputs         []string `kong:"arg,optional,help='files to read header blocks from. use - for stdin and gs://bucket/object for cloud storage. files ending in .gz are decompressed'"`
	Tier           string   `kong:"default=auto,help='line feed search: auto, scalar, wide16 or wide32'"`
	ChunkSize      int      `kong:"default=4096,help='bytes to read at a time'"`
	MaxHeaderBytes int      `kong:"default=65536,help='largest header block to accept. 0 for no limit'"`
	Concurrency    int      `kong:"default=4,help='number of inputs to scan at once'"`
	FieldsOnly     bool     `kong:"help='only output name: value lines'"`
	NoEmptyLines   bool     `kong:"help='skip lines with nothing but whitespace'"`
	ASCIIOnly      bool     `kong:"name=ascii-only,help='skip lines containing bytes outside of ascii'"`
	JSON           bool     `kong:"name=json,help='output one json object per line'"`
	Latin1         bool     `kong:"help='decode header bytes as ISO-8859-1'"`
}

type jsonLine struct {
	Input string `json:"input"`
	Index int    `json:"index"`
	Line  string `json:"line"`
}

func openInput(ctx context.Context, name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	if strings.HasPrefix(name, "gs://") {
		bucket, obj, ok := strings.Cut(strings.TrimPrefix(name, "gs://"), "/")
		if !ok || obj == "" {
			return nil, fmt.Errorf("invalid object name %q", name)
		}
		return headerscan.OpenObject(ctx, obj, &headerscan.Options{Bucket: bucket})
	}
	return headerscan.OpenFile(name)
}

func lineValidators(noEmptyLines, asciiOnly, fieldsOnly bool) []headerscan.Validator {
	var validators []headerscan.Validator
	if noEmptyLines {
		validators = append(validators, headerscan.ValidateNotEmpty())
	}
	if asciiOnly {
		validators = append(validators, headerscan.ValidateASCII())
	}
	if fieldsOnly {
		validators = append(validators, headerscan.ValidateHeaderField())
	}
	return validators
}

func main() {
	k := kong.Parse(&cli)
	tier, err := headerscan.ParseTier(cli.Tier)
	k.FatalIfErrorf(err, "invalid tier")
	if len(cli.Inputs) == 0 {
		cli.Inputs = []string{"-"}
	}
	ctx := context.Background()

	srcs := make([]headerscan.FillSource, len(cli.Inputs))
	for i, name := range cli.Inputs {
		rdr, err := openInput(ctx, name)
		k.FatalIfErrorf(err, "error opening "+name)
		defer func() {
			_ = rdr.Close() //nolint:errcheck // nothing to do with this error
		}()
		srcs[i] = &headerscan.ReaderSource{R: rdr, ChunkSize: cli.ChunkSize}
	}

	validators := lineValidators(cli.NoEmptyLines, cli.ASCIIOnly, cli.FieldsOnly)
	blocks, err := headerscan.ReadBlocks(ctx, srcs, &headerscan.Options{
		Tier:           tier,
		ChunkSize:      cli.ChunkSize,
		MaxHeaderBytes: cli.MaxHeaderBytes,
		Concurrency:    cli.Concurrency,
		Validators:     validators,
	})
	k.FatalIfErrorf(err, "error scanning headers")

	out := bufio.NewWriter(os.Stdout)
	decoder := charmap.ISO8859_1.NewDecoder()
	for i, block := range blocks {
		for j, line := range block.Lines {
			if cli.Latin1 {
				line, err = decoder.Bytes(line)
				k.FatalIfErrorf(err, "error decoding line")
			}
			if cli.JSON {
				b, err := jsoniter.ConfigFastest.Marshal(jsonLine{
					Input: cli.Inputs[i],
					Index: j,
					Line:  string(line),
				})
				k.FatalIfErrorf(err, "error encoding line")
				_, err = fmt.Fprintln(out, string(b))
				k.FatalIfErrorf(err, "error writing output")
				continue
			}
			_, err = fmt.Fprintln(out, string(line))
			k.FatalIfErrorf(err, "error writing output")
		}
		if !cli.JSON && i < len(blocks)-1 {
			_, err = fmt.Fprintln(out)
			k.FatalIfErrorf(err, "error writing output")
		}
	}
	k.FatalIfErrorf(out.Flush(), "error writing output")
}
