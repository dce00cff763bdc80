package headerscan

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// barrierSource fails once every barrierSource sharing started has been filled.
type barrierSource struct {
	started *sync.WaitGroup
	err     error
}

func (s *barrierSource) Fill(buf []byte) ([]byte, bool, error) {
	s.started.Done()
	s.started.Wait()
	return buf, false, s.err
}

func TestReadBlocks(t *testing.T) {
	ctx := context.Background()

	t.Run("ordered", func(t *testing.T) {
		var srcs []FillSource
		for i := 0; i < 20; i++ {
			raw := fmt.Sprintf("GET /%d HTTP/1.1\r\nX-Index: %d\r\n continued\r\n\r\n", i, i)
			srcs = append(srcs, &ReaderSource{R: strings.NewReader(raw), ChunkSize: 5})
		}
		blocks, err := ReadBlocks(ctx, srcs, &Options{Concurrency: 3})
		require.NoError(t, err)
		require.Len(t, blocks, 20)
		for i, block := range blocks {
			require.Equal(t, []string{
				fmt.Sprintf("GET /%d HTTP/1.1", i),
				fmt.Sprintf("X-Index: %d   continued", i),
			}, blockLines(block))
		}
	})

	t.Run("error", func(t *testing.T) {
		srcs := []FillSource{
			&ReaderSource{R: strings.NewReader(exampleResponse)},
			&ReaderSource{R: strings.NewReader("\tbad\r\n\r\n")},
			&ReaderSource{R: strings.NewReader(exampleResponse)},
		}
		_, err := ReadBlocks(ctx, srcs, &Options{Concurrency: 2})
		require.True(t, errors.Is(err, ErrMalformedFold))
	})

	t.Run("lowest index error wins", func(t *testing.T) {
		var started sync.WaitGroup
		started.Add(2)
		errFirst := errors.New("first")
		errSecond := errors.New("second")
		srcs := []FillSource{
			&barrierSource{started: &started, err: errFirst},
			&barrierSource{started: &started, err: errSecond},
		}
		_, err := ReadBlocks(ctx, srcs, &Options{Concurrency: 2})
		require.True(t, errors.Is(err, errFirst), "got %v", err)
	})

	t.Run("empty", func(t *testing.T) {
		blocks, err := ReadBlocks(ctx, nil, nil)
		require.NoError(t, err)
		require.Empty(t, blocks)
	})
}
