package headerscan

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_foldRewriter(t *testing.T) {
	t.Run("crlf", func(t *testing.T) {
		buf := []byte("A: b\r\n c")
		r := newFoldRewriter()
		require.NoError(t, r.rewrite(buf, 0, 4, 5))
		require.Equal(t, "A: b   c", string(buf))
		require.Equal(t, 1, r.colon)
	})

	t.Run("bare lf", func(t *testing.T) {
		buf := []byte("A: b\n\tc")
		r := newFoldRewriter()
		require.NoError(t, r.rewrite(buf, 0, 4, 4))
		require.Equal(t, "A: b \tc", string(buf))
	})

	t.Run("no colon", func(t *testing.T) {
		buf := []byte("A: b\r\nname\r\n c")
		r := newFoldRewriter()
		err := r.rewrite(buf, 6, 10, 11)
		require.Equal(t, ErrMalformedFold, err)
		require.Equal(t, "A: b\r\nname\r\n c", string(buf))
	})

	t.Run("colon remembered within a line", func(t *testing.T) {
		buf := []byte("A: b\r\n c\r\n d")
		r := newFoldRewriter()
		require.NoError(t, r.rewrite(buf, 0, 4, 5))
		require.NoError(t, r.rewrite(buf, 0, 8, 9))
		require.Equal(t, "A: b   c   d", string(buf))
	})

	t.Run("colon from an earlier line is ignored", func(t *testing.T) {
		buf := []byte("A: b\r\nname\r\n c")
		r := newFoldRewriter()
		r.colon = 1
		require.Equal(t, ErrMalformedFold, r.rewrite(buf, 6, 10, 11))
	})
}
