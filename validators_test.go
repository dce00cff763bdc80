package headerscan

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidators(t *testing.T) {
	t.Run("ValidateNotEmpty", func(t *testing.T) {
		v := ValidateNotEmpty()
		require.False(t, v(nil))
		require.False(t, v([]byte(" \t ")))
		require.True(t, v([]byte(" a ")))
	})

	t.Run("ValidateHeaderField", func(t *testing.T) {
		v := ValidateHeaderField()
		require.True(t, v([]byte("Host: x")))
		require.True(t, v([]byte("Host:")))
		require.False(t, v([]byte(": x")))
		require.False(t, v([]byte("Bad Name: x")))
		require.False(t, v([]byte("HTTP/1.1 200 OK")))
	})

	t.Run("ValidateASCII", func(t *testing.T) {
		v := ValidateASCII()
		require.True(t, v([]byte("Host: x")))
		require.False(t, v([]byte("X-Name: caf\xe9")))
	})
}
