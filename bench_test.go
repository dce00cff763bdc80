package headerscan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func benchmarkInputs() map[string]string {
	long := "GET / HTTP/1.1\r\nX-Long: " + strings.Repeat("v", 2000) + "\r\n" +
		strings.Repeat(" folded value\r\n", 50) + "Host: x\r\n\r\n"
	return map[string]string{
		"response": exampleResponse,
		"folded":   long,
	}
}

func BenchmarkLineScanner(b *testing.B) {
	for name, input := range benchmarkInputs() {
		input := input
		for _, tier := range allTiers {
			tier := tier
			b.Run(name+"/"+tier.String(), func(b *testing.B) {
				src := []byte(input)
				buf := make([]byte, len(src))
				var count int
				b.ReportAllocs()
				b.SetBytes(int64(len(src)))
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					copy(buf, src)
					s := NewLineScanner(buf, true, tier)
					count = 0
					for s.TryNext() == StateLineReady {
						count++
					}
				}
				require.Greater(b, count, 0)
			})
		}
	}
}
