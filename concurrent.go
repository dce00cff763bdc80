package headerscan

import (
	"context"

	"github.com/killa-beez/gopkgs/pool"
)

// ReadBlocks reads one header block from each source using up to opts.Concurrency workers.
// Blocks are returned in the order of srcs. On failure the remaining sources are abandoned
// and the error of the failing source with the lowest index in srcs is returned.
func ReadBlocks(ctx context.Context, srcs []FillSource, opts *Options) ([]*Block, error) {
	opts = opts.withDefaults()
	blocks := make([]*Block, len(srcs))
	errs := make([]error, len(srcs))
	if len(srcs) == 0 {
		return blocks, nil
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := pool.New(len(srcs), opts.Concurrency)
	for i := range srcs {
		i := i
		src := srcs[i]
		p.Add(pool.NewWorkUnit(func(ctx2 context.Context) {
			block, err := ReadBlock(ctx2, src, opts)
			if err != nil {
				errs[i] = err
				cancel()
				return
			}
			blocks[i] = block
		}))
	}
	p.Start(ctx)
	p.Wait()
	for _, err := range errs {
		if err != nil && err != context.Canceled {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return blocks, nil
}
