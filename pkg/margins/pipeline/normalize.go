package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/komsit37/margins/pkg/margins/mapper"
	"github.com/komsit37/margins/pkg/margins/types"
)

// NormalizeRows maps every row to a product using up to workers goroutines.
// Output order matches input order. Only cancellation can fail it.
func NormalizeRows(ctx context.Context, rows []types.RawRow, table mapper.Table, workers int) ([]types.Product, error) {
	products := make([]types.Product, len(rows))
	if len(rows) == 0 {
		return products, nil
	}
	if workers <= 0 {
		workers = 1
	}
	chunk := (len(rows) + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < len(rows); start += chunk {
		start, end := start, min(start+chunk, len(rows))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if i%256 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				products[i] = mapper.Normalize(rows[i], table)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return products, nil
}
