package ecdsa

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/smallyu/go-weierstrass/internal/crypto/curves"
)

// BatchItem is one signature to check in VerifyBatch.
type BatchItem struct {
	PublicKey curves.Point
	Message   []byte
	Signature *Signature
}

// VerifyBatch verifies items concurrently, at most GOMAXPROCS at a time.
// results[i] is the outcome for items[i]. The only error is the context's.
func VerifyBatch(ctx context.Context, c *curves.Curve, items []BatchItem) ([]bool, error) {
	results := make([]bool, len(items))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))

	for i := range items {
		if egCtx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			item := items[i]
			results[i] = Verify(c, item.PublicKey, item.Message, item.Signature)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	// The parent may have been cancelled before any item was scheduled.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
