// Package parallel provides a bounded fan-out over a slice.
//
// ForEach is built on errgroup with SetLimit. Unlike a bare errgroup it swallows
// item errors after reporting them, so one failing item never cancels the rest,
// and it recovers panics per item.
//
// # Usage
//
//	res := parallel.ForEach(ctx, ids, 5, resolve, func(id int, err error) {
//	    log.Warn("Failed to resolve", zap.Int("id", id), zap.Error(err))
//	})
package parallel
