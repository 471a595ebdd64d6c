// Package pagination turns cursor-linked REST resources into lazy, ordered
// streams of typed items.
//
// The explorer API returns pages as an envelope {"data": [...], "cursor": "..."}.
// A present cursor is echoed back verbatim as the only query parameter to get
// the next page; an absent cursor means the resource is exhausted.
//
// Example usage:
//
//	stream := pagination.NewStream(fetcher, "/hotspots", nil)
//	for {
//		hotspot, ok, err := stream.Next(ctx)
//		if err != nil {
//			return err
//		}
//		if !ok {
//			break
//		}
//		process(hotspot)
//	}
//
// The stream:
//   - Performs no I/O until the first Next call
//   - Yields items in server order, page by page
//   - Skips empty pages that still carry a cursor
//   - Terminates on the first fetch error; the error is returned once and
//     every later Next reports end of sequence
//   - Follows cursors without a page limit; wrap it in Take to bound it
//
// Collect drains a stream into a slice, and BatchCollector drains several
// independent streams in parallel with a worker pool.
package pagination
