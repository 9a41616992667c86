package importer

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"
)

// ReadPaths loads import files from disk. Reads run concurrently but
// the returned slice keeps the original path order, so a later
// MergeFiles commits in file order regardless of read completion
// order. An unreadable file fails the whole read: there is nothing
// sensible to import without it.
func ReadPaths(ctx context.Context, paths []string) ([]File, error) {
	files := make([]File, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read import file %s: %w", path, err)
			}
			files[i] = File{Name: path, Data: data}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}
