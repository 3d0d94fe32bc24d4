package engine

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"psrule/internal/output"
	"psrule/internal/rules"
)

// StdinPath selects standard input as a results source.
const StdinPath = "-"

const maxConcurrentReads = 4

// LoadResults reads result documents concurrently and concatenates them in
// argument order.
func LoadResults(ctx context.Context, stdin io.Reader, paths []string) ([]rules.InvokeResult, error) {
	if len(paths) == 0 {
		paths = []string{StdinPath}
	}

	loaded := make([][]rules.InvokeResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results, err := loadOne(stdin, path)
			if err != nil {
				return fmt.Errorf("load %s: %w", path, err)
			}
			loaded[i] = results
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []rules.InvokeResult
	for _, results := range loaded {
		out = append(out, results...)
	}
	return out, nil
}

func loadOne(stdin io.Reader, path string) ([]rules.InvokeResult, error) {
	if path == StdinPath {
		if stdin == nil {
			stdin = os.Stdin
		}
		return output.ReadResults(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return output.ReadResults(f)
}
