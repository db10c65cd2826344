package cli

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"parachute/internal/core/inference"
	perr "parachute/internal/platform/errors"
)

// file is one input read from disk
type file struct {
	path string
	data []byte
}

// isCommentList reports whether path holds a JSON comment dump rather than a binary buffer
func (f file) isCommentList() bool {
	return strings.EqualFold(filepath.Ext(f.path), ".json")
}

func readFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, perr.Wrapf(err, perr.ErrorCodeNotFound, "read %s", path)
	case err != nil:
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "read %s", path)
	}
	return b, nil
}

// readFiles reads paths with at most workers reads in flight. Results keep the
// order of paths; the first failing path (in that order) is returned
func readFiles(ctx context.Context, paths []string, workers int) ([]file, error) {
	if workers < 1 {
		workers = 1
	}
	out := make([]file, len(paths))
	errs := make([]error, len(paths))

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, p := range paths {
		if err := ctx.Err(); err != nil {
			errs[i] = perr.Wrap(err, perr.ErrorCodeTimeout, "read cancelled")
			break
		}
		sem <- struct{}{}
		wg.Add(1)
		go func(i int, p string) {
			defer wg.Done()
			defer func() { <-sem }()
			b, err := readFile(p)
			out[i] = file{path: p, data: b}
			errs[i] = err
		}(i, p)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// parseComments decodes a comment dump: [{"time": 12.3, "text": "..."}]
func parseComments(f file) ([]inference.Comment, error) {
	var cs []inference.Comment
	if err := json.Unmarshal(f.data, &cs); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "decode %s", f.path)
	}
	return cs, nil
}
