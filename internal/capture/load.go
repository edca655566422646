package capture

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// DefaultWorkers bounds concurrent archive parsing when no limit is given.
const DefaultWorkers = 8

// archiveSuffixes are the file names picked up when a directory is loaded.
var archiveSuffixes = []string{"har.json", ".har"}

// ReadHAR decodes one HAR document.
func ReadHAR(r io.Reader) (*HAR, error) {
	var h HAR
	if err := json.NewDecoder(r).Decode(&h); err != nil {
		return nil, fmt.Errorf("decoding HAR: %w", err)
	}
	return &h, nil
}

// ReadHARFile decodes the HAR document stored at path.
func ReadHARFile(path string) (*HAR, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	h, err := ReadHAR(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return h, nil
}

// ExpandPaths resolves paths to archive files. A directory contributes its
// files named *har.json or *.har in name order; any other path is taken as
// a file.
func ExpandPaths(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}

		dirEntries, err := os.ReadDir(p)
		if err != nil {
			return nil, err
		}
		found := 0
		for _, de := range dirEntries {
			if de.IsDir() || !isArchiveName(de.Name()) {
				continue
			}
			files = append(files, filepath.Join(p, de.Name()))
			found++
		}
		if found == 0 {
			slog.Warn("no HAR files in directory", slog.String("path", p))
		}
	}
	return files, nil
}

func isArchiveName(name string) bool {
	for _, s := range archiveSuffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}

// LoadPaths parses every archive reachable from paths with at most workers
// files in flight and returns their entries in path order, then file order.
func LoadPaths(ctx context.Context, paths []string, workers int) ([]Entry, error) {
	files, err := ExpandPaths(paths)
	if err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = DefaultWorkers
	}

	logs := make([][]Entry, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			h, err := ReadHARFile(file)
			if err != nil {
				return err
			}
			logs[i] = h.Log.Entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var entries []Entry
	for _, l := range logs {
		entries = append(entries, l...)
	}
	slog.Info("loaded HAR files",
		slog.Int("files", len(files)),
		slog.Int("entries", len(entries)),
	)
	return entries, nil
}
