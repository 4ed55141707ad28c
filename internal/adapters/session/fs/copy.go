package fs

import (
	"context"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"
)

type treeEntry struct {
	rel  string
	mode iofs.FileMode
}

type treeStats struct {
	Bytes int64
	Files int
}

// listTree returns every entry below root (root excluded) ordered so that a
// directory always precedes its children. fastwalk invokes the callback from
// several goroutines, hence the mutex.
func listTree(ctx context.Context, root string) ([]treeEntry, error) {
	var (
		mu      sync.Mutex
		entries []treeEntry
	)

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, root, func(path string, d os.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		mu.Lock()
		entries = append(entries, treeEntry{rel: rel, mode: d.Type()})
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].rel < entries[j].rel })
	return entries, nil
}

// copyTree replicates src into dst. Entries for which skip returns true are
// left out; skip sees slash-separated paths relative to src.
func copyTree(ctx context.Context, src, dst string, skip func(rel string) bool) (treeStats, error) {
	var stats treeStats

	entries, err := listTree(ctx, src)
	if err != nil {
		return stats, fmt.Errorf("walk %s: %w", src, err)
	}

	if err := os.MkdirAll(dst, dirMode); err != nil {
		return stats, fmt.Errorf("create %s: %w", dst, err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if skip != nil && skip(filepath.ToSlash(entry.rel)) {
			continue
		}

		from := filepath.Join(src, entry.rel)
		to := filepath.Join(dst, entry.rel)

		switch {
		case entry.mode.IsDir():
			if err := os.MkdirAll(to, dirMode); err != nil {
				return stats, fmt.Errorf("create %s: %w", to, err)
			}
		case entry.mode&iofs.ModeSymlink != 0:
			target, err := os.Readlink(from)
			if err != nil {
				return stats, fmt.Errorf("read link %s: %w", from, err)
			}
			if err := os.Symlink(target, to); err != nil {
				return stats, fmt.Errorf("create link %s: %w", to, err)
			}
		case entry.mode.IsRegular():
			n, err := copyFile(from, to)
			if err != nil {
				return stats, err
			}
			stats.Bytes += n
			stats.Files++
		}
	}

	return stats, nil
}

func copyFile(from, to string) (int64, error) {
	in, err := os.Open(from)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", from, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", from, err)
	}

	if err := os.MkdirAll(filepath.Dir(to), dirMode); err != nil {
		return 0, fmt.Errorf("create %s: %w", filepath.Dir(to), err)
	}

	out, err := os.OpenFile(to, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm()|0o600)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", to, err)
	}

	n, err := io.Copy(out, in)
	if err != nil {
		_ = out.Close()
		return n, fmt.Errorf("copy %s: %w", from, err)
	}
	if err := out.Close(); err != nil {
		return n, fmt.Errorf("close %s: %w", to, err)
	}

	// Session files carry expiry semantics; keep their timestamps.
	_ = os.Chtimes(to, info.ModTime(), info.ModTime())

	return n, nil
}

// measureTree counts regular files and their total size below root.
func measureTree(ctx context.Context, root string, skip func(rel string) bool) (treeStats, error) {
	var (
		bytes atomic.Int64
		files atomic.Int64
	)

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, root, func(path string, d os.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil || !d.Type().IsRegular() {
			return nil
		}
		if skip != nil {
			if rel, relErr := filepath.Rel(root, path); relErr == nil && skip(filepath.ToSlash(rel)) {
				return nil
			}
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}

		bytes.Add(info.Size())
		files.Add(1)
		return nil
	})
	if err != nil {
		return treeStats{}, err
	}

	return treeStats{Bytes: bytes.Load(), Files: int(files.Load())}, nil
}
