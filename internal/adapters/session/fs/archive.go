package fs

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bnema/riot-accounts-cli/internal/domain"
	"github.com/klauspost/compress/zstd"
)

// Export writes the snapshot as a zstd-compressed tar stream, metadata included.
func (s *Store) Export(ctx context.Context, displayName string, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir, err := s.existingSnapshot(displayName)
	if err != nil {
		return err
	}

	entries, err := listTree(ctx, dir)
	if err != nil {
		return fmt.Errorf("walk snapshot %q: %w", displayName, err)
	}

	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("create zstd writer: %w", err)
	}
	tw := tar.NewWriter(zw)

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			_ = zw.Close()
			return err
		}
		if err := writeTarEntry(tw, dir, entry); err != nil {
			_ = zw.Close()
			return fmt.Errorf("export snapshot %q: %w", displayName, err)
		}
	}

	if err := tw.Close(); err != nil {
		_ = zw.Close()
		return fmt.Errorf("close tar stream: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("close zstd stream: %w", err)
	}

	s.logger.WithField("account", displayName).Info("snapshot exported")
	return nil
}

func writeTarEntry(tw *tar.Writer, root string, entry treeEntry) error {
	full := filepath.Join(root, entry.rel)

	info, err := os.Lstat(full)
	if err != nil {
		return err
	}

	var link string
	if info.Mode()&iofs.ModeSymlink != 0 {
		if link, err = os.Readlink(full); err != nil {
			return err
		}
	}

	header, err := tar.FileInfoHeader(info, link)
	if err != nil {
		return err
	}
	header.Name = filepath.ToSlash(entry.rel)
	if info.IsDir() {
		header.Name += "/"
	}

	if err := tw.WriteHeader(header); err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return nil
	}

	file, err := os.Open(full)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(tw, file)
	return err
}

// Import reads an Export stream into the snapshot for displayName, replacing
// any existing one only after the whole archive was extracted.
func (s *Store) Import(ctx context.Context, displayName string, r io.Reader) (domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, err
	}
	if err := domain.ValidateDisplayName(displayName); err != nil {
		return domain.Snapshot{}, err
	}

	if err := os.MkdirAll(s.cfg.SnapshotRoot, dirMode); err != nil {
		return domain.Snapshot{}, fmt.Errorf("create snapshot root: %w", err)
	}

	staging, err := os.MkdirTemp(s.cfg.SnapshotRoot, stagingPrefix+"*")
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("create staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	zr, err := zstd.NewReader(r)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("open zstd stream: %w", err)
	}
	defer zr.Close()

	if err := extractTar(ctx, tar.NewReader(zr), staging); err != nil {
		return domain.Snapshot{}, fmt.Errorf("import snapshot %q: %w", displayName, err)
	}

	snapshot, err := readMetadata(staging)
	if err != nil && !metadataMissing(err) {
		return domain.Snapshot{}, fmt.Errorf("import snapshot %q: %w", displayName, err)
	}
	if metadataMissing(err) {
		snapshot = domain.Snapshot{BackupCreated: s.now().UTC(), SessionType: domain.SessionTypeStayLoggedIn}
	}

	stats, err := measureTree(ctx, staging, isMetadata)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("measure imported snapshot: %w", err)
	}
	snapshot.DisplayName = displayName
	snapshot.SizeBytes = stats.Bytes
	snapshot.FileCount = stats.Files

	if err := writeMetadata(staging, snapshot); err != nil {
		return domain.Snapshot{}, err
	}

	target := s.snapshotPath(displayName)
	if err := s.swapIn(staging, target); err != nil {
		return domain.Snapshot{}, err
	}

	snapshot.Path = target
	s.logger.WithField("account", displayName).Info("snapshot imported")
	return snapshot, nil
}

// extractTar unpacks tr below dst. Every write goes through an os.Root so no
// entry can resolve outside dst, and entries nested under a symlink the archive
// itself created are refused.
func extractTar(ctx context.Context, tr *tar.Reader, dst string) error {
	root, err := os.OpenRoot(dst)
	if err != nil {
		return fmt.Errorf("open extraction root: %w", err)
	}
	defer root.Close()

	links := make(map[string]struct{})

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read archive: %w", err)
		}

		if path.Clean(filepath.ToSlash(header.Name)) == "." {
			continue
		}
		rel, err := safeRelPath(header.Name)
		if err != nil {
			return err
		}
		if link, ok := underLink(links, rel); ok {
			return fmt.Errorf("archive entry %q is nested under link %q", header.Name, link)
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := root.MkdirAll(rel, dirMode); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := mkdirParent(root, rel); err != nil {
				return err
			}
			if err := writeFromArchive(root, tr, rel, header); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if path.IsAbs(header.Linkname) || filepath.IsAbs(header.Linkname) {
				return fmt.Errorf("archive link %q points outside the snapshot", header.Name)
			}
			if _, err := safeRelPath(path.Join(path.Dir(filepath.ToSlash(rel)), header.Linkname)); err != nil {
				return fmt.Errorf("archive link %q points outside the snapshot", header.Name)
			}
			if err := mkdirParent(root, rel); err != nil {
				return err
			}
			if err := root.Symlink(header.Linkname, rel); err != nil {
				return err
			}
			links[filepath.ToSlash(rel)] = struct{}{}
		default:
			// Devices, fifos and hard links never occur in a client config tree.
		}
	}
}

// underLink reports the first ancestor of rel that the archive created as a
// symlink.
func underLink(links map[string]struct{}, rel string) (string, bool) {
	dir := path.Dir(filepath.ToSlash(rel))
	for dir != "." && dir != "/" {
		if _, ok := links[dir]; ok {
			return dir, true
		}
		dir = path.Dir(dir)
	}
	return "", false
}

func mkdirParent(root *os.Root, rel string) error {
	parent := filepath.Dir(rel)
	if parent == "." {
		return nil
	}
	return root.MkdirAll(parent, dirMode)
}

func writeFromArchive(root *os.Root, tr *tar.Reader, rel string, header *tar.Header) error {
	mode := os.FileMode(header.Mode).Perm() | fileMode
	out, err := root.OpenFile(rel, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, tr); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if !header.ModTime.IsZero() {
		_ = root.Chtimes(rel, header.ModTime, header.ModTime)
	}
	return nil
}

// safeRelPath rejects archive names that would land outside the extraction root.
func safeRelPath(name string) (string, error) {
	cleaned := path.Clean(strings.TrimPrefix(filepath.ToSlash(name), "./"))
	if cleaned == "." || cleaned == "" {
		return "", fmt.Errorf("archive entry %q has no name", name)
	}
	if path.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, "../") || strings.Contains(cleaned, ":") {
		return "", fmt.Errorf("archive entry %q escapes the snapshot", name)
	}
	return filepath.FromSlash(cleaned), nil
}
