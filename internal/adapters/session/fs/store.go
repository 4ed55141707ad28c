package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bnema/riot-accounts-cli/internal/domain"
	"github.com/bnema/riot-accounts-cli/internal/logging"
	"github.com/bnema/riot-accounts-cli/internal/ports"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	dirMode  = 0o700
	fileMode = 0o600

	stagingPrefix = ".staging-"
	retiredPrefix = ".retired-"
)

type Config struct {
	// LiveDir is the Riot Client session directory.
	LiveDir string
	// SnapshotRoot holds one directory per account display name.
	SnapshotRoot string
}

type Store struct {
	cfg    Config
	logger *logrus.Entry
	now    func() time.Time
}

var _ ports.SessionStore = (*Store)(nil)

func NewStore(cfg Config, clock ports.Clock, logger logrus.FieldLogger) (*Store, error) {
	if strings.TrimSpace(cfg.LiveDir) == "" {
		return nil, errors.New("live directory is empty")
	}
	if strings.TrimSpace(cfg.SnapshotRoot) == "" {
		return nil, errors.New("snapshot root is empty")
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Store{
		cfg:    Config{LiveDir: filepath.Clean(cfg.LiveDir), SnapshotRoot: filepath.Clean(cfg.SnapshotRoot)},
		logger: logging.Component(logger, "session-store"),
		now:    clock.Now,
	}, nil
}

// Backup copies the live directory into the account's snapshot. The new copy
// is staged first, so a failed backup leaves the previous snapshot intact.
func (s *Store) Backup(ctx context.Context, account domain.Account, sourceRunning bool) (domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, err
	}
	if err := domain.ValidateDisplayName(account.DisplayName); err != nil {
		return domain.Snapshot{}, err
	}
	if !isDir(s.cfg.LiveDir) {
		return domain.Snapshot{}, fmt.Errorf("%w: %s", domain.ErrLiveDirectoryMissing, s.cfg.LiveDir)
	}

	if err := os.MkdirAll(s.cfg.SnapshotRoot, dirMode); err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: create snapshot root: %v", domain.ErrCopyFailed, err)
	}

	staging, err := os.MkdirTemp(s.cfg.SnapshotRoot, stagingPrefix+"*")
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: create staging directory: %v", domain.ErrCopyFailed, err)
	}
	defer os.RemoveAll(staging)

	stats, err := copyTree(ctx, s.cfg.LiveDir, staging, nil)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: %v", domain.ErrCopyFailed, err)
	}

	measured, err := measureTree(ctx, staging, isMetadata)
	if err == nil {
		stats = measured
	}

	snapshot := domain.Snapshot{
		DisplayName:          account.DisplayName,
		Username:             account.Username,
		BackupCreated:        s.now().UTC(),
		SizeBytes:            stats.Bytes,
		FileCount:            stats.Files,
		SessionType:          domain.SessionTypeStayLoggedIn,
		SourceProcessRunning: sourceRunning,
	}
	if err := writeMetadata(staging, snapshot); err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: %v", domain.ErrCopyFailed, err)
	}

	target := s.snapshotPath(account.DisplayName)
	if err := s.swapIn(staging, target); err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: %v", domain.ErrCopyFailed, err)
	}

	snapshot.Path = target
	s.logger.WithFields(logrus.Fields{
		"account": account.DisplayName,
		"files":   snapshot.FileCount,
		"bytes":   snapshot.SizeBytes,
	}).Info("session backed up")

	return snapshot, nil
}

// Restore replaces the live directory with a copy of the snapshot. The copy is
// built next to the live directory and renamed into place; the previous live
// directory is only discarded once the new one is in place.
func (s *Store) Restore(ctx context.Context, displayName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	source, err := s.existingSnapshot(displayName)
	if err != nil {
		return err
	}

	parent := filepath.Dir(s.cfg.LiveDir)
	if err := os.MkdirAll(parent, dirMode); err != nil {
		return fmt.Errorf("%w: create %s: %v", domain.ErrCopyFailed, parent, err)
	}

	staging, err := os.MkdirTemp(parent, stagingPrefix+"*")
	if err != nil {
		return fmt.Errorf("%w: create staging directory: %v", domain.ErrCopyFailed, err)
	}
	defer os.RemoveAll(staging)

	if _, err := copyTree(ctx, source, staging, isMetadata); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCopyFailed, err)
	}

	if err := s.swapIn(staging, s.cfg.LiveDir); err != nil {
		return err
	}

	s.logger.WithField("account", displayName).Info("session restored")
	return nil
}

func (s *Store) SnapshotExists(displayName string) bool {
	if domain.ValidateDisplayName(displayName) != nil {
		return false
	}
	return isDir(s.snapshotPath(displayName))
}

// Get returns the snapshot metadata. Snapshots without a metadata file are
// described from their directory name and contents.
func (s *Store) Get(ctx context.Context, displayName string) (domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, err
	}

	dir, err := s.existingSnapshot(displayName)
	if err != nil {
		return domain.Snapshot{}, err
	}

	return s.describe(ctx, dir, displayName)
}

func (s *Store) List(ctx context.Context) ([]domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.cfg.SnapshotRoot)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snapshot root: %w", err)
	}

	snapshots := make([]domain.Snapshot, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		snapshot, err := s.describe(ctx, filepath.Join(s.cfg.SnapshotRoot, entry.Name()), entry.Name())
		if err != nil {
			s.logger.WithError(err).WithField("snapshot", entry.Name()).Warn("unreadable snapshot skipped")
			continue
		}
		snapshots = append(snapshots, snapshot)
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return strings.ToLower(snapshots[i].DisplayName) < strings.ToLower(snapshots[j].DisplayName)
	})

	return snapshots, nil
}

func (s *Store) Delete(ctx context.Context, displayName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir, err := s.existingSnapshot(displayName)
	if err != nil {
		return err
	}

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("delete snapshot %q: %w", displayName, err)
	}

	s.logger.WithField("account", displayName).Info("snapshot deleted")
	return nil
}

// Rename moves the snapshot stored under from to to and rewrites its metadata
// name. An existing snapshot under to is never overwritten.
func (s *Store) Rename(ctx context.Context, from, to string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	source, err := s.existingSnapshot(from)
	if err != nil {
		return err
	}
	if err := domain.ValidateDisplayName(to); err != nil {
		return err
	}

	target := s.snapshotPath(to)
	if _, err := os.Lstat(target); err == nil {
		return fmt.Errorf("%w: a snapshot named %q already exists", domain.ErrDuplicateDisplayName, to)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", target, err)
	}

	if err := os.Rename(source, target); err != nil {
		return fmt.Errorf("rename snapshot %q to %q: %w", from, to, err)
	}

	snapshot, err := readMetadata(target)
	switch {
	case err == nil:
		snapshot.DisplayName = to
		if err := writeMetadata(target, snapshot); err != nil {
			return err
		}
	case !metadataMissing(err):
		return err
	}

	s.logger.WithFields(logrus.Fields{"from": from, "to": to}).Info("snapshot renamed")
	return nil
}

func (s *Store) describe(ctx context.Context, dir, displayName string) (domain.Snapshot, error) {
	snapshot, err := readMetadata(dir)
	switch {
	case err == nil:
	case metadataMissing(err):
		stats, walkErr := measureTree(ctx, dir, isMetadata)
		if walkErr != nil {
			return domain.Snapshot{}, fmt.Errorf("measure snapshot %q: %w", displayName, walkErr)
		}
		snapshot = domain.Snapshot{SizeBytes: stats.Bytes, FileCount: stats.Files}
		if info, statErr := os.Stat(dir); statErr == nil {
			snapshot.BackupCreated = info.ModTime().UTC()
		}
	default:
		return domain.Snapshot{}, err
	}

	snapshot.DisplayName = displayName
	snapshot.Path = dir
	return snapshot, nil
}

func (s *Store) existingSnapshot(displayName string) (string, error) {
	if err := domain.ValidateDisplayName(displayName); err != nil {
		return "", err
	}

	dir := s.snapshotPath(displayName)
	if !isDir(dir) {
		return "", fmt.Errorf("%w: %q", domain.ErrSnapshotMissing, displayName)
	}

	return dir, nil
}

// swapIn renames staging onto target. An existing target is first moved aside
// and put back if the final rename fails.
func (s *Store) swapIn(staging, target string) error {
	var retired string
	if _, err := os.Lstat(target); err == nil {
		retired = filepath.Join(filepath.Dir(target), retiredPrefix+uuid.NewString())
		if err := os.Rename(target, retired); err != nil {
			return fmt.Errorf("%w: move %s aside: %v", domain.ErrCopyFailed, target, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: stat %s: %v", domain.ErrCopyFailed, target, err)
	}

	if err := os.Rename(staging, target); err != nil {
		swapErr := fmt.Errorf("%w: move %s into place: %v", domain.ErrCopyFailed, target, err)
		if retired == "" {
			return swapErr
		}
		if rollbackErr := os.Rename(retired, target); rollbackErr != nil {
			return errors.Join(swapErr, fmt.Errorf("%w: previous contents kept at %s: %v", domain.ErrPartialState, retired, rollbackErr))
		}
		return swapErr
	}

	if retired != "" {
		if err := os.RemoveAll(retired); err != nil {
			s.logger.WithError(err).WithField("path", retired).Warn("previous directory not removed")
		}
	}

	return nil
}

func (s *Store) snapshotPath(displayName string) string {
	return filepath.Join(s.cfg.SnapshotRoot, displayName)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
