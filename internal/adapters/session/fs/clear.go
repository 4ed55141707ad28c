package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/bnema/riot-accounts-cli/internal/domain"
	"github.com/sirupsen/logrus"
)

// LogoutTargets are the live-directory entries that hold authentication state,
// as doublestar patterns relative to the live directory. Anything else (game
// settings, installs) is left alone by ClearLive.
var LogoutTargets = []string{
	"RiotGamesPrivateSettings.yaml",
	"RiotClientPrivateSettings.yaml",
	"Data/RiotGamesPrivateSettings.yaml",
	"Data/RiotClientPrivateSettings.yaml",
	"Data/Cache",
	"Data/Logs",
	"Data/CrashReporting",
	"Data/RiotClientInstalls.json",
	"Data/Sessions",
	"Data/SSO",
	"Data/Local Storage",
	"Data/Session Storage",
	"Plugins/Authentication",
	"Plugins/rcp-fe-lol-auth",
}

// ClearLive removes the logout targets that exist and reports them. Every
// target is attempted; failures are joined into the returned error.
func (s *Store) ClearLive(ctx context.Context) ([]domain.ClearedItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !isDir(s.cfg.LiveDir) {
		return nil, nil
	}

	fsys := os.DirFS(s.cfg.LiveDir)
	seen := make(map[string]struct{})

	var (
		cleared []domain.ClearedItem
		errs    []error
	)
	for _, pattern := range LogoutTargets {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithNoFollow())
		if err != nil {
			errs = append(errs, fmt.Errorf("match %q: %w", pattern, err))
			continue
		}

		for _, rel := range matches {
			if _, ok := seen[rel]; ok {
				continue
			}
			seen[rel] = struct{}{}

			item, err := removeTarget(s.cfg.LiveDir, rel)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			cleared = append(cleared, item)
		}
	}

	s.logger.WithFields(logrus.Fields{"cleared": len(cleared), "failed": len(errs)}).Info("live session cleared")

	return cleared, errors.Join(errs...)
}

func removeTarget(root, rel string) (domain.ClearedItem, error) {
	path := filepath.Join(root, filepath.FromSlash(rel))

	info, err := os.Lstat(path)
	if err != nil {
		return domain.ClearedItem{}, fmt.Errorf("stat %s: %w", rel, err)
	}

	kind := domain.ClearedFile
	if info.IsDir() {
		kind = domain.ClearedDir
	}

	if err := os.RemoveAll(path); err != nil {
		return domain.ClearedItem{}, fmt.Errorf("remove %s: %w", rel, err)
	}

	return domain.ClearedItem{Path: rel, Kind: kind}, nil
}
