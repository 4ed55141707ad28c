package detector

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bnema/riot-accounts-cli/internal/domain"
	"github.com/bnema/riot-accounts-cli/internal/logging"
	"github.com/bnema/riot-accounts-cli/internal/ports"
	"github.com/goccy/go-yaml"
	"github.com/sirupsen/logrus"
)

// maxSettingsSize bounds how much of a settings file is read.
const maxSettingsSize = 4 << 20

// Indicators are the live-directory paths whose presence means a persisted
// login session, in the order they are inspected.
var Indicators = []string{
	"Data/RiotGamesPrivateSettings.yaml",
	"RiotGamesPrivateSettings.yaml",
	"Data/RiotClientPrivateSettings.yaml",
	"RiotClientPrivateSettings.yaml",
	"Data/SSO",
	"Plugins/Authentication",
}

var (
	identityKeyPattern = regexp.MustCompile(`(?i)(user|email|e-mail|login)`)
	emailPattern       = regexp.MustCompile(`^[^\s@"']+@[^\s@"']+\.[A-Za-z]{2,}$`)
	rawIdentityPattern = regexp.MustCompile(`(?im)^\s*["']?[\w.-]*(?:user|email|login)[\w.-]*["']?\s*:\s*["']?([^\s"'@]+@[^\s"'@]+\.[A-Za-z]{2,})`)
)

type Detector struct {
	liveDir string
	logger  *logrus.Entry
}

var _ ports.LoginDetector = (*Detector)(nil)

func New(liveDir string, logger logrus.FieldLogger) *Detector {
	return &Detector{liveDir: filepath.Clean(liveDir), logger: logging.Component(logger, "detector")}
}

func (d *Detector) HasActiveSession(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}
	_, ok := d.firstIndicator()
	return ok
}

// Inspect never fails: unreadable or undecodable files only lower the
// confidence of the verdict.
func (d *Detector) Inspect(ctx context.Context) domain.LoginState {
	first, ok := d.firstIndicator()
	if !ok {
		return domain.LoginState{Kind: domain.LoginInactive}
	}

	for _, rel := range Indicators {
		if ctx.Err() != nil {
			break
		}
		if !strings.HasSuffix(rel, ".yaml") {
			continue
		}

		identity, ok := d.identityFrom(rel)
		if ok {
			return domain.LoginState{Kind: domain.LoginIdentified, Identity: identity, Source: rel}
		}
	}

	return domain.LoginState{Kind: domain.LoginActiveUnknown, Source: first}
}

// CurrentIdentity returns the human description of the session and false when
// no session is active.
func (d *Detector) CurrentIdentity(ctx context.Context) (string, bool) {
	state := d.Inspect(ctx)
	return state.Describe(), state.Active()
}

func (d *Detector) firstIndicator() (string, bool) {
	for _, rel := range Indicators {
		if _, err := os.Stat(d.path(rel)); err == nil {
			return rel, true
		}
	}
	return "", false
}

func (d *Detector) identityFrom(rel string) (string, bool) {
	data, err := readLimited(d.path(rel))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			d.logger.WithError(err).WithField("file", rel).Debug("settings file unreadable")
		}
		return "", false
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err == nil {
		if identity, ok := searchIdentity(doc); ok {
			return identity, true
		}
	} else {
		d.logger.WithError(err).WithField("file", rel).Debug("settings file is not valid yaml")
	}

	if match := rawIdentityPattern.FindSubmatch(data); match != nil {
		return string(match[1]), true
	}

	return "", false
}

func (d *Detector) path(rel string) string {
	return filepath.Join(d.liveDir, filepath.FromSlash(rel))
}

// searchIdentity walks a decoded document depth-first, keys in sorted order,
// and returns the first e-mail-like value stored under a user/email/login key.
func searchIdentity(node any) (string, bool) {
	switch v := node.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			if s, ok := v[key].(string); ok && identityKeyPattern.MatchString(key) && looksLikeIdentity(s) {
				return strings.TrimSpace(s), true
			}
		}
		for _, key := range keys {
			if identity, ok := searchIdentity(v[key]); ok {
				return identity, true
			}
		}
	case map[any]any:
		converted := make(map[string]any, len(v))
		for key, value := range v {
			if s, ok := key.(string); ok {
				converted[s] = value
			}
		}
		return searchIdentity(converted)
	case []any:
		for _, item := range v {
			if identity, ok := searchIdentity(item); ok {
				return identity, true
			}
		}
	}

	return "", false
}

func looksLikeIdentity(value string) bool {
	return emailPattern.MatchString(strings.TrimSpace(value))
}

func readLimited(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(io.LimitReader(file, maxSettingsSize))
}
