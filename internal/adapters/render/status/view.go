package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/riot-accounts-cli/internal/application"
	"github.com/bnema/riot-accounts-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	Now time.Time
	// StaleAfter marks snapshots older than this; zero disables the marker.
	StaleAfter time.Duration
}

func renderView(status application.Status, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Riot Client Accounts"),
		s.header.Render(fmt.Sprintf("accounts: %d", len(status.Accounts))),
		clientLine(status, s),
		sessionLine(status, s),
	}

	if len(status.Accounts) == 0 {
		lines = append(lines, s.section.Render(s.empty.Render("No accounts configured. Add one with `ra account add`.")))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	rows := make([]string, 0, len(status.Accounts))
	for _, account := range status.Accounts {
		rows = append(rows, renderAccount(account, opts, s))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func clientLine(status application.Status, s styles) string {
	label := s.key.Render("client:")
	if !status.Running() {
		return label + " " + s.stopped.Render("stopped")
	}

	names := make([]string, 0, len(status.Processes))
	seen := make(map[string]struct{}, len(status.Processes))
	for _, p := range status.Processes {
		if _, ok := seen[p.Name]; ok {
			continue
		}
		seen[p.Name] = struct{}{}
		names = append(names, p.Name)
	}

	return label + " " + s.running.Render(fmt.Sprintf("running (%s)", plural(len(status.Processes), "process", "processes"))) +
		" " + s.detail.Render(strings.Join(names, ", "))
}

func sessionLine(status application.Status, s styles) string {
	line := s.key.Render("session:") + " " + s.detail.Render(status.Login.Describe())
	if status.ActiveAccount != nil {
		line += " " + s.active.Render(fmt.Sprintf("-> %s", accountTitle(*status.ActiveAccount)))
	}
	return line
}

func renderAccount(row application.AccountStatus, opts RenderOptions, s styles) string {
	marker := "  "
	title := s.account.Render(accountTitle(row.Account))
	if row.Active {
		marker = s.marker.Render("* ")
		title = s.active.Render(accountTitle(row.Account))
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		marker,
		title,
		"  ",
		s.detail.Render(row.Account.Username),
		"  ",
		snapshotLine(row, opts, s),
	)
}

func snapshotLine(row application.AccountStatus, opts RenderOptions, s styles) string {
	if !row.HasSnapshot || row.Snapshot == nil {
		return s.empty.Render("no snapshot")
	}

	snapshot := row.Snapshot
	ageStyle := lipgloss.NewStyle().Foreground(snapshotAgeColor(snapshot.BackupCreated, opts.Now))
	line := fmt.Sprintf("snapshot %.2f MB, %s", snapshot.SizeMB(), plural(snapshot.FileCount, "file", "files"))
	line = s.detail.Render(line) + " " + ageStyle.Render(fmt.Sprintf("(%s)", formatAge(snapshot.BackupCreated, opts.Now)))

	if opts.StaleAfter > 0 && !opts.Now.IsZero() && !snapshot.BackupCreated.IsZero() &&
		opts.Now.Sub(snapshot.BackupCreated) > opts.StaleAfter {
		line += " " + s.warning.Render("[stale]")
	}

	return line
}

func accountTitle(account domain.Account) string {
	return fmt.Sprintf("%s (%s)", strings.TrimSpace(account.DisplayName), account.ID)
}

func formatAge(created, now time.Time) string {
	if created.IsZero() {
		return "backup time unknown"
	}
	if now.IsZero() {
		return "backed up " + created.Format(time.RFC3339)
	}

	age := now.Sub(created)
	switch {
	case age < time.Minute:
		return "backed up just now"
	case age < time.Hour:
		return fmt.Sprintf("backed up %s ago", plural(int(age.Minutes()), "minute", "minutes"))
	case age < 24*time.Hour:
		return fmt.Sprintf("backed up %s ago", plural(int(age.Hours()), "hour", "hours"))
	default:
		days := int(math.Floor(age.Hours() / 24))
		return fmt.Sprintf("backed up %s ago (%s)", plural(days, "day", "days"), created.Format("02 Jan 15:04"))
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	// ANSI 256 greyscale ramp from 240 (faded) to 255 (bright).
	baseColor := 240.0
	targetColor := 255.0
	colorCode := int(baseColor + (targetColor-baseColor)*normalized)

	return lipgloss.Color(fmt.Sprintf("%d", colorCode))
}

// snapshotAgeColor fades from bright for a fresh snapshot to grey after 30 days.
func snapshotAgeColor(created, now time.Time) lipgloss.Color {
	if now.IsZero() || created.IsZero() || created.After(now) {
		return lipgloss.Color("255")
	}

	window := (30 * 24 * time.Hour).Seconds()
	return interpolateColor(window-now.Sub(created).Seconds(), 0, window)
}
