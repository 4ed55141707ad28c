package config

import (
	"path"
	"strings"
)

// Platform holds the OS-dependent locations of the Riot Client.
type Platform struct {
	// LiveDir is the Riot Client session directory swapped during a switch.
	LiveDir string
	// InstallPath is the launch target; empty when the OS has no known install.
	InstallPath string
	// Launcher, when set, is the program that opens InstallPath.
	Launcher   string
	LaunchArgs []string
}

// PlatformDefaults returns the Riot Client locations for goos. localAppData is
// only consulted on windows and falls back to <home>\AppData\Local.
func PlatformDefaults(goos, home, localAppData string) Platform {
	switch goos {
	case "windows":
		if localAppData == "" {
			localAppData = windowsJoin(home, "AppData", "Local")
		}
		return Platform{
			LiveDir:     windowsJoin(localAppData, "Riot Games", "Riot Client"),
			InstallPath: `C:\Riot Games\Riot Client\RiotClientServices.exe`,
		}
	case "darwin":
		return Platform{
			LiveDir:     path.Join(home, "Library", "Application Support", "Riot Games", "Riot Client"),
			InstallPath: "/Applications/Riot Games/Riot Client.app",
			Launcher:    "open",
		}
	default:
		return Platform{
			LiveDir:     path.Join(home, ".config", "Riot Games", "Riot Client"),
			InstallPath: path.Join(home, ".local", "share", "Riot Games", "Riot Client", "RiotClientServices.exe"),
			Launcher:    "wine",
		}
	}
}

func windowsJoin(parts ...string) string {
	trimmed := make([]string, 0, len(parts))
	for i, part := range parts {
		if i > 0 {
			part = strings.TrimLeft(part, `\/`)
		}
		if i < len(parts)-1 {
			part = strings.TrimRight(part, `\/`)
		}
		if part != "" {
			trimmed = append(trimmed, part)
		}
	}
	return strings.Join(trimmed, `\`)
}
