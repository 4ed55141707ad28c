package process

import "strings"

// commLen is the size of the Linux task comm field minus the trailing NUL.
const commLen = 15

// ClientProcessNames is the Riot Client process family, as Windows reports it.
var ClientProcessNames = []string{
	"RiotClientServices.exe",
	"RiotClientUx.exe",
	"RiotClientUxRender.exe",
	"LeagueClient.exe",
	"LeagueClientUx.exe",
	"LeagueClientUxRender.exe",
	"League of Legends.exe",
	"VALORANT.exe",
	"VALORANT-Win64-Shipping.exe",
}

type matcher struct {
	full      map[string]string
	truncated map[string]string
}

func newMatcher(names []string) matcher {
	m := matcher{
		full:      make(map[string]string, len(names)),
		truncated: make(map[string]string, len(names)),
	}
	for _, name := range names {
		lower := strings.ToLower(name)
		m.full[strings.TrimSuffix(lower, ".exe")] = name
		if len(lower) > commLen {
			m.truncated[lower[:commLen]] = name
		}
	}
	return m
}

// match reports the canonical allow-list name for a process, looking at the
// reported name, the executable path and argv[0]. Wine processes expose
// Windows paths, so both separators are understood.
func (m matcher) match(c candidate) (string, bool) {
	if c.Name != "" {
		if name, ok := m.full[normalize(c.Name)]; ok {
			return name, true
		}
		if len(c.Name) == commLen {
			if name, ok := m.truncated[strings.ToLower(c.Name)]; ok {
				return name, true
			}
		}
	}

	for _, path := range []string{c.Exe, firstArg(c.Args)} {
		if path == "" {
			continue
		}
		if name, ok := m.full[normalize(baseName(path))]; ok {
			return name, true
		}
	}

	return "", false
}

func normalize(name string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(name)), ".exe")
}

func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
