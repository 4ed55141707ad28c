package process

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatcher(t *testing.T) {
	t.Parallel()

	m := newMatcher(ClientProcessNames)

	tests := []struct {
		name string
		cand candidate
		want string
		ok   bool
	}{
		{name: "exact windows name", cand: candidate{Name: "RiotClientServices.exe"}, want: "RiotClientServices.exe", ok: true},
		{name: "case insensitive", cand: candidate{Name: "riotclientux.EXE"}, want: "RiotClientUx.exe", ok: true},
		{name: "without extension", cand: candidate{Name: "LeagueClientUxRender"}, want: "LeagueClientUxRender.exe", ok: true},
		{name: "truncated comm", cand: candidate{Name: "VALORANT-Win64-"}, want: "VALORANT-Win64-Shipping.exe", ok: true},
		{name: "truncated comm ambiguous prefix of ux", cand: candidate{Name: "RiotClientUxRen"}, want: "RiotClientUxRender.exe", ok: true},
		{name: "unix exe path", cand: candidate{Name: "x", Exe: "/games/riot/VALORANT.exe"}, want: "VALORANT.exe", ok: true},
		{name: "wine argv0", cand: candidate{Name: "wineserver", Args: []string{`Z:\riot\LeagueClient.exe`, "--x"}}, want: "LeagueClient.exe", ok: true},
		{name: "short unrelated name", cand: candidate{Name: "Riot"}, ok: false},
		{name: "unrelated 15 char comm", cand: candidate{Name: "systemd-journal"}, ok: false},
		{name: "empty", cand: candidate{}, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := m.match(tt.cand)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
