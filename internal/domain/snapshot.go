package domain

import (
	"math"
	"time"
)

// SessionTypeStayLoggedIn tags snapshots captured from a "stay logged in" session.
const SessionTypeStayLoggedIn = "stay_logged_in"

type Snapshot struct {
	DisplayName          string
	Username             string
	BackupCreated        time.Time
	SizeBytes            int64
	FileCount            int
	SessionType          string
	SourceProcessRunning bool
	Path                 string
}

// SizeMB returns the snapshot size in MiB rounded to two decimals.
func (s Snapshot) SizeMB() float64 {
	return math.Round(float64(s.SizeBytes)/(1024*1024)*100) / 100
}

type ClearedKind string

const (
	ClearedFile ClearedKind = "file"
	ClearedDir  ClearedKind = "dir"
)

type ClearedItem struct {
	Path string
	Kind ClearedKind
}
