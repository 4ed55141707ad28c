package fs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bnema/riot-accounts-cli/internal/domain"
)

// MetadataFile sits at the top of every snapshot directory and is never
// copied back into the live directory.
const MetadataFile = ".snapshot.json"

type metadataSchema struct {
	DisplayName          string `json:"display_name"`
	Username             string `json:"username"`
	BackupCreated        string `json:"backup_created"`
	SizeBytes            int64  `json:"size_bytes"`
	FileCount            int    `json:"file_count"`
	SessionType          string `json:"session_type"`
	SourceProcessRunning bool   `json:"source_process_running"`
}

func isMetadata(rel string) bool {
	return rel == MetadataFile
}

func writeMetadata(dir string, snapshot domain.Snapshot) error {
	data, err := json.MarshalIndent(metadataSchema{
		DisplayName:          snapshot.DisplayName,
		Username:             snapshot.Username,
		BackupCreated:        snapshot.BackupCreated.UTC().Format(time.RFC3339),
		SizeBytes:            snapshot.SizeBytes,
		FileCount:            snapshot.FileCount,
		SessionType:          snapshot.SessionType,
		SourceProcessRunning: snapshot.SourceProcessRunning,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot metadata: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, MetadataFile), append(data, '\n'), fileMode); err != nil {
		return fmt.Errorf("write snapshot metadata: %w", err)
	}

	return nil
}

// readMetadata returns os.ErrNotExist when the snapshot predates metadata.
func readMetadata(dir string) (domain.Snapshot, error) {
	data, err := os.ReadFile(filepath.Join(dir, MetadataFile))
	if err != nil {
		return domain.Snapshot{}, err
	}

	var meta metadataSchema
	if err := json.Unmarshal(data, &meta); err != nil {
		return domain.Snapshot{}, fmt.Errorf("decode snapshot metadata: %w", err)
	}

	created, err := time.Parse(time.RFC3339, meta.BackupCreated)
	if err != nil && meta.BackupCreated != "" {
		return domain.Snapshot{}, fmt.Errorf("decode snapshot metadata: backup_created: %w", err)
	}

	return domain.Snapshot{
		DisplayName:          meta.DisplayName,
		Username:             meta.Username,
		BackupCreated:        created,
		SizeBytes:            meta.SizeBytes,
		FileCount:            meta.FileCount,
		SessionType:          meta.SessionType,
		SourceProcessRunning: meta.SourceProcessRunning,
	}, nil
}

func metadataMissing(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
