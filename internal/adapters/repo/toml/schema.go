package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int             `toml:"version"`
	Accounts []accountSchema `toml:"accounts"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported accounts schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type accountSchema struct {
	ID            string `toml:"id"`
	DisplayName   string `toml:"display_name"`
	Username      string `toml:"username"`
	CredentialRef string `toml:"credential_ref,omitempty"`
	CreatedAt     string `toml:"created_at,omitempty"`
	LastUsed      string `toml:"last_used,omitempty"`
}
