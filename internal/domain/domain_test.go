package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDisplayName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "plain", input: "Main"},
		{name: "spaces inside", input: "Smurf EUW"},
		{name: "unicode", input: "Zoë"},
		{name: "empty", input: "", wantErr: "display name is required"},
		{name: "blank", input: "   ", wantErr: "display name is required"},
		{name: "padded", input: " Main ", wantErr: "leading or trailing spaces"},
		{name: "dot", input: ".", wantErr: "may not start with a dot"},
		{name: "parent", input: "..", wantErr: "may not start with a dot"},
		{name: "hidden", input: ".staging", wantErr: "may not start with a dot"},
		{name: "slash", input: "a/b", wantErr: "reserved character"},
		{name: "backslash", input: `a\b`, wantErr: "reserved character"},
		{name: "control", input: "a\tb", wantErr: "control character"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateDisplayName(tc.input)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidDisplayName)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestAccountValidate(t *testing.T) {
	t.Parallel()

	valid := Account{ID: "1", DisplayName: "Main", Username: "main@example.com"}
	require.NoError(t, valid.Validate())

	missingID := valid
	missingID.ID = ""
	assert.ErrorContains(t, missingID.Validate(), "id is required")

	missingUser := valid
	missingUser.Username = " "
	assert.ErrorContains(t, missingUser.Validate(), "username is required")
}

func TestAccountSameUserIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	account := Account{Username: "Main@Example.com"}

	assert.True(t, account.SameUser("main@example.com"))
	assert.True(t, account.SameUser("  MAIN@EXAMPLE.COM "))
	assert.False(t, account.SameUser("smurf@example.com"))
	assert.False(t, account.SameUser(""))
}

func TestLoginStateDescribe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		state  LoginState
		want   string
		active bool
	}{
		{name: "inactive", state: LoginState{Kind: LoginInactive}, want: "no active session"},
		{name: "zero value", state: LoginState{}, want: "no active session"},
		{name: "unknown", state: LoginState{Kind: LoginActiveUnknown}, want: "session active, identity unknown", active: true},
		{name: "identified", state: LoginState{Kind: LoginIdentified, Identity: "main@example.com"}, want: "main@example.com", active: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.state.Describe())
			assert.Equal(t, tc.active, tc.state.Active())
		})
	}
}

func TestSnapshotSizeMB(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, Snapshot{}.SizeMB())
	assert.Equal(t, 1.0, Snapshot{SizeBytes: 1024 * 1024}.SizeMB())
	assert.Equal(t, 1.5, Snapshot{SizeBytes: 1024 * 1024 * 3 / 2}.SizeMB())
}

func TestTerminationEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, Termination{}.Empty())
	assert.False(t, Termination{Signaled: []string{"RiotClientServices.exe"}}.Empty())
	assert.False(t, Termination{Survivors: []Process{{PID: 7}}}.Empty())
}

func TestSwitchRecordDuration(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 4*time.Second, SwitchRecord{StartedAt: start, FinishedAt: start.Add(4 * time.Second)}.Duration())
	assert.Zero(t, SwitchRecord{FinishedAt: start}.Duration())
	assert.Zero(t, SwitchRecord{StartedAt: start, FinishedAt: start.Add(-time.Second)}.Duration())
}
