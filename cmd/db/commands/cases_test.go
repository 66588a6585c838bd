package commands_test

import (
	"testing"

	"github.com/robalyx/casebot/cmd/db/commands"
	"github.com/robalyx/casebot/internal/database/types/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRestriction(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		input     string
		wantBan   enum.CaseType
		wantUnban enum.CaseType
		wantErr   bool
	}{
		{name: "snippet ban", input: "snippetban", wantBan: enum.CaseTypeSnippetBan, wantUnban: enum.CaseTypeSnippetUnban},
		{name: "mixed case", input: "PollBan", wantBan: enum.CaseTypePollBan, wantUnban: enum.CaseTypePollUnban},
		{name: "jail", input: "jail", wantBan: enum.CaseTypeJail, wantUnban: enum.CaseTypeUnjail},
		{name: "ban family is rejected", input: "ban", wantErr: true},
		{name: "hackban is rejected", input: "hackban", wantErr: true},
		{name: "timeout is rejected", input: "timeout", wantErr: true},
		{name: "unknown", input: "softban", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ban, unban, err := commands.ParseRestriction(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, commands.ErrUnknownRestriction)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantBan, ban)
			assert.Equal(t, tt.wantUnban, unban)
		})
	}
}
