package bot

import (
	"context"
	"testing"

	"github.com/robalyx/casebot/internal/bot/constants"
	"github.com/robalyx/casebot/internal/bot/handlers/restriction"
	"github.com/robalyx/casebot/internal/setup/config"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

func newTestBot(slots int64) *Bot {
	return &Bot{
		config:      &config.BotConfig{},
		restriction: restriction.New(nil, nil, &config.BotConfig{}, nil, zap.NewNop()),
		sem:         semaphore.NewWeighted(slots),
		logger:      zap.NewNop(),
	}
}

func TestDispatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		command     string
		handle      func(ctx context.Context)
		wantHandled bool
		wantReplies []string
	}{
		{
			name:        "runs known command",
			command:     constants.SnippetBanCommandName,
			handle:      func(context.Context) {},
			wantHandled: true,
		},
		{
			name:        "rejects unknown command",
			command:     "ban",
			handle:      func(context.Context) {},
			wantReplies: []string{"This command is not available."},
		},
		{
			name:        "recovers panicking handler",
			command:     constants.SnippetUnbanCommandName,
			handle:      func(context.Context) { panic("nil guild") },
			wantHandled: true,
			wantReplies: []string{"Internal error. Please report this to an administrator."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := newTestBot(1)

			var replies []string
			handled := false

			b.dispatch(t.Context(), tt.command,
				func(message string) { replies = append(replies, message) },
				func(ctx context.Context) {
					handled = true
					tt.handle(ctx)
				})

			assert.Equal(t, tt.wantHandled, handled)
			assert.Equal(t, tt.wantReplies, replies)

			// The slot is released even after a panic
			assert.True(t, b.sem.TryAcquire(1))
		})
	}
}

func TestDispatchBusy(t *testing.T) {
	t.Parallel()

	b := newTestBot(1)
	assert.True(t, b.sem.TryAcquire(1))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	var replies []string
	handled := false

	b.dispatch(ctx, constants.SnippetBanCommandName,
		func(message string) { replies = append(replies, message) },
		func(context.Context) { handled = true })

	assert.False(t, handled)
	assert.Equal(t, []string{"The bot is busy. Please try again later."}, replies)
}
