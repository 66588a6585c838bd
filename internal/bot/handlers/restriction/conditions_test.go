package restriction_test

import (
	"context"
	"testing"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"github.com/robalyx/casebot/internal/bot/handlers/restriction"
	"github.com/robalyx/casebot/internal/moderation"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

const (
	ownerID  = 1
	actorID  = 2
	targetID = 3
)

func request(target moderation.User) *moderation.Request {
	return &moderation.Request{
		GuildID:   100,
		GuildName: "Test Guild",
		Actor:     moderation.User{ID: actorID, Name: "mod"},
		Target:    target,
	}
}

func TestDeny(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		actorID   uint64
		target    moderation.User
		hierarchy restriction.Hierarchy
		want      string
	}{
		{
			name:      "lower ranked member",
			actorID:   actorID,
			target:    moderation.User{ID: targetID},
			hierarchy: restriction.Hierarchy{OwnerID: ownerID, ActorPosition: 5, TargetPosition: 2, TargetIsMember: true},
			want:      "",
		},
		{
			name:      "target outside guild",
			actorID:   actorID,
			target:    moderation.User{ID: targetID},
			hierarchy: restriction.Hierarchy{OwnerID: ownerID, TargetPosition: 9},
			want:      "",
		},
		{
			name:      "self",
			actorID:   actorID,
			target:    moderation.User{ID: actorID},
			hierarchy: restriction.Hierarchy{OwnerID: ownerID},
			want:      "You cannot snippet ban yourself.",
		},
		{
			name:      "bot",
			actorID:   actorID,
			target:    moderation.User{ID: targetID, Bot: true},
			hierarchy: restriction.Hierarchy{OwnerID: ownerID},
			want:      "You cannot snippet ban a bot.",
		},
		{
			name:      "server owner",
			actorID:   actorID,
			target:    moderation.User{ID: ownerID},
			hierarchy: restriction.Hierarchy{OwnerID: ownerID, ActorPosition: 5, TargetIsMember: true},
			want:      "You cannot snippet ban the server owner.",
		},
		{
			name:      "equal role",
			actorID:   actorID,
			target:    moderation.User{ID: targetID},
			hierarchy: restriction.Hierarchy{OwnerID: ownerID, ActorPosition: 4, TargetPosition: 4, TargetIsMember: true},
			want:      "You cannot snippet ban a user with a higher or equal role.",
		},
		{
			name:      "higher role",
			actorID:   actorID,
			target:    moderation.User{ID: targetID},
			hierarchy: restriction.Hierarchy{OwnerID: ownerID, ActorPosition: 4, TargetPosition: 8, TargetIsMember: true},
			want:      "You cannot snippet ban a user with a higher or equal role.",
		},
		{
			name:      "owner outranks every role",
			actorID:   ownerID,
			target:    moderation.User{ID: targetID},
			hierarchy: restriction.Hierarchy{OwnerID: ownerID, ActorPosition: 0, TargetPosition: 8, TargetIsMember: true},
			want:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := request(tt.target)
			req.Actor.ID = tt.actorID

			assert.Equal(t, tt.want, restriction.Deny(req, tt.hierarchy, "snippet ban"))
		})
	}
}

func TestConditionFuncRepliesOnDenial(t *testing.T) {
	t.Parallel()

	check := restriction.NewConditionFunc(restriction.Hierarchy{OwnerID: ownerID}, zap.NewNop())

	reply := &recordingReplier{}
	assert.False(t, check(context.Background(), request(moderation.User{ID: actorID}), reply, "snippet unban"))
	assert.Equal(t, []string{"You cannot snippet unban yourself."}, reply.replies)

	reply = &recordingReplier{}
	assert.True(t, check(context.Background(), request(moderation.User{ID: targetID}), reply, "snippet unban"))
	assert.Empty(t, reply.replies)
}

func TestHighestRolePosition(t *testing.T) {
	t.Parallel()

	roles := []discord.Role{
		{ID: 10, Position: 0},
		{ID: 11, Position: 3},
		{ID: 12, Position: 7},
	}

	assert.Equal(t, 7, restriction.HighestRolePosition([]snowflake.ID{11, 12}, roles))
	assert.Equal(t, 3, restriction.HighestRolePosition([]snowflake.ID{11, 99}, roles))
	assert.Equal(t, 0, restriction.HighestRolePosition(nil, roles))
}
