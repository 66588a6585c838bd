package moderation

import (
	"context"
	"fmt"

	"github.com/robalyx/casebot/internal/database/types/enum"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Action describes one side of a toggled restriction.
type Action struct {
	// Name is the command name.
	Name string
	// Restriction is the case type that puts the restriction in effect.
	Restriction enum.CaseType
	// Lifts is true when the action removes the restriction instead of applying it.
	Lifts bool
	// Label names the action in condition checks and failure messages.
	Label string
	// PastTense names the action in direct messages.
	PastTense string
	// NoopMessage is replied when the restriction is already in the requested state.
	NoopMessage string
}

// SnippetBan prevents a user from creating snippets.
var SnippetBan = Action{ //nolint:gochecknoglobals // -
	Name:        "snippetban",
	Restriction: enum.CaseTypeSnippetBan,
	Label:       "snippet ban",
	PastTense:   "snippet banned",
	NoopMessage: "User is already snippet banned.",
}

// SnippetUnban lifts a snippet ban.
var SnippetUnban = Action{ //nolint:gochecknoglobals // -
	Name:        "snippetunban",
	Restriction: enum.CaseTypeSnippetBan,
	Lifts:       true,
	Label:       "snippet unban",
	PastTense:   "snippet unbanned",
	NoopMessage: "User is not snippet banned.",
}

// CaseType returns the case type recorded by the action.
func (a Action) CaseType() enum.CaseType {
	if !a.Lifts {
		return a.Restriction
	}

	lift, _ := a.Restriction.Inverse()

	return lift
}

// Workflow applies an action: check state, authorize, record, notify, report.
type Workflow struct {
	action   Action
	cases    CaseStore
	status   *StatusEvaluator
	check    ConditionFunc
	notifier Notifier
	tracer   trace.Tracer
	logger   *zap.Logger
}

// NewWorkflow creates a workflow for action.
func NewWorkflow(
	action Action, cases CaseStore, check ConditionFunc, notifier Notifier, logger *zap.Logger,
) *Workflow {
	return &Workflow{
		action:   action,
		cases:    cases,
		status:   NewStatusEvaluator(cases),
		check:    check,
		notifier: notifier,
		tracer:   otel.Tracer("github.com/robalyx/casebot/internal/moderation"),
		logger:   logger.Named(action.Name),
	}
}

// Action returns the action the workflow applies.
func (w *Workflow) Action() Action {
	return w.action
}

// Execute runs the action for req. Every failure is reported through reply
// and reflected in the returned Result; nothing is returned as an error.
func (w *Workflow) Execute(ctx context.Context, req *Request, reply Replier) Result {
	ctx, span := w.tracer.Start(ctx, w.action.Name, trace.WithAttributes(
		attribute.Int64("guild.id", int64(req.GuildID)),
		attribute.Int64("actor.id", int64(req.Actor.ID)),
		attribute.Int64("target.id", int64(req.Target.ID)),
		attribute.Bool("silent", req.Silent),
	))
	defer span.End()

	result := w.execute(ctx, req, reply)

	span.SetAttributes(attribute.String("status", result.Status.String()))
	if result.Err != nil {
		span.RecordError(result.Err)
		span.SetStatus(codes.Error, result.Err.Error())
	}

	return result
}

func (w *Workflow) execute(ctx context.Context, req *Request, reply Replier) Result {
	liftType, _ := w.action.Restriction.Inverse()

	banned, err := w.status.IsBanned(ctx, req.GuildID, req.Target.ID, w.action.Restriction, liftType)
	if err != nil {
		w.logger.Error("Failed to check restriction state",
			zap.Uint64("guildID", req.GuildID),
			zap.Uint64("targetID", req.Target.ID),
			zap.Error(err))
		w.reply(ctx, reply, fmt.Sprintf("Failed to check %s status for %s. %v", w.action.Label, req.Target, err))

		return Result{Status: StatusFailed, Err: err}
	}

	// Applying needs the restriction lifted, lifting needs it applied
	if banned != w.action.Lifts {
		w.reply(ctx, reply, w.action.NoopMessage)
		return Result{Status: StatusAlreadyApplied}
	}

	if !w.check(ctx, req, reply, w.action.Label) {
		return Result{Status: StatusDenied}
	}

	reason := req.ReasonOrDefault()
	caseType := w.action.CaseType()

	record, err := w.cases.InsertCase(ctx, req.Target.ID, req.Actor.ID, caseType, reason, req.GuildID)
	if err != nil {
		w.logger.Error("Failed to insert case",
			zap.Uint64("guildID", req.GuildID),
			zap.Uint64("targetID", req.Target.ID),
			zap.String("type", caseType.String()),
			zap.Error(err))
		w.reply(ctx, reply, fmt.Sprintf("Failed to %s %s. %v", w.action.Label, req.Target, err))

		return Result{Status: StatusFailed, Reason: reason, Err: err}
	}

	dmSent := false
	if !req.Silent {
		dmSent = w.notifier.SendDirectMessage(ctx, req, reason, w.action.PastTense)
	}

	w.logger.Info("Recorded case",
		zap.Uint64("guildID", req.GuildID),
		zap.Int64("caseNumber", record.CaseNumber),
		zap.Uint64("targetID", req.Target.ID),
		zap.Uint64("moderatorID", req.Actor.ID),
		zap.Bool("dmSent", dmSent))

	err = reply.ReportCase(ctx, &CaseReport{
		Type:       caseType,
		CaseNumber: record.CaseNumber,
		Reason:     reason,
		Target:     req.Target,
		Moderator:  req.Actor,
		DMSent:     dmSent,
		Silent:     req.Silent,
	})
	if err != nil {
		w.logger.Error("Failed to report case", zap.Int64("caseNumber", record.CaseNumber), zap.Error(err))
	}

	return Result{Status: StatusRecorded, Case: record, Reason: reason, Notified: dmSent}
}

// reply sends content and logs delivery failures.
func (w *Workflow) reply(ctx context.Context, reply Replier, content string) {
	if err := reply.Reply(ctx, content); err != nil {
		w.logger.Error("Failed to send reply", zap.Error(err))
	}
}
