package constants

const (
	// Commands.
	SnippetBanCommandName   = "snippetban"
	SnippetUnbanCommandName = "snippetunban"

	// Command options.
	MemberOptionName = "member"
	ReasonOptionName = "reason"
	SilentOptionName = "silent"

	// Permission levels.
	MaxPermissionLevel        = 7
	ModerationPermissionLevel = 3

	// Embeds.
	DefaultEmbedColor  = 0x312D2B
	RestrictEmbedColor = 0xE74C3C
	LiftEmbedColor     = 0x2ECC71

	// Common.
	NotApplicable = "N/A"
)
