package enum

// CaseType identifies the moderation action a case records.
//
//go:generate go tool enumer -type=CaseType -trimprefix=CaseType -transform=upper
type CaseType int

const (
	// CaseTypeBan records a guild ban.
	CaseTypeBan CaseType = iota
	// CaseTypeUnban records the removal of a guild ban.
	CaseTypeUnban
	// CaseTypeHackban records a ban of a user who is not a guild member.
	CaseTypeHackban
	// CaseTypeTempban records a ban with an expiry.
	CaseTypeTempban
	// CaseTypeKick records a kick.
	CaseTypeKick
	// CaseTypeTimeout records a communication timeout.
	CaseTypeTimeout
	// CaseTypeUntimeout records the early removal of a timeout.
	CaseTypeUntimeout
	// CaseTypeWarn records a warning.
	CaseTypeWarn
	// CaseTypeJail records a jail.
	CaseTypeJail
	// CaseTypeUnjail records the release from jail.
	CaseTypeUnjail
	// CaseTypeSnippetBan records a restriction on creating snippets.
	CaseTypeSnippetBan
	// CaseTypeSnippetUnban lifts one snippet ban.
	CaseTypeSnippetUnban
	// CaseTypePollBan records a restriction on creating polls.
	CaseTypePollBan
	// CaseTypePollUnban lifts one poll ban.
	CaseTypePollUnban
)

// Inverse returns the case type that undoes t, and false if t has no inverse.
func (t CaseType) Inverse() (CaseType, bool) {
	switch t {
	case CaseTypeBan, CaseTypeHackban, CaseTypeTempban:
		return CaseTypeUnban, true
	case CaseTypeTimeout:
		return CaseTypeUntimeout, true
	case CaseTypeJail:
		return CaseTypeUnjail, true
	case CaseTypeSnippetBan:
		return CaseTypeSnippetUnban, true
	case CaseTypePollBan:
		return CaseTypePollUnban, true
	default:
		return t, false
	}
}

// ToggleInverse returns the case type that lifts t when the two form a one-to-one
// toggle, so the state can be derived by counting cases of each type. Bans share
// UNBAN between three types and timeouts expire on their own, so neither qualifies.
func (t CaseType) ToggleInverse() (CaseType, bool) {
	switch t {
	case CaseTypeJail, CaseTypeSnippetBan, CaseTypePollBan:
		return t.Inverse()
	default:
		return t, false
	}
}
