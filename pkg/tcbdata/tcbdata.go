// Package tcbdata names the callback payloads carried by inline buttons.
package tcbdata

const (
	TypeHelpTutorial   = "help_tutorial"
	TypeSearchTips     = "search_tips"
	TypeAdminPanel     = "admin_panel"
	TypeBotStats       = "bot_stats"
	TypeManageChannels = "manage_channels"
	TypeManageUsers    = "manage_users"
	TypeBackToWelcome  = "back_to_welcome"
)

// Types lists every payload the bot answers.
var Types = []string{
	TypeHelpTutorial,
	TypeSearchTips,
	TypeAdminPanel,
	TypeBotStats,
	TypeManageChannels,
	TypeManageUsers,
	TypeBackToWelcome,
}
