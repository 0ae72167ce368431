// Package i18nk lists the message ids of the locale files.
package i18nk

type Key string

const (
	CmdStart   Key = "cmd_start"
	CmdIntro   Key = "cmd_intro"
	CmdHelp    Key = "cmd_help"
	CmdSearch  Key = "cmd_search"
	CmdChannel Key = "cmd_channel"
	CmdAdmin   Key = "cmd_admin"
	CmdStats   Key = "cmd_stats"
	CmdUnindex Key = "cmd_unindex"

	WelcomeAdminFirst     Key = "welcome_admin_first"
	WelcomeAdminReturning Key = "welcome_admin_returning"
	WelcomeUser           Key = "welcome_user"
	HelpText              Key = "help_text"
	SearchTips            Key = "search_tips"
	AdminPanel            Key = "admin_panel"
	ManageChannels        Key = "manage_channels"
	ManageUsers           Key = "manage_users"

	ErrorGeneral     Key = "error_general"
	ErrorSearch      Key = "error_search"
	ErrorPermission  Key = "error_permission"
	ErrorRateLimit   Key = "error_rate_limit"
	ErrorUnavailable Key = "error_unavailable"

	SearchUsage         Key = "search_usage"
	SearchNoResults     Key = "search_no_results"
	SearchResultsHeader Key = "search_results_header"

	ChannelUsage           Key = "channel_usage"
	ChannelResolveFailed   Key = "channel_resolve_failed"
	ChannelAdded           Key = "channel_added"
	ChannelReactivated     Key = "channel_reactivated"
	ChannelAlreadyActive   Key = "channel_already_active"
	ChannelRemoved         Key = "channel_removed"
	ChannelNotFound        Key = "channel_not_found"
	ChannelListEmpty       Key = "channel_list_empty"
	ChannelListHeader      Key = "channel_list_header"
	ChannelInfo            Key = "channel_info"
	ChannelMonitorUsage    Key = "channel_monitor_usage"
	ChannelMonitorOn       Key = "channel_monitor_on"
	ChannelMonitorOff      Key = "channel_monitor_off"
	ChannelSettingsUsage   Key = "channel_settings_usage"
	ChannelSettingsUpdated Key = "channel_settings_updated"
	ChannelSettingsInvalid Key = "channel_settings_invalid"

	AdminUsage         Key = "admin_usage"
	AdminListHeader    Key = "admin_list_header"
	AdminInvalidUserID Key = "admin_invalid_user_id"
	AdminPromoted      Key = "admin_promoted"
	AdminDemoted       Key = "admin_demoted"
	AdminNotAdmin      Key = "admin_not_admin"
	AdminSuperOnly     Key = "admin_super_only"

	UnindexRecentEmpty  Key = "unindex_recent_empty"
	UnindexRecentHeader Key = "unindex_recent_header"
	UnindexDone         Key = "unindex_done"
	UnindexNotFound     Key = "unindex_not_found"

	StatsText Key = "stats_text"

	BtnAdminPanel     Key = "btn_admin_panel"
	BtnStats          Key = "btn_stats"
	BtnManageChannels Key = "btn_manage_channels"
	BtnManageUsers    Key = "btn_manage_users"
	BtnTestSearch     Key = "btn_test_search"
	BtnHelp           Key = "btn_help"
	BtnSearchTips     Key = "btn_search_tips"
	BtnSupport        Key = "btn_support"
	BtnUpdates        Key = "btn_updates"
	BtnTrySearch      Key = "btn_try_search"
	BtnBack           Key = "btn_back"
)
