package msgelem

import (
	"github.com/gotd/td/tg"
	"github.com/mediaindex/mediaindex-bot/common/i18n/i18nk"
	"github.com/mediaindex/mediaindex-bot/pkg/tcbdata"
)

// Translator renders a message key.
type Translator interface {
	T(key i18nk.Key, templateData ...map[string]any) string
}

func callbackButton(tr Translator, key i18nk.Key, data string) tg.KeyboardButtonClass {
	return &tg.KeyboardButtonCallback{Text: tr.T(key), Data: []byte(data)}
}

func row(buttons ...tg.KeyboardButtonClass) tg.KeyboardButtonRow {
	return tg.KeyboardButtonRow{Buttons: buttons}
}

// BuildWelcomeKeyboard returns management buttons for admins and help and
// community links for everyone else. Link buttons are left out when no
// link is configured.
func BuildWelcomeKeyboard(tr Translator, isAdmin bool, supportLink, groupLink string) *tg.ReplyInlineMarkup {
	if isAdmin {
		return &tg.ReplyInlineMarkup{Rows: []tg.KeyboardButtonRow{
			row(
				callbackButton(tr, i18nk.BtnAdminPanel, tcbdata.TypeAdminPanel),
				callbackButton(tr, i18nk.BtnStats, tcbdata.TypeBotStats),
			),
			row(
				callbackButton(tr, i18nk.BtnManageChannels, tcbdata.TypeManageChannels),
				callbackButton(tr, i18nk.BtnManageUsers, tcbdata.TypeManageUsers),
			),
			row(&tg.KeyboardButtonSwitchInline{
				Text:     tr.T(i18nk.BtnTestSearch),
				Query:    "test search",
				SamePeer: true,
			}),
		}}
	}

	rows := []tg.KeyboardButtonRow{
		row(
			callbackButton(tr, i18nk.BtnHelp, tcbdata.TypeHelpTutorial),
			callbackButton(tr, i18nk.BtnSearchTips, tcbdata.TypeSearchTips),
		),
	}
	links := make([]tg.KeyboardButtonClass, 0, 2)
	if supportLink != "" {
		links = append(links, &tg.KeyboardButtonURL{Text: tr.T(i18nk.BtnSupport), URL: supportLink})
	}
	if groupLink != "" {
		links = append(links, &tg.KeyboardButtonURL{Text: tr.T(i18nk.BtnUpdates), URL: groupLink})
	}
	if len(links) > 0 {
		rows = append(rows, row(links...))
	}
	rows = append(rows, row(&tg.KeyboardButtonSwitchInline{
		Text:     tr.T(i18nk.BtnTrySearch),
		Query:    "popular movies",
		SamePeer: true,
	}))
	return &tg.ReplyInlineMarkup{Rows: rows}
}

// BuildBackKeyboard is a single back button returning to the welcome view.
func BuildBackKeyboard(tr Translator) *tg.ReplyInlineMarkup {
	return &tg.ReplyInlineMarkup{Rows: []tg.KeyboardButtonRow{
		row(callbackButton(tr, i18nk.BtnBack, tcbdata.TypeBackToWelcome)),
	}}
}
