package i18n

import (
	"strings"
	"testing"

	"github.com/mediaindex/mediaindex-bot/common/i18n/i18nk"
)

func TestT(t *testing.T) {
	l, err := New("en")
	if err != nil {
		t.Fatal(err)
	}
	got := l.T(i18nk.WelcomeUser, map[string]any{"Name": "Ana"})
	if !strings.Contains(got, "Welcome to MediaIndex, Ana!") {
		t.Fatalf("WelcomeUser = %q", got)
	}
	got = l.T(i18nk.AdminPromoted, map[string]any{"UserID": 42}, map[string]any{"Level": "admin"})
	if got != "👑 User 42 is now admin." {
		t.Fatalf("AdminPromoted = %q", got)
	}
	if got := l.T(i18nk.Key("does_not_exist")); got != "does_not_exist" {
		t.Fatalf("unknown key = %q", got)
	}
}

func TestUnsupportedLanguageFallsBack(t *testing.T) {
	l, err := New("fr")
	if err != nil {
		t.Fatal(err)
	}
	if got := l.T(i18nk.BtnBack); got != "🔙 Back" {
		t.Fatalf("BtnBack = %q", got)
	}
}

func TestEveryKeyIsTranslated(t *testing.T) {
	l, err := New("en")
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []i18nk.Key{
		i18nk.CmdStart, i18nk.HelpText, i18nk.SearchTips, i18nk.AdminPanel, i18nk.StatsText,
		i18nk.ChannelInfo, i18nk.ChannelUsage, i18nk.AdminUsage, i18nk.ErrorGeneral,
		i18nk.WelcomeAdminFirst, i18nk.WelcomeAdminReturning, i18nk.BtnTrySearch,
	} {
		if got := l.T(key); got == string(key) {
			t.Errorf("missing translation for %s", key)
		}
	}
}
