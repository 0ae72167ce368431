package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mediaindex/mediaindex-bot/client/bot/handlers/utils/msgelem"
	"github.com/mediaindex/mediaindex-bot/common/i18n/i18nk"
	"github.com/mediaindex/mediaindex-bot/common/utils/strutil"
	"github.com/mediaindex/mediaindex-bot/database"
	"github.com/mediaindex/mediaindex-bot/pkg/enums/adminlevel"
	"github.com/mediaindex/mediaindex-bot/search"
)

const maxListedResults = 10

// commandArgs drops the command itself from a message text.
func commandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) <= 1 {
		return nil
	}
	return fields[1:]
}

func displayChannel(id int64, username string) string {
	if username != "" {
		return "@" + strings.TrimPrefix(username, "@")
	}
	return strconv.FormatInt(id, 10)
}

func metaInt(meta map[string]any, key string) int64 {
	switch v := meta[key].(type) {
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case float64:
		return int64(v)
	}
	return 0
}

func formatSearchResults(tr msgelem.Translator, query string, results []search.Result) string {
	if len(results) == 0 {
		return tr.T(i18nk.SearchNoResults, map[string]any{"Query": query})
	}
	var sb strings.Builder
	sb.WriteString(tr.T(i18nk.SearchResultsHeader, map[string]any{"Query": query, "Count": len(results)}))
	sb.WriteString("\n")
	for i, r := range results[:min(len(results), maxListedResults)] {
		fmt.Fprintf(&sb, "\n%d. %s", i+1, strutil.Truncate(r.Title, 60))
		if ch, ok := r.Metadata["channel_name"].(string); ok && ch != "" {
			fmt.Fprintf(&sb, " · %s", ch)
		}
		if size := metaInt(r.Metadata, "file_size"); size > 0 {
			fmt.Fprintf(&sb, " · %s", humanize.IBytes(uint64(size)))
		}
	}
	if len(results) > maxListedResults {
		fmt.Fprintf(&sb, "\n… +%d", len(results)-maxListedResults)
	}
	return sb.String()
}

func formatChannelList(tr msgelem.Translator, channels []database.Channel) string {
	if len(channels) == 0 {
		return tr.T(i18nk.ChannelListEmpty)
	}
	var sb strings.Builder
	sb.WriteString(tr.T(i18nk.ChannelListHeader, map[string]any{"Count": len(channels)}))
	for _, ch := range channels {
		status := "✅"
		if !ch.IsActive {
			status = "❌"
		}
		monitor := ""
		if ch.IsActive && ch.IsMonitored {
			monitor = " 👁️"
		}
		name := ch.Name
		if name == "" {
			name = displayChannel(ch.ChannelID, ch.Username)
		}
		fmt.Fprintf(&sb, "\n%s %s (%d)%s", status, name, ch.ChannelID, monitor)
	}
	return sb.String()
}

func formatChannelInfo(tr msgelem.Translator, ch *database.Channel) string {
	username := "-"
	if ch.Username != "" {
		username = "@" + ch.Username
	}
	return tr.T(i18nk.ChannelInfo, map[string]any{
		"Name":            ch.Name,
		"ID":              ch.ChannelID,
		"Username":        username,
		"Active":          ch.IsActive,
		"Monitored":       ch.IsMonitored,
		"AutoIndex":       ch.AutoIndex,
		"AllowDuplicates": ch.AllowDuplicates,
		"FileTypes":       strings.Join(ch.FileTypesAllowed, ", "),
		"MaxFileSize":     humanize.IBytes(uint64(max(ch.MaxFileSize, 0))),
		"CreatedAt":       ch.CreatedAt.Format("2006-01-02 15:04"),
	})
}

func formatAdminList(tr msgelem.Translator, admins []database.User) string {
	var sb strings.Builder
	sb.WriteString(tr.T(i18nk.AdminListHeader, map[string]any{"Count": len(admins)}))
	for _, a := range admins {
		icon := "👤"
		if a.AdminLevel == adminlevel.SuperAdmin {
			icon = "👑"
		}
		name := a.Username
		if name == "" {
			name = strings.TrimSpace(a.FirstName + " " + a.LastName)
		}
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(&sb, "\n%s %s (%d) %s", icon, name, a.UserID, a.AdminLevel)
	}
	return sb.String()
}

// parseLevel reads an optional level argument. Anything but super_admin
// promotes to admin.
func parseLevel(args []string) adminlevel.Level {
	if len(args) == 0 {
		return adminlevel.Admin
	}
	if lvl, err := adminlevel.ParseLevel(args[0]); err == nil && lvl == adminlevel.SuperAdmin {
		return lvl
	}
	return adminlevel.Admin
}

func parseOnOff(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "on", "true", "yes", "1", "enable":
		return true, true
	case "off", "false", "no", "0", "disable":
		return false, true
	}
	return false, false
}

func formatRecentFiles(tr msgelem.Translator, files []database.MediaFile) string {
	if len(files) == 0 {
		return tr.T(i18nk.UnindexRecentEmpty)
	}
	var sb strings.Builder
	sb.WriteString(tr.T(i18nk.UnindexRecentHeader, map[string]any{"Count": len(files)}))
	sb.WriteString("\n")
	for _, f := range files {
		fmt.Fprintf(&sb, "\n%s · %s · %s", f.FileID, strutil.Truncate(f.FileName, 40), humanize.IBytes(uint64(max(f.FileSize, 0))))
	}
	return sb.String()
}
