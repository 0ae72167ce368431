package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mediaindex/mediaindex-bot/common/cache"
	"github.com/mediaindex/mediaindex-bot/config"
	"github.com/mediaindex/mediaindex-bot/database"
	"github.com/mediaindex/mediaindex-bot/search"
	"github.com/spf13/cobra"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	nameStyle  = lipgloss.NewStyle().Width(14)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB86C"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)

type checkLevel int

const (
	checkOK checkLevel = iota
	checkWarn
	checkFail
)

type checkResult struct {
	Name   string
	Level  checkLevel
	Detail string
}

func renderReport(results []checkResult) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("MediaIndex configuration check"))
	sb.WriteString("\n\n")
	failed := 0
	for _, r := range results {
		mark := okStyle.Render("✔")
		switch r.Level {
		case checkWarn:
			mark = warnStyle.Render("!")
		case checkFail:
			mark = failStyle.Render("✘")
			failed++
		}
		fmt.Fprintf(&sb, "%s %s %s\n", mark, nameStyle.Render(r.Name), r.Detail)
	}
	sb.WriteString("\n")
	if failed > 0 {
		sb.WriteString(failStyle.Render(fmt.Sprintf("%d check(s) failed", failed)))
	} else {
		sb.WriteString(okStyle.Render("All required checks passed"))
	}
	sb.WriteString("\n")
	return sb.String()
}

func mongoCheck(st database.ConnectionStatus) checkResult {
	if !st.Connected {
		return checkResult{"MongoDB", checkFail, st.Error}
	}
	detail := fmt.Sprintf("database %s, %d collection(s)", st.DatabaseName, len(st.Collections))
	if st.ServerVersion != "" {
		detail += ", server " + st.ServerVersion
	}
	return checkResult{"MongoDB", checkOK, detail}
}

func cacheCheck(st cache.Status) checkResult {
	if st.Fallback {
		return checkResult{"Cache", checkWarn, "redis unreachable, using in-memory cache"}
	}
	return checkResult{"Cache", checkOK, string(st.Mode)}
}

func searchCheck(st search.Status) checkResult {
	if st.Fallback {
		return checkResult{"Search", checkWarn, fmt.Sprintf("%s unavailable, using %s", st.Requested, st.Active)}
	}
	return checkResult{"Search", checkOK, string(st.Active)}
}

func settingsChecks(cfg *config.Config) []checkResult {
	results := []checkResult{
		{"Config", checkOK, fmt.Sprintf("super admin %d", cfg.SuperAdminID)},
		{"Media", checkOK, fmt.Sprintf("max %s, %d extension(s)", humanize.IBytes(uint64(max(cfg.Media.MaxFileSize, 0))), len(cfg.Media.AllowedExtensions))},
	}
	if cfg.Telegram.AppID == 0 || cfg.Telegram.AppHash == "" {
		results = append(results, checkResult{"Telegram", checkFail, "telegram.app_id and telegram.app_hash are required to log in"})
	} else {
		results = append(results, checkResult{"Telegram", checkOK, fmt.Sprintf("app %d", cfg.Telegram.AppID)})
	}
	if cfg.Unsplash.AccessKey == "" {
		results = append(results, checkResult{"Posters", checkWarn, "no unsplash access key, the fallback poster is used"})
	} else {
		results = append(results, checkResult{"Posters", checkOK, "unsplash"})
	}
	if cfg.RateLimit.Enabled {
		results = append(results, checkResult{"Rate limit", checkOK, fmt.Sprintf("%d request(s) per %s", cfg.RateLimit.Requests, cfg.RateLimit.WindowDuration())})
	} else {
		results = append(results, checkResult{"Rate limit", checkWarn, "disabled"})
	}
	return results
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configuration and test the backends",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cfg, closer, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		defer closer.Close()

		results := settingsChecks(cfg)
		gw := database.NewGateway(cfg.MongoDB)
		connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		if err := gw.Connect(connectCtx); err != nil {
			results = append(results, checkResult{"MongoDB", checkFail, err.Error()})
		} else {
			defer gw.Disconnect(ctx)
			results = append(results, mongoCheck(gw.TestConnection(connectCtx)))
		}

		kv := cache.New(ctx, cfg.Redis, cfg.Cache)
		defer kv.Close()
		results = append(results, cacheCheck(kv.Status(ctx)))

		svc, err := search.New(ctx, cfg, gw)
		if err != nil {
			results = append(results, checkResult{"Search", checkFail, err.Error()})
		} else {
			defer svc.Close()
			results = append(results, searchCheck(svc.Status()))
		}

		fmt.Print(renderReport(results))
		fmt.Println(helpStyle.Render("Run `mediaindex initdb` to create collections and indexes."))
		for _, r := range results {
			if r.Level == checkFail {
				return fmt.Errorf("configuration check failed")
			}
		}
		return nil
	},
}
