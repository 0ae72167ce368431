package tgutil

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/celestix/gotgproto/ext"
	"github.com/duke-git/lancet/v2/validator"
)

// NormalizeChannelID strips the Bot API "-100" prefix so ids typed by
// admins match the bare ids seen on incoming updates.
func NormalizeChannelID(id int64) int64 {
	s := strconv.FormatInt(id, 10)
	if rest, ok := strings.CutPrefix(s, "-100"); ok && rest != "" {
		if bare, err := strconv.ParseInt(rest, 10, 64); err == nil {
			return bare
		}
	}
	if id < 0 {
		return -id
	}
	return id
}

// ParseChatID accepts a numeric id or a public @username.
func ParseChatID(ctx *ext.Context, idOrUsername string) (int64, string, error) {
	idOrUsername = strings.TrimPrefix(strings.TrimSpace(idOrUsername), "@")
	if validator.IsIntStr(idOrUsername) {
		id, err := strconv.ParseInt(idOrUsername, 10, 64)
		if err != nil {
			return 0, "", err
		}
		return NormalizeChannelID(id), "", nil
	}
	chat, err := ctx.ResolveUsername(idOrUsername)
	if err != nil {
		return 0, "", err
	}
	if chat == nil || chat.GetID() == 0 {
		return 0, "", fmt.Errorf("no chat found for username: %s", idOrUsername)
	}
	return chat.GetID(), idOrUsername, nil
}
