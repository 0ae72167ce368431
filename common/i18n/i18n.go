package i18n

import (
	"embed"
	"fmt"
	"maps"

	"github.com/goccy/go-yaml"
	"github.com/mediaindex/mediaindex-bot/common/i18n/i18nk"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locale/*.yaml
var localesFS embed.FS

// Localizer renders messages for one configured language. Missing
// translations fall back to English.
type Localizer struct {
	localizer *i18n.Localizer
}

func New(lang string) (*Localizer, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	files, err := localesFS.ReadDir("locale")
	if err != nil {
		return nil, fmt.Errorf("failed to read locale directory: %w", err)
	}
	for _, file := range files {
		if _, err := bundle.LoadMessageFileFS(localesFS, "locale/"+file.Name()); err != nil {
			return nil, fmt.Errorf("failed to load message file %s: %w", file.Name(), err)
		}
	}
	if lang == "" {
		lang = "en"
	}
	return &Localizer{localizer: i18n.NewLocalizer(bundle, lang)}, nil
}

// T renders key with the merged template data. Unknown keys render as the
// key itself.
func (l *Localizer) T(key i18nk.Key, templateData ...map[string]any) string {
	data := make(map[string]any)
	for _, d := range templateData {
		maps.Copy(data, d)
	}
	msg, err := l.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    string(key),
		TemplateData: data,
	})
	if err != nil {
		return string(key)
	}
	return msg
}
