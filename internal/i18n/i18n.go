// Package i18n holds the localized strings shown as floating combat text.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys.
const (
	KeyMiss    = "combat.miss"
	KeyHPSteal = "combat.hp_steal"
	KeyMPSteal = "combat.mp_steal"
)

var supportedTags = []language.Tag{
	language.English,
	language.Russian,
}

var tagMatcher = language.NewMatcher(supportedTags)

func init() {
	en := language.English
	message.SetString(en, KeyMiss, "miss")
	message.SetString(en, KeyHPSteal, "+%d HP")
	message.SetString(en, KeyMPSteal, "+%d MP")

	ru := language.Russian
	message.SetString(ru, KeyMiss, "промах")
	message.SetString(ru, KeyHPSteal, "+%d ОЗ")
	message.SetString(ru, KeyMPSteal, "+%d ОМ")
}

// Default returns the default language tag.
func Default() language.Tag {
	return language.English
}

// Printer returns a message printer for the supplied tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// Resolve maps a BCP 47 string onto the closest supported tag.
// Empty or malformed input yields Default().
func Resolve(lang string) language.Tag {
	if lang == "" {
		return Default()
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return Default()
	}
	_, idx, conf := tagMatcher.Match(tag)
	if conf == language.No {
		return Default()
	}
	return supportedTags[idx]
}
