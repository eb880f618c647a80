package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	LocaleAR = "ar"
	LocaleEN = "en"

	// DefaultLocale is used when the request carries no usable preference.
	DefaultLocale = LocaleAR
)

// ResolveLocale picks the response language from X-Locale, then Accept-Language.
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return DefaultLocale
	}
	if locale := NormalizeLocale(c.GetHeader("X-Locale")); locale != "" {
		return locale
	}
	for _, part := range strings.Split(c.GetHeader("Accept-Language"), ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if locale := NormalizeLocale(tag); locale != "" {
			return locale
		}
	}
	return DefaultLocale
}

// NormalizeLocale maps a language tag onto a supported locale, or "" when unsupported.
func NormalizeLocale(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	switch {
	case tag == "":
		return ""
	case tag == LocaleAR || strings.HasPrefix(tag, "ar-"):
		return LocaleAR
	case tag == LocaleEN || strings.HasPrefix(tag, "en-"):
		return LocaleEN
	default:
		return ""
	}
}

// T translates a message key. Unknown keys fall back to the default locale and then to the key.
func T(locale, key string) string {
	if table, ok := messages[NormalizeLocale(locale)]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf translates a key and formats it with args.
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}
