package shared

import (
	"errors"

	"github.com/tawseel-next/internal/i18n"

	"github.com/gin-gonic/gin"
)

type keyedError interface {
	Key() string
	Args() []interface{}
}

// PasswordPolicyMessage localized text for a password policy violation
func PasswordPolicyMessage(c *gin.Context, err error) (string, bool) {
	var keyed keyedError
	if !errors.As(err, &keyed) {
		return "", false
	}
	return i18n.Sprintf(i18n.ResolveLocale(c), keyed.Key(), keyed.Args()...), true
}
