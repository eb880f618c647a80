package public

import (
	"net/http"
	"time"

	"github.com/tawseel-next/internal/constants"
	"github.com/tawseel-next/internal/http/handlers/shared"
	"github.com/tawseel-next/internal/http/response"
	"github.com/tawseel-next/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest staff login form
type LoginRequest struct {
	Email          string                       `json:"email" binding:"required"`
	Password       string                       `json:"password" binding:"required"`
	CaptchaPayload shared.CaptchaPayloadRequest `json:"captcha_payload"`
}

var captchaErrorRules = []shared.MappedError{
	{Target: service.ErrCaptchaRequired, Code: response.CodeBadRequest, Key: "error.captcha_required"},
	{Target: service.ErrCaptchaInvalid, Code: response.CodeBadRequest, Key: "error.captcha_invalid"},
	{Target: service.ErrCaptchaConfigInvalid, Code: response.CodeInternal, Key: "error.captcha_config_invalid"},
}

var loginErrorRules = []shared.MappedError{
	{Target: service.ErrInvalidCredentials, Code: response.CodeUnauthorized, Key: "error.login_invalid"},
}

// Login verifies the captcha and credentials, then issues the session token
// both in the body and as an HttpOnly cookie.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	if h.CaptchaService != nil {
		if err := h.CaptchaService.Verify(constants.CaptchaSceneLogin, req.CaptchaPayload.ToServicePayload()); err != nil {
			shared.RespondMapped(c, err, captchaErrorRules, response.CodeInternal, "error.captcha_verify_failed")
			return
		}
	}

	user, token, expiresAt, err := h.AuthService.Login(req.Email, req.Password)
	if err != nil {
		shared.RespondMapped(c, err, loginErrorRules, response.CodeInternal, "error.login_failed")
		return
	}

	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.sessionCookieName(), token, maxAge, "/", "", c.Request.TLS != nil, true)

	shared.RequestLog(c).Infow("user_login", "user_id", user.ID, "role", user.Role)
	response.Success(c, gin.H{
		"user":       user,
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
	})
}

func (h *Handler) sessionCookieName() string {
	if h.Config != nil && h.Config.JWT.CookieName != "" {
		return h.Config.JWT.CookieName
	}
	return shared.DefaultSessionCookie
}
