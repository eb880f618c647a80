package admin

import (
	"errors"
	"net/http"

	"github.com/tawseel-next/internal/http/handlers/shared"
	"github.com/tawseel-next/internal/http/response"
	"github.com/tawseel-next/internal/service"

	"github.com/gin-gonic/gin"
)

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// GetMe current user with its effective permissions
func (h *Handler) GetMe(c *gin.Context) {
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}
	user, err := h.UserService.GetUser(userID)
	if err != nil {
		shared.RespondMapped(c, err, userErrorRules, response.CodeInternal, "error.user_fetch_failed")
		return
	}
	policies, err := h.AuthzService.GetUserPolicies(userID)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{
		"user":     user,
		"policies": policies,
	})
}

// Logout revokes every token of the current user and clears the session cookie
func (h *Handler) Logout(c *gin.Context) {
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}
	if err := h.AuthService.Logout(userID); err != nil {
		shared.RespondMapped(c, err, userErrorRules, response.CodeInternal, "error.logout_failed")
		return
	}
	clearSessionCookie(c, h.sessionCookieName())
	response.Success(c, nil)
}

// ChangePassword replaces the current user's password and revokes old tokens
func (h *Handler) ChangePassword(c *gin.Context) {
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if err := h.AuthService.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrWeakPassword) && respondWeakPassword(c, err) {
			return
		}
		shared.RespondMapped(c, err, userErrorRules, response.CodeInternal, "error.password_change_failed")
		return
	}
	clearSessionCookie(c, h.sessionCookieName())
	response.Success(c, nil)
}

func (h *Handler) sessionCookieName() string {
	if h.Config != nil && h.Config.JWT.CookieName != "" {
		return h.Config.JWT.CookieName
	}
	return shared.DefaultSessionCookie
}

func clearSessionCookie(c *gin.Context, name string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, "", -1, "/", "", false, true)
}
