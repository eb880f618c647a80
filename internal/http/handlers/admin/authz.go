package admin

import (
	"net/url"
	"strings"

	"github.com/tawseel-next/internal/http/handlers/shared"
	"github.com/tawseel-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

type authzPolicyRequest struct {
	Role   string `json:"role" binding:"required"`
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

// ListAuthzRoles every role known to the enforcer
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	response.Success(c, roles)
}

// GetAuthzRolePolicies rules granted to one role
func (h *Handler) GetAuthzRolePolicies(c *gin.Context) {
	role := decodeRoleParam(c.Param("role"))
	if role == "" {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	policies, err := h.AuthzService.GetRolePolicies(role)
	if err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.role_invalid", err)
		return
	}
	response.Success(c, policies)
}

// GrantAuthzPolicy adds a rule to a role
func (h *Handler) GrantAuthzPolicy(c *gin.Context) {
	var req authzPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if err := h.AuthzService.GrantRolePolicy(req.Role, req.Object, req.Action); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.role_invalid", err)
		return
	}
	shared.RequestLog(c).Infow("authz_policy_granted", "role", req.Role, "object", req.Object, "action", req.Action)
	response.Success(c, nil)
}

// RevokeAuthzPolicy removes a rule from a role
func (h *Handler) RevokeAuthzPolicy(c *gin.Context) {
	var req authzPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if err := h.AuthzService.RevokeRolePolicy(req.Role, req.Object, req.Action); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.role_invalid", err)
		return
	}
	shared.RequestLog(c).Infow("authz_policy_revoked", "role", req.Role, "object", req.Object, "action", req.Action)
	response.Success(c, nil)
}

// GetAuthzUserPolicies roles and effective rules of a user
func (h *Handler) GetAuthzUserPolicies(c *gin.Context) {
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	roles, err := h.AuthzService.GetUserRoles(id)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	policies, err := h.AuthzService.GetUserPolicies(id)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{
		"user_id":  id,
		"roles":    roles,
		"policies": policies,
	})
}

func decodeRoleParam(value string) string {
	decoded, err := url.PathUnescape(value)
	if err != nil {
		return strings.TrimSpace(value)
	}
	return strings.TrimSpace(decoded)
}
