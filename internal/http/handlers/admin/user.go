package admin

import (
	"strings"

	"github.com/tawseel-next/internal/http/handlers/shared"
	"github.com/tawseel-next/internal/http/response"
	"github.com/tawseel-next/internal/repository"
	"github.com/tawseel-next/internal/service"

	"github.com/gin-gonic/gin"
)

type userRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (r userRequest) toInput() service.UserInput {
	return service.UserInput{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
		Role:     r.Role,
	}
}

// GetUsers list staff accounts
func (h *Handler) GetUsers(c *gin.Context) {
	page, pageSize := shared.ParsePagination(c)
	users, total, err := h.UserService.List(repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Role:     strings.TrimSpace(c.Query("role")),
		Search:   strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.user_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, users, response.NewPagination(page, pageSize, total))
}

// GetUser account detail
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	user, err := h.UserService.GetUser(id)
	if err != nil {
		shared.RespondMapped(c, err, userErrorRules, response.CodeInternal, "error.user_fetch_failed")
		return
	}
	response.Success(c, user)
}

// CreateUser adds a staff account
func (h *Handler) CreateUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	user, err := h.UserService.CreateUser(req.toInput())
	if err != nil {
		if respondWeakPassword(c, err) {
			return
		}
		shared.RespondMapped(c, err, userErrorRules, response.CodeInternal, "error.user_save_failed")
		return
	}
	response.Created(c, user)
}

// UpdateUser edits an account; an empty password keeps the current one
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	user, err := h.UserService.UpdateUser(id, req.toInput())
	if err != nil {
		if respondWeakPassword(c, err) {
			return
		}
		shared.RespondMapped(c, err, userErrorRules, response.CodeInternal, "error.user_save_failed")
		return
	}
	response.Success(c, user)
}

// DeleteUser removes an account other than the caller's
func (h *Handler) DeleteUser(c *gin.Context) {
	actorID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if err := h.UserService.DeleteUser(id, actorID); err != nil {
		shared.RespondMapped(c, err, userErrorRules, response.CodeInternal, "error.user_delete_failed")
		return
	}
	response.Success(c, nil)
}
