package admin

import (
	"strings"

	"github.com/tawseel-next/internal/http/handlers/shared"
	"github.com/tawseel-next/internal/http/response"
	"github.com/tawseel-next/internal/repository"

	"github.com/gin-gonic/gin"
)

type cityRequest struct {
	Name string `json:"name"`
}

// GetCities list cities
func (h *Handler) GetCities(c *gin.Context) {
	page, pageSize := shared.ParsePagination(c)
	cities, total, err := h.CityService.List(repository.CityListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.city_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, cities, response.NewPagination(page, pageSize, total))
}

// GetCity city detail
func (h *Handler) GetCity(c *gin.Context) {
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	city, err := h.CityService.GetCity(id)
	if err != nil {
		shared.RespondMapped(c, err, cityErrorRules, response.CodeInternal, "error.city_fetch_failed")
		return
	}
	response.Success(c, city)
}

// CreateCity adds a city; names are unique ignoring case
func (h *Handler) CreateCity(c *gin.Context) {
	var req cityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	city, err := h.CityService.CreateCity(req.Name)
	if err != nil {
		shared.RespondMapped(c, err, cityErrorRules, response.CodeInternal, "error.city_save_failed")
		return
	}
	response.Created(c, city)
}

// UpdateCity renames a city
func (h *Handler) UpdateCity(c *gin.Context) {
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req cityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	city, err := h.CityService.UpdateCity(id, req.Name)
	if err != nil {
		shared.RespondMapped(c, err, cityErrorRules, response.CodeInternal, "error.city_save_failed")
		return
	}
	response.Success(c, city)
}

// DeleteCity removes a city
func (h *Handler) DeleteCity(c *gin.Context) {
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if err := h.CityService.DeleteCity(id); err != nil {
		shared.RespondMapped(c, err, cityErrorRules, response.CodeInternal, "error.city_delete_failed")
		return
	}
	response.Success(c, nil)
}
