package admin

import (
	"strings"

	"github.com/tawseel-next/internal/http/handlers/shared"
	"github.com/tawseel-next/internal/http/response"
	"github.com/tawseel-next/internal/repository"
	"github.com/tawseel-next/internal/service"

	"github.com/gin-gonic/gin"
)

type driverRequest struct {
	Name          string   `json:"name"`
	Phone         string   `json:"phone"`
	IDNumber      string   `json:"id_number"`
	AssignedAreas []string `json:"assigned_areas"`
}

func (r driverRequest) toInput() service.DriverInput {
	return service.DriverInput{
		Name:          r.Name,
		Phone:         r.Phone,
		IDNumber:      r.IDNumber,
		AssignedAreas: r.AssignedAreas,
	}
}

// GetDrivers list drivers, filterable by area
func (h *Handler) GetDrivers(c *gin.Context) {
	page, pageSize := shared.ParsePagination(c)
	drivers, total, err := h.DriverService.List(repository.DriverListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
		Area:     strings.TrimSpace(c.Query("area")),
	})
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.driver_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, drivers, response.NewPagination(page, pageSize, total))
}

// GetDriver driver detail
func (h *Handler) GetDriver(c *gin.Context) {
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	driver, err := h.DriverService.GetDriver(id)
	if err != nil {
		shared.RespondMapped(c, err, driverErrorRules, response.CodeInternal, "error.driver_fetch_failed")
		return
	}
	response.Success(c, driver)
}

// CreateDriver adds a driver
func (h *Handler) CreateDriver(c *gin.Context) {
	var req driverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	driver, err := h.DriverService.CreateDriver(req.toInput())
	if err != nil {
		shared.RespondMapped(c, err, driverErrorRules, response.CodeInternal, "error.driver_save_failed")
		return
	}
	response.Created(c, driver)
}

// UpdateDriver edits a driver
func (h *Handler) UpdateDriver(c *gin.Context) {
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req driverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	driver, err := h.DriverService.UpdateDriver(id, req.toInput())
	if err != nil {
		shared.RespondMapped(c, err, driverErrorRules, response.CodeInternal, "error.driver_save_failed")
		return
	}
	response.Success(c, driver)
}

// DeleteDriver removes a driver without orders or sheets
func (h *Handler) DeleteDriver(c *gin.Context) {
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if err := h.DriverService.DeleteDriver(id); err != nil {
		shared.RespondMapped(c, err, driverErrorRules, response.CodeInternal, "error.driver_delete_failed")
		return
	}
	response.Success(c, nil)
}
