package admin

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/tawseel-next/internal/http/handlers/shared"
	"github.com/tawseel-next/internal/http/response"
	"github.com/tawseel-next/internal/repository"
	"github.com/tawseel-next/internal/service"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type createSheetRequest struct {
	DriverID uint   `json:"driver_id" binding:"required"`
	OrderIDs []uint `json:"order_ids" binding:"required"`
}

var sheetRules = shared.ConcatRules(sheetErrorRules, orderErrorRules)

// GetDelegateSheets list sheets, newest first
func (h *Handler) GetDelegateSheets(c *gin.Context) {
	page, pageSize := shared.ParsePagination(c)
	filter := repository.DelegateSheetListFilter{
		Page:        page,
		PageSize:    pageSize,
		Barcode:     strings.TrimSpace(c.Query("barcode")),
		CreatedFrom: shared.ParseQueryDate(c.Query("created_from"), false),
		CreatedTo:   shared.ParseQueryDate(c.Query("created_to"), true),
	}
	if driverID := shared.ParseOptionalUint(c.Query("driver_id")); driverID != nil {
		filter.DriverID = *driverID
	}
	sheets, total, err := h.DelegateSheetService.List(filter)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.delegate_sheet_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, sheets, response.NewPagination(page, pageSize, total))
}

// CreateDelegateSheet assigns the orders to the driver and stores the sheet atomically
func (h *Handler) CreateDelegateSheet(c *gin.Context) {
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}
	var req createSheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	sheet, err := h.DelegateSheetService.CreateSheet(service.CreateSheetInput{
		DriverID: req.DriverID,
		OrderIDs: req.OrderIDs,
	}, userID)
	if err != nil {
		shared.RespondMapped(c, err, sheetRules, response.CodeInternal, "error.delegate_sheet_create_failed")
		return
	}
	response.Created(c, sheet)
}

// ScanDelegateSheetOrder resolves a scanned barcode for the driver being settled
func (h *Handler) ScanDelegateSheetOrder(c *gin.Context) {
	driverID, _ := strconv.ParseUint(c.Query("driver_id"), 10, 64)
	barcode := strings.TrimSpace(c.Query("barcode"))
	if barcode == "" {
		shared.RespondError(c, response.CodeBadRequest, "error.barcode_required", nil)
		return
	}
	result, err := h.DelegateSheetService.Scan(uint(driverID), barcode)
	if err != nil {
		shared.RespondMapped(c, err, sheetRules, response.CodeInternal, "error.order_fetch_failed")
		return
	}
	response.Success(c, result)
}

// GetDelegateSheet sheet with its orders
func (h *Handler) GetDelegateSheet(c *gin.Context) {
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	sheet, err := h.DelegateSheetService.Get(id)
	if err != nil {
		shared.RespondMapped(c, err, sheetRules, response.CodeInternal, "error.delegate_sheet_fetch_failed")
		return
	}
	response.Success(c, sheet)
}

// GetDelegateSheetQRCode QR code PNG of the sheet barcode
func (h *Handler) GetDelegateSheetQRCode(c *gin.Context) {
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	sheet, err := h.DelegateSheetService.Get(id)
	if err != nil {
		shared.RespondMapped(c, err, sheetRules, response.CodeInternal, "error.delegate_sheet_fetch_failed")
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "0"))
	png, err := service.QRCodePNG(sheet.Barcode, size)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.qrcode_failed", err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// PrintDelegateSheet printable workbook of the sheet
func (h *Handler) PrintDelegateSheet(c *gin.Context) {
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	sheet, err := h.DelegateSheetService.Get(id)
	if err != nil {
		shared.RespondMapped(c, err, sheetRules, response.CodeInternal, "error.delegate_sheet_fetch_failed")
		return
	}
	data, err := h.ExportService.SheetWorkbook(sheet)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.export_failed", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, sheet.Barcode))
	c.Data(http.StatusOK, xlsxContentType, data)
}
