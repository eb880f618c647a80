package admin

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/tawseel-next/internal/http/handlers/shared"
	"github.com/tawseel-next/internal/http/response"
	"github.com/tawseel-next/internal/i18n"
	"github.com/tawseel-next/internal/models"
	"github.com/tawseel-next/internal/presenter"
	"github.com/tawseel-next/internal/repository"
	"github.com/tawseel-next/internal/service"

	"github.com/gin-gonic/gin"
)

const orderLabelSize = 256

// OrderRequest create/update body
type OrderRequest struct {
	Barcode             string `json:"barcode"`
	RecipientName       string `json:"recipient_name"`
	RecipientPhone1     string `json:"recipient_phone1"`
	RecipientPhone2     string `json:"recipient_phone2"`
	RecipientCity       string `json:"recipient_city"`
	RecipientAddress    string `json:"recipient_address"`
	CODAmount           string `json:"cod_amount"`
	Status              string `json:"status"`
	NumberOfPieces      int    `json:"number_of_pieces"`
	OrderDescription    string `json:"order_description"`
	SpecialInstructions string `json:"special_instructions"`
	SenderReference     string `json:"sender_reference"`
	OrderDate           string `json:"order_date"`
	DriverID            *uint  `json:"driver_id"`
}

func (r OrderRequest) toInput() service.OrderInput {
	return service.OrderInput{
		Barcode:             r.Barcode,
		RecipientName:       r.RecipientName,
		RecipientPhone1:     r.RecipientPhone1,
		RecipientPhone2:     r.RecipientPhone2,
		RecipientCity:       r.RecipientCity,
		RecipientAddress:    r.RecipientAddress,
		CODAmount:           r.CODAmount,
		Status:              r.Status,
		NumberOfPieces:      r.NumberOfPieces,
		OrderDescription:    r.OrderDescription,
		SpecialInstructions: r.SpecialInstructions,
		SenderReference:     r.SenderReference,
		OrderDate:           service.ParseOrderDate(r.OrderDate),
		DriverID:            r.DriverID,
	}
}

type orderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type orderDriverRequest struct {
	DriverID *uint `json:"driver_id"`
}

type bulkStatusRequest struct {
	OrderIDs []uint   `json:"order_ids"`
	Barcodes []string `json:"barcodes"`
	Status   string   `json:"status" binding:"required"`
}

type bulkAssignRequest struct {
	OrderIDs []uint `json:"order_ids" binding:"required"`
	DriverID uint   `json:"driver_id" binding:"required"`
}

// OrderView order plus presentation fields
type OrderView struct {
	models.Order
	StatusLabel string `json:"status_label"`
	StatusColor string `json:"status_color"`
	CODDisplay  string `json:"cod_display"`
}

func (h *Handler) orderView(c *gin.Context, order *models.Order) OrderView {
	view := OrderView{
		Order:       *order,
		StatusLabel: presenter.StatusLabel(i18n.ResolveLocale(c), order.Status),
		StatusColor: presenter.StatusColorClass(order.Status),
		CODDisplay:  order.CODAmount.String(),
	}
	if h.Presenter != nil {
		view.CODDisplay = h.Presenter.FormatCurrency(order.CODAmount.String())
	}
	return view
}

// parseOrderListFilter reads list query parameters; driver_id=none selects unassigned orders
func parseOrderListFilter(c *gin.Context) repository.OrderListFilter {
	page, pageSize := shared.ParsePagination(c)
	filter := repository.OrderListFilter{
		Page:        page,
		PageSize:    pageSize,
		Status:      strings.TrimSpace(c.Query("status")),
		City:        strings.TrimSpace(c.Query("city")),
		Barcode:     strings.TrimSpace(c.Query("barcode")),
		Search:      strings.TrimSpace(c.Query("search")),
		CreatedFrom: shared.ParseQueryDate(c.Query("created_from"), false),
		CreatedTo:   shared.ParseQueryDate(c.Query("created_to"), true),
	}
	driver := strings.TrimSpace(c.Query("driver_id"))
	if strings.EqualFold(driver, "none") {
		filter.Unassigned = true
	} else {
		filter.DriverID = shared.ParseOptionalUint(driver)
	}
	return filter
}

// GetOrders list orders
func (h *Handler) GetOrders(c *gin.Context) {
	filter := parseOrderListFilter(c)
	orders, total, err := h.OrderService.List(filter)
	if err != nil {
		shared.RespondMapped(c, err, orderErrorRules, response.CodeInternal, "error.order_fetch_failed")
		return
	}
	views := make([]OrderView, 0, len(orders))
	for i := range orders {
		views = append(views, h.orderView(c, &orders[i]))
	}
	response.SuccessWithPage(c, views, response.NewPagination(filter.Page, filter.PageSize, total))
}

// GetOrder order detail
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	order, err := h.OrderService.GetOrder(id)
	if err != nil {
		shared.RespondMapped(c, err, orderErrorRules, response.CodeInternal, "error.order_fetch_failed")
		return
	}
	response.Success(c, h.orderView(c, order))
}

// GetOrderByBarcode exact barcode lookup
func (h *Handler) GetOrderByBarcode(c *gin.Context) {
	barcode := strings.TrimSpace(c.Query("barcode"))
	if barcode == "" {
		shared.RespondError(c, response.CodeBadRequest, "error.barcode_required", nil)
		return
	}
	order, err := h.OrderService.GetByBarcode(barcode)
	if err != nil {
		shared.RespondMapped(c, err, orderErrorRules, response.CodeInternal, "error.order_fetch_failed")
		return
	}
	response.Success(c, h.orderView(c, order))
}

// CreateOrder creates an order for the current user
func (h *Handler) CreateOrder(c *gin.Context) {
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}
	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	order, err := h.OrderService.CreateOrder(req.toInput(), userID)
	if err != nil {
		shared.RespondMapped(c, err, orderErrorRules, response.CodeInternal, "error.order_create_failed")
		return
	}
	response.Created(c, h.orderView(c, order))
}

// UpdateOrder replaces the editable fields of an order
func (h *Handler) UpdateOrder(c *gin.Context) {
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	order, err := h.OrderService.UpdateOrder(id, req.toInput(), userID)
	if err != nil {
		shared.RespondMapped(c, err, orderErrorRules, response.CodeInternal, "error.order_update_failed")
		return
	}
	response.Success(c, h.orderView(c, order))
}

// UpdateOrderStatus single status change
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req orderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	order, err := h.OrderService.UpdateStatus(id, req.Status, userID)
	if err != nil {
		shared.RespondMapped(c, err, orderErrorRules, response.CodeInternal, "error.order_update_failed")
		return
	}
	response.Success(c, h.orderView(c, order))
}

// AssignOrderDriver sets or clears the driver; a null driver_id unassigns
func (h *Handler) AssignOrderDriver(c *gin.Context) {
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req orderDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	order, err := h.OrderService.AssignDriver(id, req.DriverID, userID)
	if err != nil {
		shared.RespondMapped(c, err, orderErrorRules, response.CodeInternal, "error.order_update_failed")
		return
	}
	response.Success(c, h.orderView(c, order))
}

// BulkUpdateOrderStatus changes the status of many orders, one outcome per item
func (h *Handler) BulkUpdateOrderStatus(c *gin.Context) {
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}
	var req bulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	results, err := h.OrderService.BulkUpdateStatus(service.BulkStatusInput{
		OrderIDs: req.OrderIDs,
		Barcodes: req.Barcodes,
		Status:   req.Status,
	}, userID)
	if err != nil {
		shared.RespondMapped(c, err, orderErrorRules, response.CodeInternal, "error.order_update_failed")
		return
	}
	response.Success(c, bulkSummary(results))
}

// BulkAssignOrders assigns many orders to one driver
func (h *Handler) BulkAssignOrders(c *gin.Context) {
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}
	var req bulkAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	results, err := h.OrderService.BulkAssign(req.OrderIDs, req.DriverID, userID)
	if err != nil {
		shared.RespondMapped(c, err, orderErrorRules, response.CodeInternal, "error.order_update_failed")
		return
	}
	response.Success(c, bulkSummary(results))
}

func bulkSummary(results []service.BulkItemResult) gin.H {
	succeeded := 0
	for _, item := range results {
		if item.Success {
			succeeded++
		}
	}
	return gin.H{
		"total":     len(results),
		"succeeded": succeeded,
		"failed":    len(results) - succeeded,
		"items":     results,
	}
}

// DeleteOrder removes an order not referenced by a delegate sheet
func (h *Handler) DeleteOrder(c *gin.Context) {
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if err := h.OrderService.DeleteOrder(id); err != nil {
		shared.RespondMapped(c, err, orderErrorRules, response.CodeInternal, "error.order_delete_failed")
		return
	}
	response.Success(c, nil)
}

// GetOrderHistory status and assignment log, oldest first
func (h *Handler) GetOrderHistory(c *gin.Context) {
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	logs, err := h.OrderService.History(id)
	if err != nil {
		shared.RespondMapped(c, err, orderErrorRules, response.CodeInternal, "error.order_fetch_failed")
		return
	}
	response.Success(c, logs)
}

// GetOrderLabel QR code PNG of the order barcode
func (h *Handler) GetOrderLabel(c *gin.Context) {
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	order, err := h.OrderService.GetOrder(id)
	if err != nil {
		shared.RespondMapped(c, err, orderErrorRules, response.CodeInternal, "error.order_fetch_failed")
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(orderLabelSize)))
	png, err := service.QRCodePNG(order.Barcode, size)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.qrcode_failed", err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
