package admin

import (
	"strconv"
	"strings"

	"github.com/tawseel-next/internal/http/handlers/shared"
	"github.com/tawseel-next/internal/http/response"
	"github.com/tawseel-next/internal/service"

	"github.com/gin-gonic/gin"
)

type productRequest struct {
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	Price      string `json:"price"`
	Unit       string `json:"unit"`
	Barcode    string `json:"barcode"`
	ExpiryDate string `json:"expiry_date"`
}

func (r productRequest) toInput() service.ProductInput {
	return service.ProductInput{
		Name:       r.Name,
		Quantity:   r.Quantity,
		Price:      r.Price,
		Unit:       r.Unit,
		Barcode:    r.Barcode,
		ExpiryDate: shared.ParseQueryDate(r.ExpiryDate, false),
	}
}

type stockRequest struct {
	Delta int `json:"delta"`
}

// GetProducts list products; low_stock and expiring_within_days narrow to alerts
func (h *Handler) GetProducts(c *gin.Context) {
	page, pageSize := shared.ParsePagination(c)
	lowStock, _ := strconv.ParseBool(c.DefaultQuery("low_stock", "false"))
	expiringDays, _ := strconv.Atoi(c.DefaultQuery("expiring_within_days", "0"))

	products, total, err := h.ProductService.List(service.ProductListInput{
		Page:               page,
		PageSize:           pageSize,
		Search:             strings.TrimSpace(c.Query("search")),
		Unit:               strings.TrimSpace(c.Query("unit")),
		LowStock:           lowStock,
		ExpiringWithinDays: expiringDays,
	})
	if err != nil {
		shared.RespondMapped(c, err, productErrorRules, response.CodeInternal, "error.product_fetch_failed")
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// GetProduct product detail
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	product, err := h.ProductService.GetProduct(id)
	if err != nil {
		shared.RespondMapped(c, err, productErrorRules, response.CodeInternal, "error.product_fetch_failed")
		return
	}
	response.Success(c, product)
}

// CreateProduct adds a product
func (h *Handler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	product, err := h.ProductService.CreateProduct(req.toInput())
	if err != nil {
		shared.RespondMapped(c, err, productErrorRules, response.CodeInternal, "error.product_save_failed")
		return
	}
	response.Created(c, product)
}

// UpdateProduct replaces product fields
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	product, err := h.ProductService.UpdateProduct(id, req.toInput())
	if err != nil {
		shared.RespondMapped(c, err, productErrorRules, response.CodeInternal, "error.product_save_failed")
		return
	}
	response.Success(c, product)
}

// DeleteProduct removes a product
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if err := h.ProductService.DeleteProduct(id); err != nil {
		shared.RespondMapped(c, err, productErrorRules, response.CodeInternal, "error.product_delete_failed")
		return
	}
	response.Success(c, nil)
}

// AdjustProductStock adds a signed delta to the quantity
func (h *Handler) AdjustProductStock(c *gin.Context) {
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req stockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	product, err := h.ProductService.AdjustStock(id, req.Delta)
	if err != nil {
		shared.RespondMapped(c, err, productErrorRules, response.CodeInternal, "error.product_save_failed")
		return
	}
	response.Success(c, product)
}
