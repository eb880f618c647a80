package admin

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tawseel-next/internal/http/handlers/shared"
	"github.com/tawseel-next/internal/http/response"
	"github.com/tawseel-next/internal/i18n"

	"github.com/gin-gonic/gin"
)

const defaultImportMaxSize = 20 << 20

func (h *Handler) importMaxSize() int64 {
	if h.Config != nil && h.Config.Import.MaxSize > 0 {
		return h.Config.Import.MaxSize
	}
	return defaultImportMaxSize
}

// ImportData loads an uploaded CSV or zip of CSVs
func (h *Handler) ImportData(c *gin.Context) {
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.import_file_required", nil)
		return
	}
	maxSize := h.importMaxSize()
	if fileHeader.Size > maxSize {
		shared.RespondErrorWithMsg(c, response.CodeTooLarge, i18n.Sprintf(i18n.ResolveLocale(c), "error.import_too_large", maxSize>>20), nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.import_file_invalid", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.import_file_invalid", err)
		return
	}
	if int64(len(data)) > maxSize {
		shared.RespondErrorWithMsg(c, response.CodeTooLarge, i18n.Sprintf(i18n.ResolveLocale(c), "error.import_too_large", maxSize>>20), nil)
		return
	}

	result, err := h.ImportService.Import(fileHeader.Filename, data, c.PostForm("type"), userID)
	if err != nil {
		shared.RespondMapped(c, err, dataErrorRules, response.CodeInternal, "error.import_failed")
		return
	}
	response.Success(c, gin.H{
		"success":   true,
		"processed": result.Processed,
		"added":     result.Added,
		"skipped":   result.Skipped,
		"failed":    result.Failed,
		"errors":    result.Errors,
	})
}

// ExportData CSV export as {csv: string}; filters apply to orders and waybill
func (h *Handler) ExportData(c *gin.Context) {
	text, err := h.ExportService.ExportCSV(c.Query("type"), parseOrderListFilter(c))
	if err != nil {
		shared.RespondMapped(c, err, dataErrorRules, response.CodeInternal, "error.export_failed")
		return
	}
	response.Success(c, gin.H{"csv": text})
}

// ExportDataXLSX workbook download of the same export
func (h *Handler) ExportDataXLSX(c *gin.Context) {
	exportType := strings.ToLower(strings.TrimSpace(c.Query("type")))
	data, err := h.ExportService.ExportXLSX(exportType, parseOrderListFilter(c))
	if err != nil {
		shared.RespondMapped(c, err, dataErrorRules, response.CodeInternal, "error.export_failed")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, exportType))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// GetImportTemplate header row for an import type
func (h *Handler) GetImportTemplate(c *gin.Context) {
	text, err := h.ExportService.Template(c.Query("type"))
	if err != nil {
		shared.RespondMapped(c, err, dataErrorRules, response.CodeInternal, "error.export_failed")
		return
	}
	response.Success(c, gin.H{"csv": text})
}
