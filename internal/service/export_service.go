package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tawseel-next/internal/constants"
	"github.com/tawseel-next/internal/models"
	"github.com/tawseel-next/internal/repository"

	"github.com/skip2/go-qrcode"
	"github.com/xuri/excelize/v2"
)

const (
	exportBatchSize = 500
	exportDateTime  = "2006-01-02 15:04:05"
	exportDate      = "2006-01-02"
	qrDefaultSize   = 256
)

// WaybillColumns carrier waybill header, order is significant
var WaybillColumns = []string{
	"WaybillSerial",
	"ConsigneeName",
	"ConsigneePhone",
	"ConsigneePhone2",
	"ConsigneeCity",
	"ConsigneeAddress",
	"CODAmount",
	"Pieces",
	"GoodsDescription",
	"Remarks",
	"SenderReference",
	"OrderDate",
}

// ExportService CSV, XLSX and QR output
type ExportService struct {
	orderRepo  repository.OrderRepository
	driverRepo repository.DriverRepository
	cityRepo   repository.CityRepository
	userRepo   repository.UserRepository
}

// NewExportService creates the export service
func NewExportService(orderRepo repository.OrderRepository, driverRepo repository.DriverRepository, cityRepo repository.CityRepository, userRepo repository.UserRepository) *ExportService {
	return &ExportService{
		orderRepo:  orderRepo,
		driverRepo: driverRepo,
		cityRepo:   cityRepo,
		userRepo:   userRepo,
	}
}

// rowWriter receives the header first, then one call per data row
type rowWriter func(values []string) error

// ExportCSV renders an export type as CSV text. filter applies to orders and waybill.
func (s *ExportService) ExportCSV(exportType string, filter repository.OrderListFilter) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := s.export(exportType, filter, func(values []string) error {
		return w.Write(values)
	}); err != nil {
		return "", err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ExportXLSX renders an export type as a single-sheet workbook
func (s *ExportService) ExportXLSX(exportType string, filter repository.OrderListFilter) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := exportSheetName(exportType)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	row := 1
	err := s.export(exportType, filter, func(values []string) error {
		cells := make([]interface{}, len(values))
		for i, v := range values {
			cells[i] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		row++
		return f.SetSheetRow(sheet, cell, &cells)
	})
	if err != nil {
		return nil, err
	}
	if err := boldHeader(f, sheet, len(exportHeader(exportType))); err != nil {
		return nil, err
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportSheetName(exportType string) string {
	name := strings.ToLower(strings.TrimSpace(exportType))
	if name == "" {
		return "export"
	}
	return name
}

func boldHeader(f *excelize.File, sheet string, columns int) error {
	if columns == 0 {
		return nil
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(columns, 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

// Template CSV header row for an import type
func (s *ExportService) Template(importType string) (string, error) {
	columns, ok := ImportColumns(importType)
	if !ok {
		return "", ErrImportTypeInvalid
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(columns); err != nil {
		return "", err
	}
	w.Flush()
	return buf.String(), w.Error()
}

func exportHeader(exportType string) []string {
	switch strings.ToLower(strings.TrimSpace(exportType)) {
	case constants.ExportTypeOrders:
		return append(append([]string{"id"}, importColumns[constants.ImportTypeOrders]...), "created_at")
	case constants.ExportTypeWaybill:
		return WaybillColumns
	case constants.ExportTypeDrivers:
		return append([]string{"id"}, importColumns[constants.ImportTypeDrivers]...)
	case constants.ExportTypeCities:
		return []string{"id", "name"}
	case constants.ExportTypeUsers:
		return []string{"id", "username", "email", "role", "created_at"}
	default:
		return nil
	}
}

func (s *ExportService) export(exportType string, filter repository.OrderListFilter, write rowWriter) error {
	exportType = strings.ToLower(strings.TrimSpace(exportType))
	header := exportHeader(exportType)
	if header == nil {
		return ErrExportTypeInvalid
	}
	if err := write(header); err != nil {
		return err
	}

	switch exportType {
	case constants.ExportTypeOrders, constants.ExportTypeWaybill:
		toRow := orderExportRow
		if exportType == constants.ExportTypeWaybill {
			toRow = waybillRow
		}
		return s.orderRepo.FindInBatches(filter, exportBatchSize, func(batch []models.Order) error {
			for i := range batch {
				if err := write(toRow(&batch[i])); err != nil {
					return err
				}
			}
			return nil
		})
	case constants.ExportTypeDrivers:
		drivers, err := s.driverRepo.ListAll()
		if err != nil {
			return err
		}
		for _, driver := range drivers {
			areas, _ := json.Marshal([]string(driver.AssignedAreas))
			if driver.AssignedAreas == nil {
				areas = []byte("[]")
			}
			if err := write([]string{
				strconv.FormatUint(uint64(driver.ID), 10),
				driver.Name,
				driver.Phone,
				driver.IDNumber,
				string(areas),
			}); err != nil {
				return err
			}
		}
	case constants.ExportTypeCities:
		cities, err := s.cityRepo.ListAll()
		if err != nil {
			return err
		}
		for _, city := range cities {
			if err := write([]string{strconv.FormatUint(uint64(city.ID), 10), city.Name}); err != nil {
				return err
			}
		}
	case constants.ExportTypeUsers:
		users, err := s.userRepo.ListAll()
		if err != nil {
			return err
		}
		for _, user := range users {
			if err := write([]string{
				strconv.FormatUint(uint64(user.ID), 10),
				user.Username,
				user.Email,
				user.Role,
				user.CreatedAt.Format(exportDateTime),
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

func formatOptionalDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(exportDate)
}

func orderExportRow(order *models.Order) []string {
	driverID := ""
	if order.DriverID != nil {
		driverID = strconv.FormatUint(uint64(*order.DriverID), 10)
	}
	return []string{
		strconv.FormatUint(uint64(order.ID), 10),
		order.Barcode,
		order.RecipientName,
		order.RecipientPhone1,
		order.RecipientPhone2,
		order.RecipientCity,
		order.RecipientAddress,
		order.CODAmount.String(),
		order.Status,
		strconv.Itoa(order.NumberOfPieces),
		order.OrderDescription,
		order.SpecialInstructions,
		order.SenderReference,
		driverID,
		formatOptionalDate(order.OrderDate),
		order.CreatedAt.Format(exportDateTime),
	}
}

func waybillRow(order *models.Order) []string {
	return []string{
		order.Barcode,
		order.RecipientName,
		order.RecipientPhone1,
		order.RecipientPhone2,
		order.RecipientCity,
		order.RecipientAddress,
		order.CODAmount.String(),
		strconv.Itoa(order.NumberOfPieces),
		order.OrderDescription,
		order.SpecialInstructions,
		order.SenderReference,
		formatOptionalDate(order.OrderDate),
	}
}

// SheetWorkbook printable delegate sheet: header block, one line per order and the total
func (s *ExportService) SheetWorkbook(sheet *models.DelegateSheet) ([]byte, error) {
	if sheet == nil {
		return nil, ErrDelegateSheetNotFound
	}
	f := excelize.NewFile()
	defer f.Close()

	name := "sheet"
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return nil, err
	}
	driverName := ""
	if sheet.Driver != nil {
		driverName = sheet.Driver.Name
	}
	meta := [][]interface{}{
		{"Sheet", sheet.Barcode},
		{"Driver", driverName},
		{"Created", sheet.CreatedAt.Format(exportDateTime)},
		{"Orders", sheet.OrderCount},
	}
	for i, line := range meta {
		if err := f.SetSheetRow(name, fmt.Sprintf("A%d", i+1), &line); err != nil {
			return nil, err
		}
	}

	headerRow := len(meta) + 2
	header := []interface{}{"#", "Barcode", "Recipient", "Phone", "City", "Address", "COD"}
	if err := f.SetSheetRow(name, fmt.Sprintf("A%d", headerRow), &header); err != nil {
		return nil, err
	}
	row := headerRow + 1
	for i, item := range sheet.Items {
		line := []interface{}{i + 1, item.Barcode, "", "", "", "", item.CODAmount.InexactFloat64()}
		if item.Order != nil {
			line[2] = item.Order.RecipientName
			line[3] = item.Order.RecipientPhone1
			line[4] = item.Order.RecipientCity
			line[5] = item.Order.RecipientAddress
		}
		if err := f.SetSheetRow(name, fmt.Sprintf("A%d", row), &line); err != nil {
			return nil, err
		}
		row++
	}
	total := []interface{}{"", "", "", "", "", "Total", sheet.TotalAmount.InexactFloat64()}
	if err := f.SetSheetRow(name, fmt.Sprintf("A%d", row), &total); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(name, "B", "F", 22); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// QRCodePNG encodes content as a PNG QR code
func QRCodePNG(content string, size int) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, requiredField("content")
	}
	if size <= 0 || size > 1024 {
		size = qrDefaultSize
	}
	return qrcode.Encode(content, qrcode.Medium, size)
}
