package service

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/tawseel-next/internal/constants"
	"github.com/tawseel-next/internal/logger"
	"github.com/tawseel-next/internal/models"
	"github.com/tawseel-next/internal/repository"

	"gorm.io/gorm"
)

const (
	importMaxRowErrors  = 100
	importDefaultMaxLen = 20 << 20
)

var importColumns = map[string][]string{
	constants.ImportTypeOrders: {
		"barcode", "recipient_name", "recipient_phone1", "recipient_phone2", "recipient_city",
		"recipient_address", "cod_amount", "status", "number_of_pieces", "order_description",
		"special_instructions", "sender_reference", "driver_id", "order_date",
	},
	constants.ImportTypeDrivers: {"driver_name", "driver_phone", "driver_id_number", "assigned_areas"},
	constants.ImportTypeCities:  {"name"},
	constants.ImportTypeUsers:   {"username", "email", "password", "role"},
}

// ImportColumns header row accepted for an import type
func ImportColumns(importType string) ([]string, bool) {
	columns, ok := importColumns[strings.ToLower(strings.TrimSpace(importType))]
	return columns, ok
}

// ImportResult counts over every parsed row; Processed == Added + Skipped + Failed
type ImportResult struct {
	Processed int              `json:"processed"`
	Added     int              `json:"added"`
	Skipped   int              `json:"skipped"`
	Failed    int              `json:"failed"`
	Errors    []ImportRowError `json:"errors,omitempty"`
}

// ImportRowError why one row failed
type ImportRowError struct {
	File   string `json:"file"`
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type rowOutcome struct {
	kind   string
	reason string
}

func added() rowOutcome {
	return rowOutcome{kind: constants.ImportOutcomeAdded}
}

func skipped(reason string) rowOutcome {
	return rowOutcome{kind: constants.ImportOutcomeSkipped, reason: reason}
}

func failed(err error) rowOutcome {
	return rowOutcome{kind: constants.ImportOutcomeFailed, reason: err.Error()}
}

func (r *ImportResult) record(file string, row int, outcome rowOutcome) {
	r.Processed++
	switch outcome.kind {
	case constants.ImportOutcomeAdded:
		r.Added++
	case constants.ImportOutcomeSkipped:
		r.Skipped++
	default:
		r.Failed++
		if len(r.Errors) < importMaxRowErrors {
			r.Errors = append(r.Errors, ImportRowError{File: file, Row: row, Reason: outcome.reason})
		}
	}
}

// skipEntry notes a zip entry that could not be read; it is not a row and is not counted
func (r *ImportResult) skipEntry(file string, err error) {
	if len(r.Errors) < importMaxRowErrors {
		r.Errors = append(r.Errors, ImportRowError{File: file, Reason: err.Error()})
	}
}

// ImportService CSV and zip bulk loading
type ImportService struct {
	orderRepo  repository.OrderRepository
	driverRepo repository.DriverRepository
	cityRepo   repository.CityRepository
	userRepo   repository.UserRepository
	logRepo    repository.OrderStatusLogRepository
	barcodes   *BarcodeGenerator
	roles      RoleSyncer
	stats      StatsInvalidator
	maxLen     int64
}

// NewImportService creates the import service
func NewImportService(orderRepo repository.OrderRepository, driverRepo repository.DriverRepository, cityRepo repository.CityRepository, userRepo repository.UserRepository, logRepo repository.OrderStatusLogRepository, barcodes *BarcodeGenerator, roles RoleSyncer, stats StatsInvalidator, maxLen int64) *ImportService {
	if barcodes == nil {
		barcodes = NewBarcodeGenerator()
	}
	if maxLen <= 0 {
		maxLen = importDefaultMaxLen
	}
	return &ImportService{
		orderRepo:  orderRepo,
		driverRepo: driverRepo,
		cityRepo:   cityRepo,
		userRepo:   userRepo,
		logRepo:    logRepo,
		barcodes:   barcodes,
		roles:      roles,
		stats:      stats,
		maxLen:     maxLen,
	}
}

// Import loads one CSV or a zip of CSVs. In zip mode, and for a single CSV with type "all",
// the file basename selects the importer.
func (s *ImportService) Import(filename string, data []byte, importType string, actorID uint) (*ImportResult, error) {
	importType = strings.ToLower(strings.TrimSpace(importType))
	if importType == "" {
		importType = constants.ImportTypeAll
	}
	if _, ok := importColumns[importType]; !ok && importType != constants.ImportTypeAll {
		return nil, ErrImportTypeInvalid
	}
	if len(data) == 0 {
		return nil, ErrImportFileInvalid
	}

	result := &ImportResult{}
	var err error
	if isZipUpload(filename, data) {
		err = s.importZip(data, actorID, result)
	} else {
		target := importType
		if target == constants.ImportTypeAll {
			target = importTypeFromName(filename)
			if target == "" {
				return nil, ErrImportTypeInvalid
			}
		}
		err = s.importCSV(path.Base(filename), bytes.NewReader(data), target, actorID, result)
	}
	if err != nil {
		return nil, err
	}

	logger.Infow("import_finished",
		"file", filename,
		"type", importType,
		"processed", result.Processed,
		"added", result.Added,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)
	if result.Added > 0 && s.stats != nil {
		s.stats.Invalidate(context.Background())
	}
	return result, nil
}

func isZipUpload(filename string, data []byte) bool {
	if strings.EqualFold(path.Ext(filename), ".zip") {
		return true
	}
	return bytes.HasPrefix(data, []byte("PK\x03\x04"))
}

// importTypeFromName maps "orders.csv" to "orders"; unknown names map to ""
func importTypeFromName(name string) string {
	base := strings.ToLower(path.Base(strings.ReplaceAll(name, "\\", "/")))
	base = strings.TrimSuffix(base, path.Ext(base))
	if _, ok := importColumns[base]; ok {
		return base
	}
	return ""
}

func (s *ImportService) importZip(data []byte, actorID uint, result *ImportResult) error {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrImportFileInvalid, err)
	}
	for _, entry := range archive.File {
		if entry.FileInfo().IsDir() || !strings.EqualFold(path.Ext(entry.Name), ".csv") {
			continue
		}
		target := importTypeFromName(entry.Name)
		if target == "" {
			continue
		}
		content, err := s.readZipEntry(entry)
		if err == nil {
			err = s.importCSV(path.Base(entry.Name), bytes.NewReader(content), target, actorID, result)
		}
		if err != nil {
			if !errors.Is(err, ErrImportFileInvalid) {
				return err
			}
			logger.Warnw("import_zip_entry_skipped", "entry", entry.Name, "error", err)
			result.skipEntry(path.Base(entry.Name), err)
		}
	}
	return nil
}

func (s *ImportService) readZipEntry(entry *zip.File) ([]byte, error) {
	rc, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportFileInvalid, err)
	}
	defer rc.Close()
	content, err := io.ReadAll(io.LimitReader(rc, s.maxLen+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportFileInvalid, err)
	}
	if int64(len(content)) > s.maxLen {
		return nil, fmt.Errorf("%w: %s exceeds size limit", ErrImportFileInvalid, entry.Name)
	}
	return content, nil
}

func normalizeHeader(value string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(value, "\ufeff")))
}

// importCSV folds every data row of one file into result
func (s *ImportService) importCSV(file string, r io.Reader, importType string, actorID uint, result *ImportResult) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("%w: missing header row", ErrImportFileInvalid)
	}
	for i := range header {
		header[i] = normalizeHeader(header[i])
	}

	apply := s.rowImporter(importType)
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				logger.Warnw("import_row_failed", "file", file, "row", line, "error", err)
				result.record(file, line, failed(err))
				continue
			}
			return err
		}
		row := make(map[string]string, len(header))
		for i, key := range header {
			if i < len(record) && key != "" {
				row[key] = strings.TrimSpace(record[i])
			}
		}
		outcome := s.safeApply(apply, row, actorID)
		if outcome.kind == constants.ImportOutcomeFailed {
			logger.Warnw("import_row_failed", "file", file, "row", line, "error", outcome.reason)
		}
		result.record(file, line, outcome)
	}
	return nil
}

type rowFunc func(row map[string]string, actorID uint) rowOutcome

func (s *ImportService) safeApply(apply rowFunc, row map[string]string, actorID uint) (outcome rowOutcome) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorw("import_row_panic", "panic", r)
			outcome = failed(fmt.Errorf("internal error: %v", r))
		}
	}()
	return apply(row, actorID)
}

func (s *ImportService) rowImporter(importType string) rowFunc {
	switch importType {
	case constants.ImportTypeOrders:
		return s.importOrderRow
	case constants.ImportTypeDrivers:
		return s.importDriverRow
	case constants.ImportTypeCities:
		return s.importCityRow
	default:
		return s.importUserRow
	}
}

func (s *ImportService) importOrderRow(row map[string]string, actorID uint) rowOutcome {
	order, err := orderFromInput(OrderInput{
		Barcode:             row["barcode"],
		RecipientName:       row["recipient_name"],
		RecipientPhone1:     row["recipient_phone1"],
		RecipientPhone2:     row["recipient_phone2"],
		RecipientCity:       row["recipient_city"],
		RecipientAddress:    row["recipient_address"],
		CODAmount:           row["cod_amount"],
		Status:              row["status"],
		NumberOfPieces:      parsePieces(row["number_of_pieces"]),
		OrderDescription:    row["order_description"],
		SpecialInstructions: row["special_instructions"],
		SenderReference:     row["sender_reference"],
		OrderDate:           ParseOrderDate(row["order_date"]),
	})
	if err != nil {
		return failed(err)
	}
	order.CreatorID = actorID

	if order.Barcode != "" {
		count, err := s.orderRepo.CountByBarcode(order.Barcode)
		if err != nil {
			return failed(err)
		}
		if count > 0 {
			return skipped("barcode exists")
		}
	}

	if ref := strings.TrimSpace(row["driver_id"]); ref != "" {
		driver, err := s.resolveDriver(ref)
		if err != nil {
			return failed(err)
		}
		if driver != nil {
			order.DriverID = &driver.ID
		}
	}

	if order.Barcode == "" {
		code, err := uniqueBarcode(func(int) string {
			return s.barcodes.OrderBarcode()
		}, func(code string) (bool, error) {
			count, err := s.orderRepo.CountByBarcode(code)
			return count > 0, err
		})
		if err != nil {
			return failed(err)
		}
		order.Barcode = code
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.WithTx(tx).Create(order); err != nil {
			return err
		}
		return s.logRepo.WithTx(tx).Create(&models.OrderStatusLog{
			OrderID:  order.ID,
			ToStatus: order.Status,
			DriverID: order.DriverID,
			ActorID:  actorID,
			Source:   constants.OrderLogSourceImport,
		})
	})
	if err != nil {
		if isUniqueViolation(err) {
			return skipped("barcode exists")
		}
		return failed(err)
	}
	return added()
}

// resolveDriver numeric references must exist; names resolve to the first match or nil
func (s *ImportService) resolveDriver(ref string) (*models.Driver, error) {
	if IsDriverIdentifier(ref) {
		id, err := strconv.ParseUint(ref, 10, 64)
		if err != nil {
			return nil, invalidField("driver_id", "out of range")
		}
		driver, err := s.driverRepo.GetByID(uint(id))
		if err != nil {
			return nil, err
		}
		if driver == nil {
			return nil, ErrDriverNotFound
		}
		return driver, nil
	}
	return s.driverRepo.FindFirstByName(ref)
}

func (s *ImportService) importDriverRow(row map[string]string, _ uint) rowOutcome {
	name := strings.TrimSpace(row["driver_name"])
	phone := normalizePhone(row["driver_phone"])
	if name == "" {
		return failed(requiredField("driver_name"))
	}
	if phone == "" {
		return failed(requiredField("driver_phone"))
	}
	existing, err := s.driverRepo.GetByPhone(phone)
	if err != nil {
		return failed(err)
	}
	if existing != nil {
		return skipped("phone exists")
	}
	driver := &models.Driver{
		Name:          name,
		Phone:         phone,
		IDNumber:      strings.TrimSpace(row["driver_id_number"]),
		AssignedAreas: cleanAreas(parseAreas(row["assigned_areas"])),
	}
	if err := s.driverRepo.Create(driver); err != nil {
		if isUniqueViolation(err) {
			return skipped("phone exists")
		}
		return failed(err)
	}
	return added()
}

// parseAreas accepts a JSON array or a comma separated list
func parseAreas(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if strings.HasPrefix(raw, "[") {
		var areas []string
		if err := json.Unmarshal([]byte(raw), &areas); err == nil {
			return areas
		}
	}
	return strings.Split(raw, ",")
}

func (s *ImportService) importCityRow(row map[string]string, _ uint) rowOutcome {
	name := strings.TrimSpace(row["name"])
	if name == "" {
		return failed(requiredField("name"))
	}
	existing, err := s.cityRepo.GetByName(name)
	if err != nil {
		return failed(err)
	}
	if existing != nil {
		return skipped("city exists")
	}
	if err := s.cityRepo.Create(&models.City{Name: name}); err != nil {
		if isUniqueViolation(err) {
			return skipped("city exists")
		}
		return failed(err)
	}
	return added()
}

func (s *ImportService) importUserRow(row map[string]string, _ uint) rowOutcome {
	for _, field := range importColumns[constants.ImportTypeUsers] {
		if strings.TrimSpace(row[field]) == "" {
			return failed(requiredField(field))
		}
	}
	role, err := NormalizeUserRole(row["role"])
	if err != nil {
		return failed(err)
	}
	email := strings.TrimSpace(row["email"])
	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return failed(err)
	}
	if existing != nil {
		return skipped("email exists")
	}
	hashed, err := HashPassword(row["password"])
	if err != nil {
		return failed(err)
	}
	user := &models.User{
		Username:     strings.TrimSpace(row["username"]),
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
	}
	if err := s.userRepo.Create(user); err != nil {
		if isUniqueViolation(err) {
			return skipped("email exists")
		}
		return failed(err)
	}
	if s.roles != nil {
		if err := s.roles.SyncUserRole(user.ID, user.Role); err != nil {
			logger.Warnw("user_role_sync_failed", "user_id", user.ID, "error", err)
		}
	}
	return added()
}
