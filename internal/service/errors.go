package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrWeakPassword       = errors.New("weak password")
	ErrCreatorRequired    = errors.New("creator is required")

	ErrOrderNotFound         = errors.New("order not found")
	ErrOrderBarcodeExists    = errors.New("order barcode already exists")
	ErrOrderInUse            = errors.New("order is referenced by a delegate sheet")
	ErrInvalidOrderStatus    = errors.New("invalid order status")
	ErrInvalidCODAmount      = errors.New("invalid cod amount")
	ErrBarcodeGenerateFailed = errors.New("barcode generation failed")
	ErrOrderDriverConflict   = errors.New("order is assigned to another driver")
	ErrSheetDuplicateOrder   = errors.New("order appears twice in the sheet")
	ErrSheetEmpty            = errors.New("delegate sheet has no orders")
	ErrDelegateSheetNotFound = errors.New("delegate sheet not found")
	ErrDriverNotFound        = errors.New("driver not found")
	ErrDriverPhoneExists     = errors.New("driver phone already exists")
	ErrDriverInUse           = errors.New("driver is referenced by orders or sheets")
	ErrCityNotFound          = errors.New("city not found")
	ErrCityExists            = errors.New("city already exists")
	ErrUserNotFound          = errors.New("user not found")
	ErrUserEmailExists       = errors.New("user email already exists")
	ErrInvalidRole           = errors.New("invalid role")
	ErrLastAdmin             = errors.New("cannot remove the last admin")
	ErrCannotDeleteSelf      = errors.New("cannot delete the current user")
	ErrProductNotFound       = errors.New("product not found")
	ErrProductBarcodeExists  = errors.New("product barcode already exists")
	ErrInvalidProductUnit    = errors.New("invalid product unit")
	ErrInsufficientStock     = errors.New("insufficient stock")
	ErrImportTypeInvalid     = errors.New("invalid import type")
	ErrImportFileInvalid     = errors.New("invalid import file")
	ErrExportTypeInvalid     = errors.New("invalid export type")
	ErrCaptchaRequired       = errors.New("captcha required")
	ErrCaptchaInvalid        = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid  = errors.New("captcha config invalid")
	ErrAuthzUnavailable      = errors.New("authorization service unavailable")
)

// FieldError validation failure on one input field; matches ErrValidation
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s is required", e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrValidation) match
func (e *FieldError) Is(target error) bool {
	return target == ErrValidation
}

func requiredField(field string) error {
	return &FieldError{Field: field}
}

func invalidField(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}

// isUniqueViolation recognises unique index failures; the dialector translates them
// to gorm.ErrDuplicatedKey when the DB is opened with TranslateError
func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// isKnownServiceError reports errors whose message is safe to show per item
func isKnownServiceError(err error) bool {
	var fieldErr *FieldError
	if errors.As(err, &fieldErr) {
		return true
	}
	for _, known := range []error{
		ErrNotFound,
		ErrOrderNotFound,
		ErrOrderBarcodeExists,
		ErrOrderInUse,
		ErrInvalidOrderStatus,
		ErrInvalidCODAmount,
		ErrOrderDriverConflict,
		ErrDriverNotFound,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}
