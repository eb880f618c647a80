package admin

import (
	"github.com/tawseel-next/internal/http/handlers/shared"
	"github.com/tawseel-next/internal/http/response"
	"github.com/tawseel-next/internal/service"

	"github.com/gin-gonic/gin"
)

var orderErrorRules = []shared.MappedError{
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
	{Target: service.ErrOrderBarcodeExists, Code: response.CodeConflict, Key: "error.order_barcode_exists"},
	{Target: service.ErrOrderInUse, Code: response.CodeConflict, Key: "error.order_in_use"},
	{Target: service.ErrInvalidOrderStatus, Code: response.CodeBadRequest, Key: "error.order_status_invalid"},
	{Target: service.ErrInvalidCODAmount, Code: response.CodeBadRequest, Key: "error.cod_amount_invalid"},
	{Target: service.ErrBarcodeGenerateFailed, Code: response.CodeInternal, Key: "error.barcode_generate_failed"},
	{Target: service.ErrCreatorRequired, Code: response.CodeUnauthorized, Key: "error.unauthorized"},
	{Target: service.ErrDriverNotFound, Code: response.CodeNotFound, Key: "error.driver_not_found"},
}

var sheetErrorRules = []shared.MappedError{
	{Target: service.ErrDelegateSheetNotFound, Code: response.CodeNotFound, Key: "error.delegate_sheet_not_found"},
	{Target: service.ErrOrderDriverConflict, Code: response.CodeConflict, Key: "error.order_driver_conflict"},
	{Target: service.ErrSheetDuplicateOrder, Code: response.CodeBadRequest, Key: "error.sheet_duplicate_order"},
	{Target: service.ErrSheetEmpty, Code: response.CodeBadRequest, Key: "error.sheet_empty"},
}

var driverErrorRules = []shared.MappedError{
	{Target: service.ErrDriverNotFound, Code: response.CodeNotFound, Key: "error.driver_not_found"},
	{Target: service.ErrDriverPhoneExists, Code: response.CodeConflict, Key: "error.driver_phone_exists"},
	{Target: service.ErrDriverInUse, Code: response.CodeConflict, Key: "error.driver_in_use"},
}

var cityErrorRules = []shared.MappedError{
	{Target: service.ErrCityNotFound, Code: response.CodeNotFound, Key: "error.city_not_found"},
	{Target: service.ErrCityExists, Code: response.CodeConflict, Key: "error.city_exists"},
}

var userErrorRules = []shared.MappedError{
	{Target: service.ErrUserNotFound, Code: response.CodeNotFound, Key: "error.user_not_found"},
	{Target: service.ErrUserEmailExists, Code: response.CodeConflict, Key: "error.user_email_exists"},
	{Target: service.ErrInvalidRole, Code: response.CodeBadRequest, Key: "error.role_invalid"},
	{Target: service.ErrLastAdmin, Code: response.CodeConflict, Key: "error.last_admin"},
	{Target: service.ErrCannotDeleteSelf, Code: response.CodeBadRequest, Key: "error.cannot_delete_self"},
	{Target: service.ErrInvalidPassword, Code: response.CodeBadRequest, Key: "error.password_invalid"},
}

var productErrorRules = []shared.MappedError{
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
	{Target: service.ErrProductBarcodeExists, Code: response.CodeConflict, Key: "error.product_barcode_exists"},
	{Target: service.ErrInvalidProductUnit, Code: response.CodeBadRequest, Key: "error.product_unit_invalid"},
	{Target: service.ErrInsufficientStock, Code: response.CodeConflict, Key: "error.insufficient_stock"},
}

var dataErrorRules = []shared.MappedError{
	{Target: service.ErrImportTypeInvalid, Code: response.CodeBadRequest, Key: "error.import_type_invalid"},
	{Target: service.ErrImportFileInvalid, Code: response.CodeBadRequest, Key: "error.import_file_invalid"},
	{Target: service.ErrExportTypeInvalid, Code: response.CodeBadRequest, Key: "error.export_type_invalid"},
}

// respondWeakPassword answers a password policy failure with its own message
func respondWeakPassword(c *gin.Context, err error) bool {
	msg, ok := shared.PasswordPolicyMessage(c, err)
	if !ok {
		return false
	}
	shared.RespondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
	return true
}
