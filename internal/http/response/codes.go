package response

// Business codes double as HTTP status for non-zero values
const (
	CodeOK              = 0
	CodeBadRequest      = 400
	CodeUnauthorized    = 401
	CodeForbidden       = 403
	CodeNotFound        = 404
	CodeConflict        = 409
	CodeTooLarge        = 413
	CodeTooManyRequests = 429
	CodeInternal        = 500
)

// HTTPStatus maps a business code onto the HTTP status sent with it
func HTTPStatus(code int) int {
	switch code {
	case CodeBadRequest, CodeUnauthorized, CodeForbidden, CodeNotFound,
		CodeConflict, CodeTooLarge, CodeTooManyRequests, CodeInternal:
		return code
	case CodeOK:
		return 200
	default:
		if code >= 400 && code < 600 {
			return code
		}
		return 500
	}
}
