package i18n

// messages translation tables keyed by locale, then message key
var messages = map[string]map[string]string{
	LocaleAR: {
		"error.bad_request":                  "طلب غير صالح",
		"error.internal":                     "حدث خطأ داخلي",
		"error.unauthorized":                 "يجب تسجيل الدخول",
		"error.forbidden":                    "ليس لديك صلاحية لهذا الإجراء",
		"error.field_required":               "الحقل %s مطلوب",
		"error.field_invalid":                "قيمة الحقل %s غير صالحة: %s",
		"error.auth_header_missing":          "رمز الدخول مفقود",
		"error.auth_header_invalid":          "ترويسة التفويض غير صالحة",
		"error.token_invalid":                "انتهت الجلسة، يرجى تسجيل الدخول مجددًا",
		"error.login_invalid":                "البريد الإلكتروني أو كلمة المرور غير صحيحة",
		"error.login_failed":                 "تعذر تسجيل الدخول",
		"error.login_too_many":               "محاولات دخول كثيرة، حاول بعد %d ثانية",
		"error.rate_limited":                 "طلبات كثيرة، حاول بعد %d ثانية",
		"error.rate_limit_unavailable":       "خدمة تحديد المعدل غير متاحة",
		"error.logout_failed":                "تعذر تسجيل الخروج",
		"error.password_invalid":             "كلمة المرور الحالية غير صحيحة",
		"error.password_change_failed":       "تعذر تغيير كلمة المرور",
		"error.password_min_length":          "يجب ألا تقل كلمة المرور عن %d أحرف",
		"error.password_require_upper":       "يجب أن تحتوي كلمة المرور على حرف كبير",
		"error.password_require_lower":       "يجب أن تحتوي كلمة المرور على حرف صغير",
		"error.password_require_number":      "يجب أن تحتوي كلمة المرور على رقم",
		"error.password_require_special":     "يجب أن تحتوي كلمة المرور على رمز خاص",
		"error.captcha_required":             "رمز التحقق مطلوب",
		"error.captcha_invalid":              "رمز التحقق غير صحيح",
		"error.captcha_config_invalid":       "إعدادات رمز التحقق غير صالحة",
		"error.captcha_unavailable":          "رمز التحقق غير مفعل",
		"error.captcha_generate_failed":      "تعذر إنشاء رمز التحقق",
		"error.captcha_verify_failed":        "تعذر التحقق من الرمز",
		"error.authz_fetch_failed":           "تعذر تحميل الصلاحيات",
		"error.role_invalid":                 "الدور غير صالح",
		"error.order_not_found":              "الطلب غير موجود",
		"error.order_barcode_exists":         "الباركود مستخدم لطلب آخر",
		"error.order_in_use":                 "لا يمكن حذف طلب مدرج في كشف مندوب",
		"error.order_status_invalid":         "حالة الطلب غير صالحة",
		"error.cod_amount_invalid":           "مبلغ التحصيل غير صالح",
		"error.barcode_required":             "الباركود مطلوب",
		"error.barcode_generate_failed":      "تعذر إنشاء باركود فريد",
		"error.order_fetch_failed":           "تعذر تحميل الطلبات",
		"error.order_create_failed":          "تعذر إنشاء الطلب",
		"error.order_update_failed":          "تعذر تحديث الطلب",
		"error.order_delete_failed":          "تعذر حذف الطلب",
		"error.order_driver_conflict":        "الطلب مسند إلى مندوب آخر",
		"error.qrcode_failed":                "تعذر إنشاء رمز QR",
		"error.delegate_sheet_not_found":     "كشف المندوب غير موجود",
		"error.delegate_sheet_fetch_failed":  "تعذر تحميل كشوف المندوبين",
		"error.delegate_sheet_create_failed": "تعذر إنشاء كشف المندوب",
		"error.sheet_duplicate_order":        "الطلب مكرر في الكشف",
		"error.sheet_empty":                  "الكشف لا يحتوي على طلبات",
		"error.driver_not_found":             "المندوب غير موجود",
		"error.driver_phone_exists":          "رقم هاتف المندوب مستخدم",
		"error.driver_in_use":                "لا يمكن حذف مندوب لديه طلبات أو كشوف",
		"error.driver_fetch_failed":          "تعذر تحميل المندوبين",
		"error.driver_save_failed":           "تعذر حفظ المندوب",
		"error.driver_delete_failed":         "تعذر حذف المندوب",
		"error.city_not_found":               "المدينة غير موجودة",
		"error.city_exists":                  "المدينة موجودة مسبقًا",
		"error.city_fetch_failed":            "تعذر تحميل المدن",
		"error.city_save_failed":             "تعذر حفظ المدينة",
		"error.city_delete_failed":           "تعذر حذف المدينة",
		"error.user_not_found":               "المستخدم غير موجود",
		"error.user_email_exists":            "البريد الإلكتروني مستخدم",
		"error.last_admin":                   "لا يمكن إزالة آخر مدير",
		"error.cannot_delete_self":           "لا يمكنك حذف حسابك",
		"error.user_fetch_failed":            "تعذر تحميل المستخدمين",
		"error.user_save_failed":             "تعذر حفظ المستخدم",
		"error.user_delete_failed":           "تعذر حذف المستخدم",
		"error.product_not_found":            "المنتج غير موجود",
		"error.product_barcode_exists":       "باركود المنتج مستخدم",
		"error.product_unit_invalid":         "وحدة المنتج غير صالحة",
		"error.insufficient_stock":           "الكمية غير كافية",
		"error.product_fetch_failed":         "تعذر تحميل المنتجات",
		"error.product_save_failed":          "تعذر حفظ المنتج",
		"error.product_delete_failed":        "تعذر حذف المنتج",
		"error.import_file_required":         "يرجى اختيار ملف",
		"error.import_file_invalid":          "الملف غير صالح",
		"error.import_type_invalid":          "نوع الاستيراد غير صالح",
		"error.import_too_large":             "حجم الملف يتجاوز %d ميجابايت",
		"error.import_failed":                "فشل الاستيراد",
		"error.export_type_invalid":          "نوع التصدير غير صالح",
		"error.export_failed":                "فشل التصدير",
		"error.dashboard_fetch_failed":       "تعذر تحميل الإحصائيات",

		"order_status.entered":               "تم الإدخال",
		"order_status.assigned":              "مسند لمندوب",
		"order_status.out_for_delivery":      "خرج للتوصيل",
		"order_status.delivered":             "تم التسليم",
		"order_status.partial_return":        "مرتجع جزئي",
		"order_status.full_return":           "مرتجع كلي",
	},
	LocaleEN: {
		"error.bad_request":                  "Bad request",
		"error.internal":                     "Internal server error",
		"error.unauthorized":                 "Unauthorized",
		"error.forbidden":                    "Forbidden",
		"error.field_required":               "%s is required",
		"error.field_invalid":                "%s: %s",
		"error.auth_header_missing":          "Missing authentication token",
		"error.auth_header_invalid":          "Invalid Authorization header",
		"error.token_invalid":                "Session expired, please sign in again",
		"error.login_invalid":                "Invalid email or password",
		"error.login_failed":                 "Login failed",
		"error.login_too_many":               "Too many login attempts, try again in %d seconds",
		"error.rate_limited":                 "Too many requests, try again in %d seconds",
		"error.rate_limit_unavailable":       "Rate limiter unavailable",
		"error.logout_failed":                "Logout failed",
		"error.password_invalid":             "Current password is incorrect",
		"error.password_change_failed":       "Failed to change password",
		"error.password_min_length":          "Password must be at least %d characters",
		"error.password_require_upper":       "Password must contain an uppercase letter",
		"error.password_require_lower":       "Password must contain a lowercase letter",
		"error.password_require_number":      "Password must contain a number",
		"error.password_require_special":     "Password must contain a special character",
		"error.captcha_required":             "Captcha is required",
		"error.captcha_invalid":              "Captcha is incorrect",
		"error.captcha_config_invalid":       "Captcha is misconfigured",
		"error.captcha_unavailable":          "Captcha is not enabled",
		"error.captcha_generate_failed":      "Failed to generate captcha",
		"error.captcha_verify_failed":        "Failed to verify captcha",
		"error.authz_fetch_failed":           "Failed to load permissions",
		"error.role_invalid":                 "Invalid role",
		"error.order_not_found":              "Order not found",
		"error.order_barcode_exists":         "Barcode already used by another order",
		"error.order_in_use":                 "Order is on a delegate sheet and cannot be deleted",
		"error.order_status_invalid":         "Invalid order status",
		"error.cod_amount_invalid":           "Invalid COD amount",
		"error.barcode_required":             "Barcode is required",
		"error.barcode_generate_failed":      "Failed to generate a unique barcode",
		"error.order_fetch_failed":           "Failed to load orders",
		"error.order_create_failed":          "Failed to create order",
		"error.order_update_failed":          "Failed to update order",
		"error.order_delete_failed":          "Failed to delete order",
		"error.order_driver_conflict":        "Order is assigned to another driver",
		"error.qrcode_failed":                "Failed to generate QR code",
		"error.delegate_sheet_not_found":     "Delegate sheet not found",
		"error.delegate_sheet_fetch_failed":  "Failed to load delegate sheets",
		"error.delegate_sheet_create_failed": "Failed to create delegate sheet",
		"error.sheet_duplicate_order":        "Order appears twice on the sheet",
		"error.sheet_empty":                  "Delegate sheet has no orders",
		"error.driver_not_found":             "Driver not found",
		"error.driver_phone_exists":          "Driver phone already exists",
		"error.driver_in_use":                "Driver has orders or sheets and cannot be deleted",
		"error.driver_fetch_failed":          "Failed to load drivers",
		"error.driver_save_failed":           "Failed to save driver",
		"error.driver_delete_failed":         "Failed to delete driver",
		"error.city_not_found":               "City not found",
		"error.city_exists":                  "City already exists",
		"error.city_fetch_failed":            "Failed to load cities",
		"error.city_save_failed":             "Failed to save city",
		"error.city_delete_failed":           "Failed to delete city",
		"error.user_not_found":               "User not found",
		"error.user_email_exists":            "Email already in use",
		"error.last_admin":                   "Cannot remove the last admin",
		"error.cannot_delete_self":           "You cannot delete your own account",
		"error.user_fetch_failed":            "Failed to load users",
		"error.user_save_failed":             "Failed to save user",
		"error.user_delete_failed":           "Failed to delete user",
		"error.product_not_found":            "Product not found",
		"error.product_barcode_exists":       "Product barcode already exists",
		"error.product_unit_invalid":         "Invalid product unit",
		"error.insufficient_stock":           "Insufficient stock",
		"error.product_fetch_failed":         "Failed to load products",
		"error.product_save_failed":          "Failed to save product",
		"error.product_delete_failed":        "Failed to delete product",
		"error.import_file_required":         "Please choose a file",
		"error.import_file_invalid":          "Invalid import file",
		"error.import_type_invalid":          "Invalid import type",
		"error.import_too_large":             "File exceeds %d MB",
		"error.import_failed":                "Import failed",
		"error.export_type_invalid":          "Invalid export type",
		"error.export_failed":                "Export failed",
		"error.dashboard_fetch_failed":       "Failed to load statistics",

		"order_status.entered":               "Entered",
		"order_status.assigned":              "Assigned",
		"order_status.out_for_delivery":      "Out for delivery",
		"order_status.delivered":             "Delivered",
		"order_status.partial_return":        "Partial return",
		"order_status.full_return":           "Full return",
	},
}
