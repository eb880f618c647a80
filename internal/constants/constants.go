package constants

// Order status values
const (
	OrderStatusEntered        = "entered"
	OrderStatusAssigned       = "assigned"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusDelivered      = "delivered"
	OrderStatusPartialReturn  = "partial_return"
	OrderStatusFullReturn     = "full_return"
)

// OrderStatuses lists every order status in lifecycle order.
var OrderStatuses = []string{
	OrderStatusEntered,
	OrderStatusAssigned,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
	OrderStatusPartialReturn,
	OrderStatusFullReturn,
}

// Staff roles
const (
	RoleAdmin       = "admin"
	RoleDataEntry   = "data_entry"
	RoleAccounts    = "accounts"
	RoleInventory   = "inventory"
	RoleOrderSearch = "order_search"

	// RoleLegacyUser is the generic role accepted by the user import file.
	RoleLegacyUser = "user"
)

// StaffRoles lists the assignable roles.
var StaffRoles = []string{
	RoleAdmin,
	RoleDataEntry,
	RoleAccounts,
	RoleInventory,
	RoleOrderSearch,
}

// Product units
const (
	ProductUnitPiece  = "piece"
	ProductUnitKg     = "kg"
	ProductUnitCarton = "carton"
)

// Import entity types
const (
	ImportTypeOrders  = "orders"
	ImportTypeDrivers = "drivers"
	ImportTypeCities  = "cities"
	ImportTypeUsers   = "users"
	ImportTypeAll     = "all"
)

// Export types
const (
	ExportTypeOrders  = "orders"
	ExportTypeDrivers = "drivers"
	ExportTypeCities  = "cities"
	ExportTypeUsers   = "users"
	ExportTypeWaybill = "waybill"
)

// Import row outcomes
const (
	ImportOutcomeAdded   = "added"
	ImportOutcomeSkipped = "skipped"
	ImportOutcomeFailed  = "failed"
)

// Queue names
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// Async task types
const (
	TaskOrderStatusChanged  = "order:status_changed"
	TaskDelegateSheetCreate = "delegate_sheet:created"
)

// Captcha
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
	CaptchaSceneLogin    = "login"
)

// Barcode prefixes
const (
	OrderBarcodePrefix = "ORD"
)

// Order history sources
const (
	OrderLogSourceManual        = "manual"
	OrderLogSourceBulk          = "bulk"
	OrderLogSourceDelegateSheet = "delegate_sheet"
	OrderLogSourceImport        = "import"
)
