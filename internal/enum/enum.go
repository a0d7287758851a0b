package enum

// ── Group A: State machines ──

const (
	OrderStatusPending   = "PENDING"
	OrderStatusPreparing = "PREPARING"
	OrderStatusReady     = "READY"
	OrderStatusDelivered = "DELIVERED"
)

// ── Group B: Configurable labels ──

const (
	CategoryMains    = "MAINS"
	CategorySalads   = "SALADS"
	CategorySoups    = "SOUPS"
	CategoryDrinks   = "DRINKS"
	CategoryDesserts = "DESSERTS"
)

const (
	StaffRoleManager = "MANAGER"
	StaffRoleWaiter  = "WAITER"
	StaffRoleKitchen = "KITCHEN"
)
