// Package access decide qué operaciones puede ejecutar cada rol.
package access

import (
	"fmt"

	"github.com/jhoicas/Tiendas-ops/internal/application/auth"
	"github.com/jhoicas/Tiendas-ops/internal/domain"
	"github.com/jhoicas/Tiendas-ops/internal/domain/entity"
)

// Operation operación de negocio que la consola puede despachar.
type Operation int

const (
	OpLogout Operation = iota + 1
	OpUpdateOwnProfile

	// Cliente
	OpFindNearbyStores
	OpListStoreProducts
	OpPlaceOrder
	OpViewOwnRecentOrders

	// Gerente
	OpViewRecentOrdersAll
	OpUpdateProduct
	OpViewOwnRecentUpdates
	OpViewTopProducts
	OpViewTopCustomers
	OpPlaceSupplyRequest
	OpViewOwnSupplyRequests
	OpExportAnalyticsReport

	// Admin
	OpListUsers
	OpUpdateUser
	OpListAllProducts
	OpUpdateAnyProduct
)

var opNames = map[Operation]string{
	OpLogout:                "logout",
	OpUpdateOwnProfile:      "update_own_profile",
	OpFindNearbyStores:      "find_nearby_stores",
	OpListStoreProducts:     "list_store_products",
	OpPlaceOrder:            "place_order",
	OpViewOwnRecentOrders:   "view_own_recent_orders",
	OpViewRecentOrdersAll:   "view_recent_orders_all",
	OpUpdateProduct:         "update_product",
	OpViewOwnRecentUpdates:  "view_own_recent_updates",
	OpViewTopProducts:       "view_top_products",
	OpViewTopCustomers:      "view_top_customers",
	OpPlaceSupplyRequest:    "place_supply_request",
	OpViewOwnSupplyRequests: "view_own_supply_requests",
	OpExportAnalyticsReport: "export_analytics_report",
	OpListUsers:             "list_users",
	OpUpdateUser:            "update_user",
	OpListAllProducts:       "list_all_products",
	OpUpdateAnyProduct:      "update_any_product",
}

func (o Operation) String() string {
	if n, ok := opNames[o]; ok {
		return n
	}
	return fmt.Sprintf("operation(%d)", int(o))
}

// permissions tabla de permisos por rol, en el orden en que se muestran en el menú.
var permissions = map[entity.Role][]Operation{
	entity.RoleCustomer: {
		OpFindNearbyStores,
		OpListStoreProducts,
		OpPlaceOrder,
		OpViewOwnRecentOrders,
		OpUpdateOwnProfile,
		OpLogout,
	},
	entity.RoleManager: {
		OpListStoreProducts,
		OpViewRecentOrdersAll,
		OpUpdateProduct,
		OpViewOwnRecentUpdates,
		OpViewTopProducts,
		OpViewTopCustomers,
		OpPlaceSupplyRequest,
		OpViewOwnSupplyRequests,
		OpExportAnalyticsReport,
		OpUpdateOwnProfile,
		OpLogout,
	},
	entity.RoleAdmin: {
		OpListUsers,
		OpUpdateUser,
		OpListAllProducts,
		OpUpdateAnyProduct,
		OpUpdateOwnProfile,
		OpLogout,
	},
}

// Permitted devuelve una copia de las operaciones permitidas para role (vacía si el rol no es válido).
func Permitted(role entity.Role) []Operation {
	if !role.Valid() {
		return nil
	}
	return append([]Operation(nil), permissions[role]...)
}

// Allowed indica si role puede ejecutar op.
func Allowed(role entity.Role, op Operation) bool {
	for _, p := range permissions[role] {
		if p == op {
			return true
		}
	}
	return false
}

// Authorize exige una sesión y que su rol tenga permiso para op.
func Authorize(sess *auth.Session, op Operation) error {
	if sess == nil {
		return domain.ErrSessionExpired
	}
	if !sess.Role.Valid() {
		return fmt.Errorf("%w (rol desconocido %d)", domain.ErrUnauthorized, int(sess.Role))
	}
	if !Allowed(sess.Role, op) {
		return fmt.Errorf("%w (%s como %s)", domain.ErrUnauthorized, op, sess.Role)
	}
	return nil
}
