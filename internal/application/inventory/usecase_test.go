package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tiendas-ops/internal/application/dto"
	"github.com/jhoicas/Tiendas-ops/internal/application/inventory"
	"github.com/jhoicas/Tiendas-ops/internal/domain"
	"github.com/jhoicas/Tiendas-ops/internal/domain/entity"
	"github.com/jhoicas/Tiendas-ops/internal/infrastructure/memory"
	"github.com/jhoicas/Tiendas-ops/pkg/logger"
)

const (
	managerID = int64(9)
	otherMgr  = int64(10)
	adminID   = int64(1)
)

var (
	manager = inventory.Actor{ID: managerID, Role: entity.RoleManager}
	admin   = inventory.Actor{ID: adminID, Role: entity.RoleAdmin}
)

func seed(t *testing.T) *memory.DB {
	t.Helper()
	db := memory.NewDB()
	db.AddUser(entity.User{ID: adminID, Name: "root", Role: entity.RoleAdmin})
	db.AddUser(entity.User{ID: managerID, Name: "gina", Role: entity.RoleManager})
	db.AddUser(entity.User{ID: otherMgr, Name: "hugo", Role: entity.RoleManager})
	db.AddStore(entity.Store{ID: 3, Latitude: 10, Longitude: 10, ManagerID: managerID})
	db.AddStore(entity.Store{ID: 7, Latitude: 20, Longitude: 20, ManagerID: otherMgr})
	db.AddProduct(entity.Product{StoreID: 3, Name: "arroz", UnitsInStock: 3, PricePerUnit: decimal.RequireFromString("2.50")})
	db.AddProduct(entity.Product{StoreID: 7, Name: "arroz", UnitsInStock: 8, PricePerUnit: decimal.RequireFromString("2.40")})
	return db
}

func newLedger(db *memory.DB) *inventory.LedgerUseCase {
	r := db.Repos()
	return inventory.NewLedgerUseCase(memory.NewTxRunner(db), r.Stores, r.Products, r.Updates, 5, logger.Nop())
}

func newSupply(db *memory.DB) *inventory.SupplyUseCase {
	r := db.Repos()
	return inventory.NewSupplyUseCase(memory.NewTxRunner(db), r.Stores, r.Supply, logger.Nop())
}

// ────────────────────────────────────────────────────────────────────────────
// Consultas
// ────────────────────────────────────────────────────────────────────────────

func TestCheckStock(t *testing.T) {
	uc := newLedger(seed(t))

	units, err := uc.CheckStock(context.Background(), 3, "arroz")
	require.NoError(t, err)
	assert.Equal(t, 3, units)

	_, err = uc.CheckStock(context.Background(), 3, "pan")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	ok, err := uc.ProductExists(context.Background(), 7, "arroz")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestListProducts_GerenteSoloSusTiendas(t *testing.T) {
	uc := newLedger(seed(t))

	list, err := uc.ListProducts(context.Background(), manager, 3)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "arroz", list[0].Name)

	_, err = uc.ListProducts(context.Background(), manager, 7)
	assert.ErrorIs(t, err, domain.ErrNotStoreOwner)

	customer := inventory.Actor{ID: 50, Role: entity.RoleCustomer}
	_, err = uc.ListProducts(context.Background(), customer, 7)
	assert.NoError(t, err)

	_, err = uc.ListProducts(context.Background(), customer, 99)
	assert.ErrorIs(t, err, domain.ErrStoreNotFound)
}

func TestListAllProducts_OrdenadoPorTienda(t *testing.T) {
	uc := newLedger(seed(t))
	list, err := uc.ListAllProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.EqualValues(t, 3, list[0].StoreID)
	assert.EqualValues(t, 7, list[1].StoreID)
}

// ────────────────────────────────────────────────────────────────────────────
// UpdateProduct
// ────────────────────────────────────────────────────────────────────────────

func TestUpdateProduct_GerenteDejaRegistro(t *testing.T) {
	db := seed(t)
	uc := newLedger(db)

	out, err := uc.UpdateProductFromRequest(context.Background(), manager, dto.UpdateProductRequest{
		StoreID: "3", ProductName: "arroz", NewUnits: "12",
	})
	require.NoError(t, err)
	assert.Equal(t, 12, out.UnitsInStock)
	assert.True(t, out.PricePerUnit.Equal(decimal.RequireFromString("2.50")))

	updates := db.Updates()
	require.Len(t, updates, 1)
	assert.Equal(t, managerID, updates[0].ManagerID)
	assert.EqualValues(t, 3, updates[0].StoreID)

	recent, err := uc.ListRecentUpdates(context.Background(), managerID)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "gina", recent[0].ManagerName)
}

func TestUpdateProduct_TiendaAjenaNoCambiaNada(t *testing.T) {
	db := seed(t)
	uc := newLedger(db)

	_, err := uc.UpdateProductFromRequest(context.Background(), manager, dto.UpdateProductRequest{
		StoreID: "7", ProductName: "arroz", NewPrice: "1.00",
	})
	assert.ErrorIs(t, err, domain.ErrNotStoreOwner)

	p, _ := db.Product(7, "arroz")
	assert.True(t, p.PricePerUnit.Equal(decimal.RequireFromString("2.40")))
	assert.Empty(t, db.Updates())
}

func TestUpdateProduct_SinCambios(t *testing.T) {
	db := seed(t)
	uc := newLedger(db)

	_, err := uc.UpdateProductFromRequest(context.Background(), manager, dto.UpdateProductRequest{StoreID: "3", ProductName: "arroz"})
	assert.ErrorIs(t, err, domain.ErrNoChangeRequested)

	p, _ := db.Product(3, "arroz")
	assert.Equal(t, 3, p.UnitsInStock)
	assert.Empty(t, db.Updates())
}

func TestUpdateProduct_AdminSinRegistro(t *testing.T) {
	db := seed(t)
	uc := newLedger(db)

	_, err := uc.UpdateProductFromRequest(context.Background(), admin, dto.UpdateProductRequest{
		StoreID: "7", ProductName: "arroz", NewUnits: "0", NewPrice: "3.99",
	})
	require.NoError(t, err)

	p, _ := db.Product(7, "arroz")
	assert.Equal(t, 0, p.UnitsInStock)
	assert.True(t, p.PricePerUnit.Equal(decimal.RequireFromString("3.99")))
	assert.Empty(t, db.Updates())
}

func TestUpdateProduct_Errores(t *testing.T) {
	cases := []struct {
		name  string
		actor inventory.Actor
		req   dto.UpdateProductRequest
		want  error
	}{
		{"cliente", inventory.Actor{ID: 50, Role: entity.RoleCustomer}, dto.UpdateProductRequest{StoreID: "3", ProductName: "arroz", NewUnits: "1"}, domain.ErrUnauthorized},
		{"tienda inexistente", manager, dto.UpdateProductRequest{StoreID: "99", ProductName: "arroz", NewUnits: "1"}, domain.ErrStoreNotFound},
		{"producto inexistente", manager, dto.UpdateProductRequest{StoreID: "3", ProductName: "pan", NewUnits: "1"}, domain.ErrProductNotFound},
		{"unidades negativas", manager, dto.UpdateProductRequest{StoreID: "3", ProductName: "arroz", NewUnits: "-1"}, domain.ErrInvalidFormat},
		{"precio con tres decimales", manager, dto.UpdateProductRequest{StoreID: "3", ProductName: "arroz", NewPrice: "1.999"}, domain.ErrInvalidFormat},
		{"tienda no numérica", manager, dto.UpdateProductRequest{StoreID: "x", ProductName: "arroz", NewUnits: "1"}, domain.ErrInvalidFormat},
		{"nombre vacío", manager, dto.UpdateProductRequest{StoreID: "3", ProductName: " ", NewUnits: "1"}, domain.ErrEmptyInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := seed(t)
			_, err := newLedger(db).UpdateProductFromRequest(context.Background(), tc.actor, tc.req)
			assert.ErrorIs(t, err, tc.want)
			assert.Empty(t, db.Updates())
		})
	}
}

func TestUpdateProduct_FalloEnBitacoraRevierteProducto(t *testing.T) {
	db := seed(t)
	uc := newLedger(db)
	db.FailOn("updates.create", errors.New("disk full"))

	_, err := uc.UpdateProductFromRequest(context.Background(), manager, dto.UpdateProductRequest{StoreID: "3", ProductName: "arroz", NewUnits: "40"})
	assert.ErrorIs(t, err, domain.ErrStorage)

	p, _ := db.Product(3, "arroz")
	assert.Equal(t, 3, p.UnitsInStock)
}

// ────────────────────────────────────────────────────────────────────────────
// Reabastecimiento
// ────────────────────────────────────────────────────────────────────────────

func TestManagedStores(t *testing.T) {
	uc := newSupply(seed(t))

	stores, err := uc.ManagedStores(context.Background(), managerID)
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.EqualValues(t, 3, stores[0].ID)

	_, err = uc.ManagedStores(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNoManagedStores)
}

func TestRequestSupply_SumaStockYRegistra(t *testing.T) {
	db := seed(t)
	uc := newSupply(db)

	out, err := uc.RequestSupplyFromRequest(context.Background(), managerID, dto.SupplyRequestInput{
		StoreID: "3", WarehouseID: "2", ProductName: "arroz", Units: "10",
	})
	require.NoError(t, err)
	assert.Equal(t, 13, out.NewStock)
	assert.NotZero(t, out.RequestNumber)

	reqs := db.SupplyRequests()
	require.Len(t, reqs, 1)
	assert.Equal(t, 10, reqs[0].UnitsRequested)
	assert.EqualValues(t, 2, reqs[0].WarehouseID)
}

func TestRequestSupply_Atomico(t *testing.T) {
	for _, op := range []string{"supply.create", "products.add_units"} {
		t.Run(op, func(t *testing.T) {
			db := seed(t)
			uc := newSupply(db)
			db.FailOn(op, errors.New("conexión perdida"))

			_, err := uc.RequestSupply(context.Background(), managerID, inventory.SupplyInput{
				StoreID: 3, WarehouseID: 2, ProductName: "arroz", Units: 10,
			})
			assert.ErrorIs(t, err, domain.ErrStorage)

			p, _ := db.Product(3, "arroz")
			assert.Equal(t, 3, p.UnitsInStock)
			assert.Empty(t, db.SupplyRequests())
		})
	}
}

func TestRequestSupply_Errores(t *testing.T) {
	cases := []struct {
		name string
		in   dto.SupplyRequestInput
		want error
	}{
		{"tienda ajena", dto.SupplyRequestInput{StoreID: "7", WarehouseID: "2", ProductName: "arroz", Units: "1"}, domain.ErrNotStoreOwner},
		{"tienda inexistente", dto.SupplyRequestInput{StoreID: "99", WarehouseID: "2", ProductName: "arroz", Units: "1"}, domain.ErrNotStoreOwner},
		{"producto inexistente", dto.SupplyRequestInput{StoreID: "3", WarehouseID: "2", ProductName: "pan", Units: "1"}, domain.ErrProductNotFound},
		{"unidades cero", dto.SupplyRequestInput{StoreID: "3", WarehouseID: "2", ProductName: "arroz", Units: "0"}, domain.ErrInvalidFormat},
		{"unidades fuera de rango INTEGER", dto.SupplyRequestInput{StoreID: "3", WarehouseID: "2", ProductName: "arroz", Units: "3000000000"}, domain.ErrInvalidFormat},
		{"bodega vacía", dto.SupplyRequestInput{StoreID: "3", WarehouseID: "", ProductName: "arroz", Units: "1"}, domain.ErrEmptyInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := seed(t)
			_, err := newSupply(db).RequestSupplyFromRequest(context.Background(), managerID, tc.in)
			assert.ErrorIs(t, err, tc.want)
			assert.Empty(t, db.SupplyRequests())
		})
	}
}

func TestListRequests_SoloDelGerente(t *testing.T) {
	db := seed(t)
	uc := newSupply(db)
	ctx := context.Background()

	empty, err := uc.ListRequests(ctx, managerID)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = uc.RequestSupply(ctx, managerID, inventory.SupplyInput{StoreID: 3, WarehouseID: 2, ProductName: "arroz", Units: 4})
	require.NoError(t, err)
	_, err = uc.RequestSupply(ctx, otherMgr, inventory.SupplyInput{StoreID: 7, WarehouseID: 5, ProductName: "arroz", Units: 1})
	require.NoError(t, err)
	_, err = uc.RequestSupply(ctx, managerID, inventory.SupplyInput{StoreID: 3, WarehouseID: 6, ProductName: "arroz", Units: 2})
	require.NoError(t, err)

	reqs, err := uc.ListRequests(ctx, managerID)
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.Less(t, reqs[0].RequestNumber, reqs[1].RequestNumber)
	assert.Equal(t, 4, reqs[0].Units)
	assert.EqualValues(t, 6, reqs[1].WarehouseID)
	for _, r := range reqs {
		assert.EqualValues(t, 3, r.StoreID)
	}
}
