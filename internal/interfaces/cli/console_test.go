package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/Tiendas-ops/internal/application/analytics"
	"github.com/jhoicas/Tiendas-ops/internal/application/access"
	"github.com/jhoicas/Tiendas-ops/internal/application/auth"
	"github.com/jhoicas/Tiendas-ops/internal/application/dto"
	"github.com/jhoicas/Tiendas-ops/internal/application/inventory"
	"github.com/jhoicas/Tiendas-ops/internal/application/order"
	"github.com/jhoicas/Tiendas-ops/internal/application/usecase"
	"github.com/jhoicas/Tiendas-ops/internal/domain"
	"github.com/jhoicas/Tiendas-ops/internal/domain/entity"
	"github.com/jhoicas/Tiendas-ops/internal/infrastructure/memory"
	"github.com/jhoicas/Tiendas-ops/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type harness struct {
	db   *memory.DB
	deps Deps
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := memory.NewDB()
	hash := func(pw string) string {
		h, err := auth.HashPassword(pw)
		require.NoError(t, err)
		return h
	}
	db.AddUser(entity.User{Name: "ana", PasswordHash: hash("Passw0rd!"), Latitude: 10, Longitude: 10, Role: entity.RoleCustomer})
	gina := db.AddUser(entity.User{Name: "gina", PasswordHash: hash("Gerente#1"), Latitude: 50, Longitude: 50, Role: entity.RoleManager})
	db.AddUser(entity.User{Name: "root", PasswordHash: hash("Admin#123"), Latitude: 1, Longitude: 1, Role: entity.RoleAdmin})
	db.AddStore(entity.Store{ID: 1, Latitude: 12, Longitude: 12, ManagerID: gina.ID})
	db.AddStore(entity.Store{ID: 7, Latitude: 60, Longitude: 60})
	db.AddProduct(entity.Product{StoreID: 1, Name: "arroz", UnitsInStock: 3, PricePerUnit: decimal.RequireFromString("2.50")})
	db.AddProduct(entity.Product{StoreID: 7, Name: "pan", UnitsInStock: 4, PricePerUnit: decimal.RequireFromString("1.00")})

	repos := db.Repos()
	tx := memory.NewTxRunner(db)
	log := logger.Nop()
	return &harness{
		db: db,
		deps: Deps{
			Auth:      auth.NewAuthUseCase(db.Users(), auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "test"}, log),
			Users:     usecase.NewUserUseCase(db.Users(), repos.Stores, log),
			Stores:    usecase.NewStoreUseCase(repos.Stores, db.Users(), 30),
			Ledger:    inventory.NewLedgerUseCase(tx, repos.Stores, repos.Products, repos.Updates, 5, log),
			Supply:    inventory.NewSupplyUseCase(tx, repos.Stores, repos.Supply, log),
			Orders:    order.NewOrderUseCase(tx, repos.Orders, order.Config{DecrementStock: true, RecentLimit: 5}, log),
			Analytics: appanalytics.NewAnalyticsUseCase(db.Analytics(), repos.Stores, db.Users(), nil, 5, log),
			ReportDir: t.TempDir(),
			Log:       log,
		},
	}
}

// run ejecuta la consola con las líneas dadas y devuelve la salida.
func (h *harness) run(t *testing.T, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	c := New(h.deps, NewLineReader(strings.NewReader(strings.Join(lines, "\n")+"\n")), &out)
	require.NoError(t, c.Run(context.Background()))
	return out.String()
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujos por rol
// ──────────────────────────────────────────────────────────────────────────────

func TestConsole_ClientePideConStockInsuficienteYLuegoSuficiente(t *testing.T) {
	h := newHarness(t)
	out := h.run(t,
		"2", "ana", "Passw0rd!",
		"3", "1", "arroz", "5",
		"3", "1", "arroz", "2",
		"4",
		"6",
		"3",
	)

	assert.Contains(t, out, "Bienvenido, ana (customer).")
	assert.Contains(t, out, "Error [CONFLICT]")
	assert.Contains(t, out, "Pedido #1 registrado.")
	assert.Contains(t, out, "Sesión cerrada.")
	assert.Contains(t, out, "Hasta luego.")

	require.Len(t, h.db.Orders(), 1)
	p, _ := h.db.Product(1, "arroz")
	assert.Equal(t, 1, p.UnitsInStock)
}

func TestConsole_CrearCuentaEIniciarSesion(t *testing.T) {
	h := newHarness(t)
	out := h.run(t,
		"1", "bob", "Passw0rd!", "10", "20",
		"1", "bob", "Passw0rd!", "10", "20",
		"2", "bob", "Passw0rd!",
		"1",
		"6", "3",
	)

	assert.Contains(t, out, "Cuenta creada: bob")
	assert.Contains(t, out, "Error [AUTH]")
	assert.Contains(t, out, "Bienvenido, bob (customer).")
	assert.Contains(t, out, "Tienda")
}

func TestConsole_GerenteNoPuedeModificarTiendaAjena(t *testing.T) {
	h := newHarness(t)
	out := h.run(t,
		"2", "gina", "Gerente#1",
		"3", "7", "pan", "10", "",
		"3", "1", "arroz", "9", "",
		"4",
		"11", "3",
	)

	assert.Contains(t, out, "Error [AUTH]")
	assert.Contains(t, out, "Producto actualizado: arroz en tienda 1, 9 unidades a 2.50.")
	pan, _ := h.db.Product(7, "pan")
	assert.Equal(t, 4, pan.UnitsInStock)
	require.Len(t, h.db.Updates(), 1)
	assert.EqualValues(t, 1, h.db.Updates()[0].StoreID)
}

func TestConsole_GerenteSolicitaReabastecimiento(t *testing.T) {
	h := newHarness(t)
	out := h.run(t,
		"2", "gina", "Gerente#1",
		"8",
		"7", "1", "arroz", "4", "3",
		"8",
		"11", "3",
	)

	assert.Contains(t, out, "No hay solicitudes.")
	assert.Contains(t, out, "stock actual 7.")
	require.Len(t, h.db.SupplyRequests(), 1)
	assert.Contains(t, out, "Bodega")
}

func TestConsole_AdminListaUsuarios(t *testing.T) {
	h := newHarness(t)
	out := h.run(t, "2", "root", "Admin#123", "1", "3", "6", "3")

	assert.Contains(t, out, "gina")
	assert.Contains(t, out, "manager")
	assert.Contains(t, out, "pan")
}

func TestConsole_OpcionInvalidaYFinDeEntrada(t *testing.T) {
	h := newHarness(t)
	out := h.run(t, "9", "2", "ana", "Passw0rd!", "99", "x")
	assert.Equal(t, 1, strings.Count(out, "Opción inválida."))
	assert.Equal(t, 2, strings.Count(out, "Error [AUTH]"))
	assert.Contains(t, out, `(opción "99")`)
}

// ──────────────────────────────────────────────────────────────────────────────
// Despacho y reporte de errores
// ──────────────────────────────────────────────────────────────────────────────

func TestDispatch_RechazaRolSinPermisoYSesionCerrada(t *testing.T) {
	h := newHarness(t)
	c := New(h.deps, NewLineReader(strings.NewReader("")), &bytes.Buffer{})
	ctx := context.Background()

	sess, err := h.deps.Auth.Login(ctx, dto.LoginRequest{Name: "ana", Password: "Passw0rd!"})
	require.NoError(t, err)
	c.sess = sess

	assert.ErrorIs(t, c.dispatch(ctx, access.OpListUsers), domain.ErrUnauthorized)

	require.NoError(t, h.deps.Auth.Logout(sess))
	assert.ErrorIs(t, c.dispatch(ctx, access.OpFindNearbyStores), domain.ErrSessionExpired)
	assert.Nil(t, c.sess)
}

func TestToErrorResponse_OcultaDetallesDeAlmacenamiento(t *testing.T) {
	resp := toErrorResponse(domain.NewStorageError("orders.create", errors.New("conexión rechazada")))
	assert.Equal(t, "STORAGE", resp.Code)
	assert.NotContains(t, resp.Message, "conexión")

	resp = toErrorResponse(domain.ErrStoreNotFound)
	assert.Equal(t, "NOT_FOUND", resp.Code)
	assert.Contains(t, resp.Message, "la tienda no existe")
}
