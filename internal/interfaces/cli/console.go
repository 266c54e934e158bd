// Package cli consola del operador: menús numerados por rol, despacho autorizado
// de cada operación y reporte de errores por categoría.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	appanalytics "github.com/jhoicas/Tiendas-ops/internal/application/analytics"
	"github.com/jhoicas/Tiendas-ops/internal/application/access"
	"github.com/jhoicas/Tiendas-ops/internal/application/auth"
	"github.com/jhoicas/Tiendas-ops/internal/application/dto"
	"github.com/jhoicas/Tiendas-ops/internal/application/inventory"
	"github.com/jhoicas/Tiendas-ops/internal/application/order"
	"github.com/jhoicas/Tiendas-ops/internal/application/usecase"
	"github.com/jhoicas/Tiendas-ops/internal/domain"
	"github.com/jhoicas/Tiendas-ops/pkg/logger"
)

// Deps dependencias de la consola.
type Deps struct {
	Auth      *auth.AuthUseCase
	Users     *usecase.UserUseCase
	Stores    *usecase.StoreUseCase
	Ledger    *inventory.LedgerUseCase
	Supply    *inventory.SupplyUseCase
	Orders    *order.OrderUseCase
	Analytics *appanalytics.AnalyticsUseCase
	ReportDir string
	Log       *logger.Logger
}

type handlerFunc func(ctx context.Context, sess *auth.Session) error

// Console máquina de estados Anónimo / Autenticado(rol).
// La sesión vive solo aquí y se pasa explícitamente a cada operación.
type Console struct {
	deps     Deps
	in       LineReader
	out      io.Writer
	log      *logger.Logger
	sess     *auth.Session
	handlers map[access.Operation]handlerFunc
}

// New construye la consola sobre la entrada y salida dadas.
func New(deps Deps, in LineReader, out io.Writer) *Console {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	c := &Console{deps: deps, in: in, out: out, log: log.Named("cli")}
	c.handlers = map[access.Operation]handlerFunc{
		access.OpLogout:                c.logout,
		access.OpUpdateOwnProfile:      c.updateOwnProfile,
		access.OpFindNearbyStores:      c.findNearbyStores,
		access.OpListStoreProducts:     c.listStoreProducts,
		access.OpPlaceOrder:            c.placeOrder,
		access.OpViewOwnRecentOrders:   c.viewOwnRecentOrders,
		access.OpViewRecentOrdersAll:   c.viewRecentOrdersAll,
		access.OpUpdateProduct:         c.updateProduct,
		access.OpViewOwnRecentUpdates:  c.viewOwnRecentUpdates,
		access.OpViewTopProducts:       c.viewTopProducts,
		access.OpViewTopCustomers:      c.viewTopCustomers,
		access.OpPlaceSupplyRequest:    c.placeSupplyRequest,
		access.OpViewOwnSupplyRequests: c.viewOwnSupplyRequests,
		access.OpExportAnalyticsReport: c.exportAnalyticsReport,
		access.OpListUsers:             c.listUsers,
		access.OpUpdateUser:            c.updateUser,
		access.OpListAllProducts:       c.listAllProducts,
		access.OpUpdateAnyProduct:      c.updateProduct,
	}
	return c
}

var labels = map[access.Operation]string{
	access.OpLogout:                "Cerrar sesión",
	access.OpUpdateOwnProfile:      "Actualizar mis datos",
	access.OpFindNearbyStores:      "Buscar tiendas cercanas",
	access.OpListStoreProducts:     "Ver productos de una tienda",
	access.OpPlaceOrder:            "Hacer un pedido",
	access.OpViewOwnRecentOrders:   "Ver mis pedidos recientes",
	access.OpViewRecentOrdersAll:   "Ver pedidos recientes",
	access.OpUpdateProduct:         "Actualizar producto",
	access.OpViewOwnRecentUpdates:  "Ver mis actualizaciones recientes",
	access.OpViewTopProducts:       "Productos más pedidos",
	access.OpViewTopCustomers:      "Clientes con más pedidos",
	access.OpPlaceSupplyRequest:    "Solicitar reabastecimiento",
	access.OpViewOwnSupplyRequests: "Ver mis solicitudes de reabastecimiento",
	access.OpExportAnalyticsReport: "Exportar reporte PDF",
	access.OpListUsers:             "Listar usuarios",
	access.OpUpdateUser:            "Actualizar usuario",
	access.OpListAllProducts:       "Listar todos los productos",
	access.OpUpdateAnyProduct:      "Actualizar cualquier producto",
}

// Run atiende al operador hasta que elige Salir o se agota la entrada.
func (c *Console) Run(ctx context.Context) error {
	for {
		var err error
		if c.sess == nil {
			var exit bool
			exit, err = c.anonymous(ctx)
			if exit {
				return nil
			}
		} else {
			err = c.authenticated(ctx)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

// anonymous menú sin sesión. exit=true cuando el operador elige Salir.
func (c *Console) anonymous(ctx context.Context) (exit bool, err error) {
	c.printf("")
	c.printf("1) Crear cuenta")
	c.printf("2) Iniciar sesión")
	c.printf("3) Salir")
	choice, err := c.ask("Opción")
	if err != nil {
		return false, err
	}
	switch strings.TrimSpace(choice) {
	case "1":
		return false, c.report(c.createAccount(ctx))
	case "2":
		return false, c.report(c.login(ctx))
	case "3":
		c.printf("Hasta luego.")
		return true, nil
	default:
		c.printf("Opción inválida.")
		return false, nil
	}
}

func (c *Console) authenticated(ctx context.Context) error {
	ops := access.Permitted(c.sess.Role)
	c.printf("")
	c.printf("[%s · %s]", c.sess.Name, c.sess.Role)
	for i, op := range ops {
		c.printf("%d) %s", i+1, labels[op])
	}
	choice, err := c.ask("Opción")
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(strings.TrimSpace(choice))
	if err != nil || n < 1 || n > len(ops) {
		// fuera del menú del rol: mismo tratamiento que una operación no permitida
		return c.report(fmt.Errorf("%w (opción %q)", domain.ErrUnauthorized, strings.TrimSpace(choice)))
	}
	return c.report(c.dispatch(ctx, ops[n-1]))
}

// dispatch resuelve de nuevo la sesión desde su token, autoriza op y ejecuta el handler.
func (c *Console) dispatch(ctx context.Context, op access.Operation) error {
	if c.sess == nil {
		return domain.ErrSessionExpired
	}
	sess, err := c.deps.Auth.Resolve(c.sess.Token)
	if err != nil {
		c.sess = nil
		return err
	}
	opLog := c.log.ForSession(sess.ID.String(), sess.UserID, sess.Role.String())
	if err := access.Authorize(sess, op); err != nil {
		opLog.Warn().Str("op", op.String()).Msg("operación rechazada")
		return err
	}
	opLog.Debug().Str("op", op.String()).Msg("operación despachada")
	h, ok := c.handlers[op]
	if !ok {
		return domain.ErrUnauthorized
	}
	return h(ctx, sess)
}

// report muestra el error al operador según su categoría y lo absorbe.
// Solo io.EOF y la cancelación del contexto se propagan.
func (c *Console) report(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		return err
	}
	resp := toErrorResponse(err)
	if kind := domain.KindOf(err); kind == domain.KindStorage || kind == domain.KindUnknown {
		c.log.Error().Err(err).Str("kind", kind.String()).Msg("operación fallida")
	}
	c.printf("Error [%s]: %s", resp.Code, resp.Message)
	return nil
}

func toErrorResponse(err error) dto.ErrorResponse {
	kind := domain.KindOf(err)
	code := strings.ToUpper(kind.String())
	switch kind {
	case domain.KindStorage, domain.KindUnknown:
		return dto.ErrorResponse{Code: code, Message: "error interno, intente de nuevo"}
	default:
		return dto.ErrorResponse{Code: code, Message: err.Error()}
	}
}
