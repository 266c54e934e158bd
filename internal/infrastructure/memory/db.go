// Package memory implementa los puertos de persistencia en memoria.
// Se usa en los tests de casos de uso y con STORAGE_DRIVER=memory para demos locales.
// Las transacciones toman una copia del estado y la restauran si el callback falla.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Tiendas-ops/internal/application/ports"
	"github.com/jhoicas/Tiendas-ops/internal/domain/entity"
)

type productKey struct {
	storeID int64
	name    string
}

type state struct {
	users    map[int64]entity.User
	stores   map[int64]entity.Store
	products map[productKey]entity.Product
	orders   []entity.Order
	updates  []entity.ProductUpdate
	supply   []entity.SupplyRequest

	nextUserID   int64
	nextOrder    int64
	nextUpdate   int64
	nextSupplyID int64
}

func newState() *state {
	return &state{
		users:    make(map[int64]entity.User),
		stores:   make(map[int64]entity.Store),
		products: make(map[productKey]entity.Product),
	}
}

func (s *state) clone() *state {
	c := &state{
		users:        make(map[int64]entity.User, len(s.users)),
		stores:       make(map[int64]entity.Store, len(s.stores)),
		products:     make(map[productKey]entity.Product, len(s.products)),
		orders:       append([]entity.Order(nil), s.orders...),
		updates:      append([]entity.ProductUpdate(nil), s.updates...),
		supply:       append([]entity.SupplyRequest(nil), s.supply...),
		nextUserID:   s.nextUserID,
		nextOrder:    s.nextOrder,
		nextUpdate:   s.nextUpdate,
		nextSupplyID: s.nextSupplyID,
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.stores {
		c.stores[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	return c
}

// DB almacén en memoria compartido por todos los repositorios.
type DB struct {
	mu    sync.Mutex
	st    *state
	now   func() time.Time
	fails map[string]error
}

// NewDB crea un almacén vacío.
func NewDB() *DB {
	return &DB{st: newState(), now: time.Now, fails: make(map[string]error)}
}

// SetClock reemplaza el reloj (para ordenar por tiempo en tests).
func (db *DB) SetClock(now func() time.Time) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.now = now
}

// FailOn hace que la próxima llamada a la operación op devuelva err (inyección de fallos).
// Operaciones: "users.create", "orders.create", "products.update", "products.add_units",
// "updates.create", "supply.create".
func (db *DB) FailOn(op string, err error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.fails[op] = err
}

// failure consume el fallo programado para op. Requiere db.mu tomado.
func (db *DB) failure(op string) error {
	if err, ok := db.fails[op]; ok {
		delete(db.fails, op)
		return err
	}
	return nil
}

// access ejecuta fn sobre el estado; toma el lock salvo que el repo esté atado a una tx.
func (db *DB) access(inTx bool, fn func(s *state) error) error {
	if !inTx {
		db.mu.Lock()
		defer db.mu.Unlock()
	}
	return fn(db.st)
}

// Repos devuelve los repositorios fuera de transacción.
func (db *DB) Repos() ports.TxRepos {
	return db.repos(false)
}

func (db *DB) repos(inTx bool) ports.TxRepos {
	return ports.TxRepos{
		Stores:   &StoreRepo{db: db, inTx: inTx},
		Products: &ProductRepo{db: db, inTx: inTx},
		Orders:   &OrderRepo{db: db, inTx: inTx},
		Updates:  &ProductUpdateRepo{db: db, inTx: inTx},
		Supply:   &SupplyRequestRepo{db: db, inTx: inTx},
	}
}

// Users devuelve el repositorio de usuarios.
func (db *DB) Users() *UserRepo { return &UserRepo{db: db} }

// Analytics devuelve el repositorio de analítica.
func (db *DB) Analytics() *AnalyticsRepo { return &AnalyticsRepo{db: db} }

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner serializa las transacciones y revierte el estado si fn falla.
type TxRunner struct {
	db *DB
}

// NewTxRunner construye el runner sobre db.
func NewTxRunner(db *DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run toma el lock global, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos ports.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	snapshot := r.db.st.clone()
	if err := fn(r.db.repos(true)); err != nil {
		r.db.st = snapshot
		return err
	}
	return nil
}

// ── Semillas e inspección ─────────────────────────────────────────────────────

// AddUser inserta un usuario tal cual; si ID es 0 asigna el siguiente.
func (db *DB) AddUser(u entity.User) entity.User {
	db.mu.Lock()
	defer db.mu.Unlock()
	if u.ID == 0 {
		db.st.nextUserID++
		u.ID = db.st.nextUserID
	} else if u.ID > db.st.nextUserID {
		db.st.nextUserID = u.ID
	}
	db.st.users[u.ID] = u
	return u
}

// AddStore inserta o reemplaza una tienda.
func (db *DB) AddStore(s entity.Store) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.st.stores[s.ID] = s
}

// AddProduct inserta o reemplaza un producto.
func (db *DB) AddProduct(p entity.Product) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.st.products[productKey{p.StoreID, p.Name}] = p
}

// Product devuelve una copia del producto y si existe.
func (db *DB) Product(storeID int64, name string) (entity.Product, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	p, ok := db.st.products[productKey{storeID, name}]
	return p, ok
}

// Orders devuelve una copia de los pedidos en orden de inserción.
func (db *DB) Orders() []entity.Order {
	db.mu.Lock()
	defer db.mu.Unlock()
	return append([]entity.Order(nil), db.st.orders...)
}

// Updates devuelve una copia de la bitácora de modificaciones.
func (db *DB) Updates() []entity.ProductUpdate {
	db.mu.Lock()
	defer db.mu.Unlock()
	return append([]entity.ProductUpdate(nil), db.st.updates...)
}

// SupplyRequests devuelve una copia de las solicitudes de reabastecimiento.
func (db *DB) SupplyRequests() []entity.SupplyRequest {
	db.mu.Lock()
	defer db.mu.Unlock()
	return append([]entity.SupplyRequest(nil), db.st.supply...)
}
