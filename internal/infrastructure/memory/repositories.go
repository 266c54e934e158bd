package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/Tiendas-ops/internal/domain"
	"github.com/jhoicas/Tiendas-ops/internal/domain/entity"
	"github.com/jhoicas/Tiendas-ops/internal/domain/repository"
)

var (
	_ repository.UserRepository          = (*UserRepo)(nil)
	_ repository.StoreRepository         = (*StoreRepo)(nil)
	_ repository.ProductRepository       = (*ProductRepo)(nil)
	_ repository.OrderRepository         = (*OrderRepo)(nil)
	_ repository.ProductUpdateRepository = (*ProductUpdateRepo)(nil)
	_ repository.SupplyRequestRepository = (*SupplyRequestRepo)(nil)
	_ repository.AnalyticsRepository     = (*AnalyticsRepo)(nil)
)

// ── Users ─────────────────────────────────────────────────────────────────────

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct {
	db *DB
}

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	return r.db.access(false, func(s *state) error {
		if err := r.db.failure("users.create"); err != nil {
			return domain.NewStorageError("insert user", err)
		}
		s.nextUserID++
		user.ID = s.nextUserID
		s.users[user.ID] = *user
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	var out *entity.User
	err := r.db.access(false, func(s *state) error {
		if u, ok := s.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) ListByName(_ context.Context, name string) ([]*entity.User, error) {
	var out []*entity.User
	err := r.db.access(false, func(s *state) error {
		for _, id := range sortedUserIDs(s) {
			u := s.users[id]
			if u.Name == name {
				out = append(out, &u)
			}
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) Update(_ context.Context, user *entity.User) error {
	return r.db.access(false, func(s *state) error {
		if _, ok := s.users[user.ID]; !ok {
			return nil
		}
		s.users[user.ID] = *user
		return nil
	})
}

func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	err := r.db.access(false, func(s *state) error {
		for _, id := range sortedUserIDs(s) {
			u := s.users[id]
			out = append(out, &u)
		}
		return nil
	})
	return out, err
}

func sortedUserIDs(s *state) []int64 {
	ids := make([]int64, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ── Stores ────────────────────────────────────────────────────────────────────

// StoreRepo implementación en memoria de StoreRepository.
type StoreRepo struct {
	db   *DB
	inTx bool
}

func (r *StoreRepo) GetByID(_ context.Context, id int64) (*entity.Store, error) {
	var out *entity.Store
	err := r.db.access(r.inTx, func(s *state) error {
		if st, ok := s.stores[id]; ok {
			out = &st
		}
		return nil
	})
	return out, err
}

func (r *StoreRepo) List(_ context.Context) ([]entity.Store, error) {
	return r.filter(func(entity.Store) bool { return true })
}

func (r *StoreRepo) ListByManager(_ context.Context, managerID int64) ([]entity.Store, error) {
	return r.filter(func(st entity.Store) bool { return st.ManagedBy(managerID) })
}

func (r *StoreRepo) filter(keep func(entity.Store) bool) ([]entity.Store, error) {
	out := []entity.Store{}
	err := r.db.access(r.inTx, func(s *state) error {
		for _, st := range s.stores {
			if keep(st) {
				out = append(out, st)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

// ── Products ──────────────────────────────────────────────────────────────────

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	db   *DB
	inTx bool
}

func (r *ProductRepo) Get(_ context.Context, storeID int64, name string) (*entity.Product, error) {
	var out *entity.Product
	err := r.db.access(r.inTx, func(s *state) error {
		if p, ok := s.products[productKey{storeID, name}]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a Get: el lock global de TxRunner ya serializa la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, storeID int64, name string) (*entity.Product, error) {
	return r.Get(ctx, storeID, name)
}

func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	return r.db.access(r.inTx, func(s *state) error {
		if err := r.db.failure("products.update"); err != nil {
			return domain.NewStorageError("update product", err)
		}
		k := productKey{product.StoreID, product.Name}
		if _, ok := s.products[k]; !ok {
			return nil
		}
		if product.UnitsInStock < 0 {
			return domain.NewStorageError("update product", fmt.Errorf("check units_in_stock >= 0"))
		}
		s.products[k] = *product
		return nil
	})
}

func (r *ProductRepo) AddUnits(_ context.Context, storeID int64, name string, delta int) (int, error) {
	var units int
	err := r.db.access(r.inTx, func(s *state) error {
		if err := r.db.failure("products.add_units"); err != nil {
			return domain.NewStorageError("add product units", err)
		}
		k := productKey{storeID, name}
		p, ok := s.products[k]
		if !ok {
			return domain.ErrProductNotFound
		}
		if p.UnitsInStock+delta < 0 {
			return domain.ErrInsufficientStock
		}
		p.UnitsInStock += delta
		s.products[k] = p
		units = p.UnitsInStock
		return nil
	})
	return units, err
}

func (r *ProductRepo) ListByStore(_ context.Context, storeID int64) ([]*entity.Product, error) {
	return r.list(func(p entity.Product) bool { return p.StoreID == storeID })
}

func (r *ProductRepo) ListAll(_ context.Context) ([]*entity.Product, error) {
	return r.list(func(entity.Product) bool { return true })
}

func (r *ProductRepo) list(keep func(entity.Product) bool) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.db.access(r.inTx, func(s *state) error {
		for _, p := range s.products {
			if keep(p) {
				p := p
				out = append(out, &p)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].StoreID != out[j].StoreID {
			return out[i].StoreID < out[j].StoreID
		}
		return out[i].Name < out[j].Name
	})
	return out, err
}

// ── Orders ────────────────────────────────────────────────────────────────────

// OrderRepo implementación en memoria de OrderRepository.
type OrderRepo struct {
	db   *DB
	inTx bool
}

func (r *OrderRepo) Create(_ context.Context, order *entity.Order) error {
	return r.db.access(r.inTx, func(s *state) error {
		if err := r.db.failure("orders.create"); err != nil {
			return domain.NewStorageError("insert order", err)
		}
		s.nextOrder++
		order.OrderNumber = s.nextOrder
		if order.OrderTime.IsZero() {
			order.OrderTime = r.db.now()
		}
		s.orders = append(s.orders, *order)
		return nil
	})
}

func (r *OrderRepo) ListRecentByCustomer(_ context.Context, customerID int64, limit int) ([]*entity.Order, error) {
	var out []*entity.Order
	err := r.db.access(r.inTx, func(s *state) error {
		for _, o := range newestOrders(s.orders) {
			if o.CustomerID != customerID {
				continue
			}
			o := o
			out = append(out, &o)
			if len(out) == limit {
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *OrderRepo) ListRecent(_ context.Context, limit int) ([]*entity.OrderWithCustomer, error) {
	var out []*entity.OrderWithCustomer
	err := r.db.access(r.inTx, func(s *state) error {
		for _, o := range newestOrders(s.orders) {
			u, ok := s.users[o.CustomerID]
			if !ok {
				continue // INNER JOIN con users
			}
			out = append(out, &entity.OrderWithCustomer{Order: o, CustomerName: u.Name})
			if len(out) == limit {
				return nil
			}
		}
		return nil
	})
	return out, err
}

// newestOrders copia y ordena por fecha descendente; empate por número descendente.
func newestOrders(orders []entity.Order) []entity.Order {
	sorted := append([]entity.Order(nil), orders...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].OrderTime.Equal(sorted[j].OrderTime) {
			return sorted[i].OrderTime.After(sorted[j].OrderTime)
		}
		return sorted[i].OrderNumber > sorted[j].OrderNumber
	})
	return sorted
}

// ── Product updates ───────────────────────────────────────────────────────────

// ProductUpdateRepo implementación en memoria de ProductUpdateRepository.
type ProductUpdateRepo struct {
	db   *DB
	inTx bool
}

func (r *ProductUpdateRepo) Create(_ context.Context, update *entity.ProductUpdate) error {
	return r.db.access(r.inTx, func(s *state) error {
		if err := r.db.failure("updates.create"); err != nil {
			return domain.NewStorageError("insert product update", err)
		}
		s.nextUpdate++
		update.UpdateNumber = s.nextUpdate
		if update.UpdatedOn.IsZero() {
			update.UpdatedOn = r.db.now()
		}
		s.updates = append(s.updates, *update)
		return nil
	})
}

func (r *ProductUpdateRepo) ListRecentByManager(_ context.Context, managerID int64, limit int) ([]*entity.ProductUpdate, error) {
	var out []*entity.ProductUpdate
	err := r.db.access(r.inTx, func(s *state) error {
		sorted := append([]entity.ProductUpdate(nil), s.updates...)
		sort.SliceStable(sorted, func(i, j int) bool {
			if !sorted[i].UpdatedOn.Equal(sorted[j].UpdatedOn) {
				return sorted[i].UpdatedOn.After(sorted[j].UpdatedOn)
			}
			return sorted[i].UpdateNumber > sorted[j].UpdateNumber
		})
		for _, u := range sorted {
			if u.ManagerID != managerID {
				continue
			}
			u := u
			if m, ok := s.users[managerID]; ok {
				u.ManagerName = m.Name
			}
			out = append(out, &u)
			if len(out) == limit {
				return nil
			}
		}
		return nil
	})
	return out, err
}

// ── Supply requests ───────────────────────────────────────────────────────────

// SupplyRequestRepo implementación en memoria de SupplyRequestRepository.
type SupplyRequestRepo struct {
	db   *DB
	inTx bool
}

func (r *SupplyRequestRepo) Create(_ context.Context, req *entity.SupplyRequest) error {
	return r.db.access(r.inTx, func(s *state) error {
		if err := r.db.failure("supply.create"); err != nil {
			return domain.NewStorageError("insert supply request", err)
		}
		s.nextSupplyID++
		req.RequestNumber = s.nextSupplyID
		s.supply = append(s.supply, *req)
		return nil
	})
}

func (r *SupplyRequestRepo) ListByManager(_ context.Context, managerID int64) ([]*entity.SupplyRequest, error) {
	var out []*entity.SupplyRequest
	err := r.db.access(r.inTx, func(s *state) error {
		for _, req := range s.supply {
			if req.ManagerID == managerID {
				req := req
				out = append(out, &req)
			}
		}
		return nil
	})
	return out, err
}

// ── Analytics ─────────────────────────────────────────────────────────────────

// AnalyticsRepo implementación en memoria de AnalyticsRepository.
type AnalyticsRepo struct {
	db *DB
}

func (r *AnalyticsRepo) TopProducts(_ context.Context, managerID int64, limit int) ([]repository.ProductRanking, error) {
	var out []repository.ProductRanking
	err := r.db.access(false, func(s *state) error {
		counts := map[string]int{}
		for _, o := range s.orders {
			st, ok := s.stores[o.StoreID]
			if !ok || !st.ManagedBy(managerID) {
				continue
			}
			if _, ok := s.products[productKey{o.StoreID, o.ProductName}]; !ok {
				continue // JOIN con products
			}
			counts[o.ProductName]++
		}
		for name, n := range counts {
			out = append(out, repository.ProductRanking{ProductName: name, OrderCount: n})
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].OrderCount != out[j].OrderCount {
				return out[i].OrderCount > out[j].OrderCount
			}
			return out[i].ProductName < out[j].ProductName
		})
		return nil
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, err
}

func (r *AnalyticsRepo) TopCustomers(_ context.Context, managerID int64, limit int) ([]repository.CustomerRanking, error) {
	var out []repository.CustomerRanking
	err := r.db.access(false, func(s *state) error {
		counts := map[int64]int{}
		for _, o := range s.orders {
			st, ok := s.stores[o.StoreID]
			if !ok || !st.ManagedBy(managerID) {
				continue
			}
			counts[o.CustomerID]++
		}
		for id, n := range counts {
			out = append(out, repository.CustomerRanking{
				CustomerID:   id,
				CustomerName: s.users[id].Name,
				OrderCount:   n,
			})
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].OrderCount != out[j].OrderCount {
				return out[i].OrderCount > out[j].OrderCount
			}
			return out[i].CustomerID < out[j].CustomerID
		})
		return nil
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, err
}
