package analytics_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tiendas-ops/internal/application/analytics"
	"github.com/jhoicas/Tiendas-ops/internal/application/dto"
	"github.com/jhoicas/Tiendas-ops/internal/application/ports"
	"github.com/jhoicas/Tiendas-ops/internal/domain"
	"github.com/jhoicas/Tiendas-ops/internal/domain/entity"
	"github.com/jhoicas/Tiendas-ops/internal/infrastructure/memory"
	"github.com/jhoicas/Tiendas-ops/pkg/logger"
)

const managerID = int64(9)

// fakeReport generador que registra el reporte recibido.
type fakeReport struct {
	got *dto.AnalyticsReportDTO
	err error
}

func (f *fakeReport) GenerateAnalyticsReport(_ context.Context, r *dto.AnalyticsReportDTO) ([]byte, error) {
	f.got = r
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-fake"), nil
}

func seed(t *testing.T) *memory.DB {
	t.Helper()
	db := memory.NewDB()
	db.AddUser(entity.User{ID: 1, Name: "ana", Role: entity.RoleCustomer})
	db.AddUser(entity.User{ID: 2, Name: "beto", Role: entity.RoleCustomer})
	db.AddUser(entity.User{ID: 3, Name: "caro", Role: entity.RoleCustomer})
	db.AddUser(entity.User{ID: managerID, Name: "gina", Role: entity.RoleManager})
	db.AddStore(entity.Store{ID: 1, ManagerID: managerID})
	db.AddStore(entity.Store{ID: 2, ManagerID: managerID})
	db.AddStore(entity.Store{ID: 3})
	for _, p := range []entity.Product{
		{StoreID: 1, Name: "arroz"}, {StoreID: 1, Name: "leche"}, {StoreID: 2, Name: "arroz"},
		{StoreID: 2, Name: "café"}, {StoreID: 3, Name: "pan"},
	} {
		db.AddProduct(p)
	}

	orders := db.Repos().Orders
	for _, o := range []entity.Order{
		{CustomerID: 2, StoreID: 1, ProductName: "leche"},
		{CustomerID: 2, StoreID: 2, ProductName: "arroz"},
		{CustomerID: 1, StoreID: 1, ProductName: "arroz"},
		{CustomerID: 1, StoreID: 2, ProductName: "café"},
		{CustomerID: 3, StoreID: 1, ProductName: "leche"},
		{CustomerID: 3, StoreID: 3, ProductName: "pan"}, // tienda de otro
		{CustomerID: 3, StoreID: 3, ProductName: "pan"},
	} {
		o := o
		o.UnitsOrdered = 1
		require.NoError(t, orders.Create(context.Background(), &o))
	}
	return db
}

func newAnalytics(db *memory.DB, report ports.ReportGenerator, limit int) *analytics.AnalyticsUseCase {
	return analytics.NewAnalyticsUseCase(db.Analytics(), db.Repos().Stores, db.Users(), report, limit, logger.Nop())
}

func TestTopProducts_CuentaSoloTiendasDelGerente(t *testing.T) {
	uc := newAnalytics(seed(t), nil, 5)

	top, err := uc.TopProducts(context.Background(), managerID)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, dto.TopProductDTO{Rank: 1, ProductName: "arroz", OrderCount: 2}, top[0])
	assert.Equal(t, dto.TopProductDTO{Rank: 2, ProductName: "leche", OrderCount: 2}, top[1])
	assert.Equal(t, dto.TopProductDTO{Rank: 3, ProductName: "café", OrderCount: 1}, top[2])
}

func TestTopCustomers_EmpatePorID(t *testing.T) {
	uc := newAnalytics(seed(t), nil, 2)

	top, err := uc.TopCustomers(context.Background(), managerID)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.EqualValues(t, 1, top[0].CustomerID)
	assert.Equal(t, "ana", top[0].CustomerName)
	assert.EqualValues(t, 2, top[1].CustomerID)
	assert.Equal(t, 2, top[1].Rank)
}

func TestRankings_SinTiendas(t *testing.T) {
	uc := newAnalytics(seed(t), nil, 5)

	_, err := uc.TopProducts(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrNoManagedStores)
	_, err = uc.TopCustomers(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrNoManagedStores)
}

func TestExportReport_EscribeArchivo(t *testing.T) {
	report := &fakeReport{}
	uc := newAnalytics(seed(t), report, 5)
	dir := t.TempDir()

	path, err := uc.ExportReport(context.Background(), managerID, dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(data))

	require.NotNil(t, report.got)
	assert.Equal(t, "gina", report.got.ManagerName)
	assert.Equal(t, []int64{1, 2}, report.got.StoreIDs)
	assert.Len(t, report.got.TopProducts, 3)
	assert.Len(t, report.got.TopCustomers, 3)
}

func TestExportReport_FalloDelGenerador(t *testing.T) {
	report := &fakeReport{err: errors.New("fuente no disponible")}
	uc := newAnalytics(seed(t), report, 5)
	dir := t.TempDir()

	_, err := uc.ExportReport(context.Background(), managerID, dir)
	assert.Error(t, err)

	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}
