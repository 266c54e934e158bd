// Package analytics contiene los rankings de pedidos del gerente y su exportación a PDF.
package analytics

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Tiendas-ops/internal/application/dto"
	"github.com/jhoicas/Tiendas-ops/internal/application/ports"
	"github.com/jhoicas/Tiendas-ops/internal/domain"
	"github.com/jhoicas/Tiendas-ops/internal/domain/repository"
	"github.com/jhoicas/Tiendas-ops/pkg/logger"
)

// AnalyticsUseCase rankings de productos y clientes sobre los pedidos de las tiendas del gerente.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type AnalyticsUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	storeRepo     repository.StoreRepository
	userRepo      repository.UserRepository
	report        ports.ReportGenerator
	topLimit      int
	log           *logger.Logger
	now           func() time.Time
}

// NewAnalyticsUseCase construye el caso de uso. report puede ser nil si no se exporta.
func NewAnalyticsUseCase(
	analyticsRepo repository.AnalyticsRepository,
	storeRepo repository.StoreRepository,
	userRepo repository.UserRepository,
	report ports.ReportGenerator,
	topLimit int,
	log *logger.Logger,
) *AnalyticsUseCase {
	return &AnalyticsUseCase{
		analyticsRepo: analyticsRepo,
		storeRepo:     storeRepo,
		userRepo:      userRepo,
		report:        report,
		topLimit:      dto.NormalizeLimit(topLimit, dto.DefaultTopLimit),
		log:           log.Named("analytics"),
		now:           time.Now,
	}
}

// managedStoreIDs falla con ErrNoManagedStores si el gerente no tiene tiendas.
func (uc *AnalyticsUseCase) managedStoreIDs(ctx context.Context, managerID int64) ([]int64, error) {
	stores, err := uc.storeRepo.ListByManager(ctx, managerID)
	if err != nil {
		return nil, err
	}
	if len(stores) == 0 {
		return nil, domain.ErrNoManagedStores
	}
	ids := make([]int64, 0, len(stores))
	for _, s := range stores {
		ids = append(ids, s.ID)
	}
	return ids, nil
}

// TopProducts productos con más pedidos; empate por nombre ascendente.
func (uc *AnalyticsUseCase) TopProducts(ctx context.Context, managerID int64) ([]dto.TopProductDTO, error) {
	if _, err := uc.managedStoreIDs(ctx, managerID); err != nil {
		return nil, err
	}
	return uc.topProducts(ctx, managerID)
}

// TopCustomers clientes con más pedidos; empate por ID ascendente.
func (uc *AnalyticsUseCase) TopCustomers(ctx context.Context, managerID int64) ([]dto.TopCustomerDTO, error) {
	if _, err := uc.managedStoreIDs(ctx, managerID); err != nil {
		return nil, err
	}
	return uc.topCustomers(ctx, managerID)
}

func (uc *AnalyticsUseCase) topProducts(ctx context.Context, managerID int64) ([]dto.TopProductDTO, error) {
	rows, err := uc.analyticsRepo.TopProducts(ctx, managerID, uc.topLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TopProductDTO, 0, len(rows))
	for i, r := range rows {
		out = append(out, dto.TopProductDTO{Rank: i + 1, ProductName: r.ProductName, OrderCount: r.OrderCount})
	}
	return out, nil
}

func (uc *AnalyticsUseCase) topCustomers(ctx context.Context, managerID int64) ([]dto.TopCustomerDTO, error) {
	rows, err := uc.analyticsRepo.TopCustomers(ctx, managerID, uc.topLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TopCustomerDTO, 0, len(rows))
	for i, r := range rows {
		out = append(out, dto.TopCustomerDTO{
			Rank:         i + 1,
			CustomerID:   r.CustomerID,
			CustomerName: r.CustomerName,
			OrderCount:   r.OrderCount,
		})
	}
	return out, nil
}

// BuildReport arma el reporte consolidado del gerente. Los dos rankings se consultan en paralelo.
func (uc *AnalyticsUseCase) BuildReport(ctx context.Context, managerID int64) (*dto.AnalyticsReportDTO, error) {
	storeIDs, err := uc.managedStoreIDs(ctx, managerID)
	if err != nil {
		return nil, err
	}
	manager, err := uc.userRepo.GetByID(ctx, managerID)
	if err != nil {
		return nil, err
	}
	if manager == nil {
		return nil, domain.ErrUserNotFound
	}

	var (
		products  []dto.TopProductDTO
		customers []dto.TopCustomerDTO
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := uc.topProducts(gctx, managerID)
		if err != nil {
			return fmt.Errorf("reporte: top productos: %w", err)
		}
		products = rows
		return nil
	})
	g.Go(func() error {
		rows, err := uc.topCustomers(gctx, managerID)
		if err != nil {
			return fmt.Errorf("reporte: top clientes: %w", err)
		}
		customers = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.AnalyticsReportDTO{
		ManagerID:    managerID,
		ManagerName:  manager.Name,
		StoreIDs:     storeIDs,
		GeneratedAt:  uc.now(),
		TopProducts:  products,
		TopCustomers: customers,
	}, nil
}

// ExportReport renderiza el reporte y lo escribe en dir. Devuelve la ruta del archivo.
func (uc *AnalyticsUseCase) ExportReport(ctx context.Context, managerID int64, dir string) (string, error) {
	if uc.report == nil {
		return "", fmt.Errorf("reporte: no hay generador configurado")
	}
	report, err := uc.BuildReport(ctx, managerID)
	if err != nil {
		return "", err
	}
	data, err := uc.report.GenerateAnalyticsReport(ctx, report)
	if err != nil {
		return "", fmt.Errorf("reporte: generar PDF: %w", err)
	}

	name := fmt.Sprintf("analytics_%d_%s.pdf", managerID, report.GeneratedAt.Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("reporte: escribir %s: %w", path, err)
	}

	uc.log.Info().Int64("manager_id", managerID).Str("path", path).Int("bytes", len(data)).Msg("reporte exportado")
	return path, nil
}
