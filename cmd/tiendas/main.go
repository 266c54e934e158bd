package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"

	appanalytics "github.com/jhoicas/Tiendas-ops/internal/application/analytics"
	"github.com/jhoicas/Tiendas-ops/internal/application/auth"
	"github.com/jhoicas/Tiendas-ops/internal/application/inventory"
	"github.com/jhoicas/Tiendas-ops/internal/application/order"
	"github.com/jhoicas/Tiendas-ops/internal/application/ports"
	"github.com/jhoicas/Tiendas-ops/internal/application/usecase"
	"github.com/jhoicas/Tiendas-ops/internal/domain/entity"
	"github.com/jhoicas/Tiendas-ops/internal/domain/repository"
	"github.com/jhoicas/Tiendas-ops/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Tiendas-ops/internal/infrastructure/pdf"
	"github.com/jhoicas/Tiendas-ops/internal/infrastructure/postgres"
	"github.com/jhoicas/Tiendas-ops/internal/interfaces/cli"
	"github.com/jhoicas/Tiendas-ops/pkg/config"
	"github.com/jhoicas/Tiendas-ops/pkg/logger"
)

// storage repositorios y runner transaccional del driver elegido.
type storage struct {
	repos     ports.TxRepos
	users     repository.UserRepository
	analytics repository.AnalyticsRepository
	tx        ports.TxRunner
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al almacenamiento")
	}
	defer st.close()

	authUC := auth.NewAuthUseCase(st.users, auth.JWTConfig{
		Secret:     cfg.Session.Secret,
		ExpMinutes: cfg.Session.TTLMinutes,
		Issuer:     cfg.Session.Issuer,
	}, log)
	userUC := usecase.NewUserUseCase(st.users, st.repos.Stores, log)
	storeUC := usecase.NewStoreUseCase(st.repos.Stores, st.users, cfg.Rules.GeoRadius)
	ledgerUC := inventory.NewLedgerUseCase(st.tx, st.repos.Stores, st.repos.Products, st.repos.Updates, cfg.Rules.RecentLimit, log)
	supplyUC := inventory.NewSupplyUseCase(st.tx, st.repos.Stores, st.repos.Supply, log)
	orderUC := order.NewOrderUseCase(st.tx, st.repos.Orders, order.Config{
		DecrementStock: cfg.Rules.OrderDecrementsStock,
		RecentLimit:    cfg.Rules.RecentLimit,
	}, log)

	// PDF: reporte de pedidos del gerente
	pdfGenerator := infrapdf.NewMarotoReportGenerator(cfg.App.Name)
	analyticsUC := appanalytics.NewAnalyticsUseCase(st.analytics, st.repos.Stores, st.users, pdfGenerator, cfg.Rules.TopLimit, log)

	console := cli.New(cli.Deps{
		Auth:      authUC,
		Users:     userUC,
		Stores:    storeUC,
		Ledger:    ledgerUC,
		Supply:    supplyUC,
		Orders:    orderUC,
		Analytics: analyticsUC,
		ReportDir: cfg.Report.Dir,
		Log:       log,
	}, cli.NewLineReader(os.Stdin), os.Stdout)

	if err := console.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("consola finalizada con error")
	}
	log.Info().Msg("aplicación detenida")
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.DB.Driver == config.DriverMemory {
		db := memory.NewDB()
		seedDemo(db)
		log.Warn().Msg("usando almacenamiento en memoria; los datos se pierden al salir")
		return &storage{
			repos:     db.Repos(),
			users:     db.Users(),
			analytics: db.Analytics(),
			tx:        memory.NewTxRunner(db),
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	return &storage{
		repos:     postgres.NewRepos(pool),
		users:     postgres.NewUserRepository(pool),
		analytics: postgres.NewAnalyticsRepository(pool),
		tx:        postgres.NewTxRunner(pool),
		close:     pool.Close,
	}, nil
}

// seedDemo datos mínimos para probar la consola sin base de datos.
// Contraseñas: Admin#123, Gerente#1, Passw0rd!
func seedDemo(db *memory.DB) {
	mustHash := func(pw string) string {
		h, err := auth.HashPassword(pw)
		if err != nil {
			panic(err)
		}
		return h
	}
	db.AddUser(entity.User{Name: "admin", PasswordHash: mustHash("Admin#123"), Latitude: 50, Longitude: 50, Role: entity.RoleAdmin})
	gerente := db.AddUser(entity.User{Name: "gerente", PasswordHash: mustHash("Gerente#1"), Latitude: 20, Longitude: 20, Role: entity.RoleManager})
	db.AddUser(entity.User{Name: "cliente", PasswordHash: mustHash("Passw0rd!"), Latitude: 15, Longitude: 15, Role: entity.RoleCustomer})

	db.AddStore(entity.Store{ID: 1, Latitude: 18, Longitude: 22, ManagerID: gerente.ID})
	db.AddStore(entity.Store{ID: 2, Latitude: 70, Longitude: 70})
	db.AddProduct(entity.Product{StoreID: 1, Name: "arroz", UnitsInStock: 20, PricePerUnit: decimal.RequireFromString("2.50")})
	db.AddProduct(entity.Product{StoreID: 1, Name: "leche", UnitsInStock: 12, PricePerUnit: decimal.RequireFromString("1.20")})
	db.AddProduct(entity.Product{StoreID: 2, Name: "pan", UnitsInStock: 30, PricePerUnit: decimal.RequireFromString("0.80")})
}
