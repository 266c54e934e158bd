package usecase

import (
	"context"

	"github.com/jhoicas/Tiendas-ops/internal/application/dto"
	"github.com/jhoicas/Tiendas-ops/internal/domain"
	"github.com/jhoicas/Tiendas-ops/internal/domain/geo"
	"github.com/jhoicas/Tiendas-ops/internal/domain/repository"
)

// StoreUseCase búsqueda de tiendas cercanas a la ubicación registrada del usuario.
type StoreUseCase struct {
	storeRepo repository.StoreRepository
	userRepo  repository.UserRepository
	radius    float64
}

// NewStoreUseCase construye el caso de uso. radius <= 0 usa geo.DefaultRadius.
func NewStoreUseCase(storeRepo repository.StoreRepository, userRepo repository.UserRepository, radius float64) *StoreUseCase {
	if radius <= 0 {
		radius = geo.DefaultRadius
	}
	return &StoreUseCase{storeRepo: storeRepo, userRepo: userRepo, radius: radius}
}

// FindNearby devuelve las tiendas dentro del radio, con su distancia al usuario.
func (uc *StoreUseCase) FindNearby(ctx context.Context, userID int64) ([]dto.StoreResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	stores, err := uc.storeRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	origin := user.Location()
	nearby := geo.FindNearby(origin, stores, uc.radius)
	out := make([]dto.StoreResponse, 0, len(nearby))
	for _, s := range nearby {
		out = append(out, dto.StoreResponse{
			ID:        s.ID,
			Latitude:  s.Latitude,
			Longitude: s.Longitude,
			Distance:  geo.Distance(origin, s.Location()),
		})
	}
	return out, nil
}
