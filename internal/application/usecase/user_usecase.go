package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/Tiendas-ops/internal/application/auth"
	"github.com/jhoicas/Tiendas-ops/internal/application/dto"
	"github.com/jhoicas/Tiendas-ops/internal/domain"
	"github.com/jhoicas/Tiendas-ops/internal/domain/entity"
	"github.com/jhoicas/Tiendas-ops/internal/domain/repository"
	"github.com/jhoicas/Tiendas-ops/internal/domain/validation"
	"github.com/jhoicas/Tiendas-ops/pkg/logger"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo      repository.UserRepository
	storeRepo repository.StoreRepository
	log       *logger.Logger
}

// NewUserUseCase construye el caso de uso. storeRepo se consulta antes de quitarle el rol a un gerente.
func NewUserUseCase(repo repository.UserRepository, storeRepo repository.StoreRepository, log *logger.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, storeRepo: storeRepo, log: log.Named("users")}
}

// ListUsers lista todos los usuarios por ID ascendente.
func (uc *UserUseCase) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *auth.ToUserResponse(u))
	}
	return out, nil
}

// UpdateUser modifica cualquier usuario, incluido su rol (operación de admin).
func (uc *UserUseCase) UpdateUser(ctx context.Context, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	id, err := validation.ID(in.UserID)
	if err != nil {
		return nil, err
	}
	return uc.update(ctx, id, in, true)
}

// UpdateOwnProfile modifica nombre, contraseña o ubicación del propio usuario; el rol no se puede cambiar.
func (uc *UserUseCase) UpdateOwnProfile(ctx context.Context, userID int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if strings.TrimSpace(in.Role) != "" {
		return nil, domain.ErrUnauthorized
	}
	return uc.update(ctx, userID, in, false)
}

// update aplica solo los campos no vacíos, con las mismas reglas que el alta de cuenta.
func (uc *UserUseCase) update(ctx context.Context, id int64, in dto.UpdateUserRequest, allowRole bool) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	changed := false
	name := user.Name
	if newName := validation.NormalizeName(in.Name); newName != "" {
		name = newName
		changed = true
	}
	if in.Password != "" {
		dup, err := auth.DuplicateExists(ctx, uc.repo, name, in.Password, user.ID)
		if err != nil {
			return nil, err
		}
		if dup {
			return nil, domain.ErrDuplicateUser
		}
		if err := validation.Password(in.Password, name); err != nil {
			return nil, err
		}
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
		changed = true
	}
	user.Name = name

	if strings.TrimSpace(in.Latitude) != "" {
		lat, err := validation.ParseCoordinate(in.Latitude)
		if err != nil {
			return nil, err
		}
		user.Latitude = lat
		changed = true
	}
	if strings.TrimSpace(in.Longitude) != "" {
		long, err := validation.ParseCoordinate(in.Longitude)
		if err != nil {
			return nil, err
		}
		user.Longitude = long
		changed = true
	}
	if allowRole && strings.TrimSpace(in.Role) != "" {
		role, err := entity.ParseRole(in.Role)
		if err != nil {
			return nil, domain.ErrInvalidFormat
		}
		if err := uc.checkDemotion(ctx, user, role); err != nil {
			return nil, err
		}
		user.Role = role
		changed = true
	}

	if !changed {
		return nil, domain.ErrNoChangeRequested
	}
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("user_id", user.ID).Str("role", user.Role.String()).Msg("usuario actualizado")
	return auth.ToUserResponse(user), nil
}

// checkDemotion impide que un gerente con tiendas asignadas deje de ser gerente:
// toda tienda con gerente debe apuntar a un usuario con rol manager.
func (uc *UserUseCase) checkDemotion(ctx context.Context, user *entity.User, role entity.Role) error {
	if user.Role != entity.RoleManager || role == entity.RoleManager {
		return nil
	}
	stores, err := uc.storeRepo.ListByManager(ctx, user.ID)
	if err != nil {
		return err
	}
	if len(stores) > 0 {
		uc.log.Warn().Int64("user_id", user.ID).Int("stores", len(stores)).Msg("cambio de rol rechazado")
		return domain.ErrManagerOwnsStores
	}
	return nil
}
