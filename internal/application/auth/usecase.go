package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Tiendas-ops/internal/application/dto"
	"github.com/jhoicas/Tiendas-ops/internal/domain"
	"github.com/jhoicas/Tiendas-ops/internal/domain/entity"
	"github.com/jhoicas/Tiendas-ops/internal/domain/repository"
	"github.com/jhoicas/Tiendas-ops/internal/domain/validation"
	"github.com/jhoicas/Tiendas-ops/pkg/jwt"
	"github.com/jhoicas/Tiendas-ops/pkg/logger"
)

// JWTConfig configuración para generación de tokens de sesión.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Session identidad autenticada que la consola pasa a cada operación.
// No hay sesión global: quien la tiene la entrega explícitamente.
type Session struct {
	ID        uuid.UUID
	UserID    int64
	Name      string
	Role      entity.Role
	Token     string
	StartedAt time.Time
}

// AuthUseCase casos de uso de autenticación: registro, login, logout y resolución de sesión.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	log      *logger.Logger

	mu      sync.Mutex
	revoked map[uuid.UUID]struct{}
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		jwtCfg:   jwtCfg,
		log:      log.Named("auth"),
		revoked:  make(map[uuid.UUID]struct{}),
	}
}

// CreateAccount crea una cuenta de cliente. Orden de validación: nombre, duplicado
// (mismo nombre y misma contraseña), reglas de contraseña, latitud, longitud.
func (uc *AuthUseCase) CreateAccount(ctx context.Context, in dto.CreateAccountRequest) (*dto.UserResponse, error) {
	name := validation.NormalizeName(in.Name)
	if err := validation.Name(name); err != nil {
		return nil, err
	}
	if in.Password == "" {
		return nil, domain.ErrEmptyInput
	}
	dup, err := DuplicateExists(ctx, uc.userRepo, name, in.Password, 0)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, domain.ErrDuplicateUser
	}
	if err := validation.Password(in.Password, name); err != nil {
		return nil, err
	}
	lat, err := validation.ParseCoordinate(in.Latitude)
	if err != nil {
		return nil, err
	}
	long, err := validation.ParseCoordinate(in.Longitude)
	if err != nil {
		return nil, err
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Name:         name,
		PasswordHash: hash,
		Latitude:     lat,
		Longitude:    long,
		Role:         entity.RoleCustomer,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("user_id", user.ID).Msg("cuenta creada")
	return ToUserResponse(user), nil
}

// Login busca una cuenta con ese nombre cuya contraseña coincida y abre una sesión firmada.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*Session, error) {
	name := validation.NormalizeName(in.Name)
	if name == "" || in.Password == "" {
		return nil, domain.ErrEmptyInput
	}
	users, err := uc.userRepo.ListByName(ctx, name)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) == nil {
			return uc.open(u)
		}
	}
	uc.log.Warn().Str("name", name).Msg("login fallido")
	return nil, domain.ErrInvalidCredentials
}

func (uc *AuthUseCase) open(u *entity.User) (*Session, error) {
	sess := &Session{
		ID:        uuid.New(),
		UserID:    u.ID,
		Name:      u.Name,
		Role:      u.Role,
		StartedAt: time.Now(),
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, u.ID, u.Name, u.Role.String(), sess.ID.String(), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	sess.Token = token
	uc.log.Info().Int64("user_id", u.ID).Str("role", u.Role.String()).Str("session_id", sess.ID.String()).Msg("sesión iniciada")
	return sess, nil
}

// Logout invalida la sesión; Resolve la rechaza a partir de ese momento.
func (uc *AuthUseCase) Logout(sess *Session) error {
	if sess == nil {
		return domain.ErrSessionExpired
	}
	uc.mu.Lock()
	uc.revoked[sess.ID] = struct{}{}
	uc.mu.Unlock()
	uc.log.Info().Int64("user_id", sess.UserID).Str("session_id", sess.ID.String()).Msg("sesión cerrada")
	return nil
}

// Resolve vuelve a derivar identidad y rol desde el token firmado.
func (uc *AuthUseCase) Resolve(token string) (*Session, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrSessionExpired
	}
	id, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return nil, domain.ErrSessionExpired
	}
	role, err := entity.ParseRole(claims.Role)
	if err != nil {
		return nil, domain.ErrSessionExpired
	}

	uc.mu.Lock()
	_, gone := uc.revoked[id]
	uc.mu.Unlock()
	if gone {
		return nil, domain.ErrSessionExpired
	}

	sess := &Session{
		ID:     id,
		UserID: claims.UserID,
		Name:   claims.Name,
		Role:   role,
		Token:  token,
	}
	if claims.IssuedAt != nil {
		sess.StartedAt = claims.IssuedAt.Time
	}
	return sess, nil
}

// HashPassword hashea con bcrypt (costo por defecto).
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// DuplicateExists indica si otra cuenta (distinta de exceptID) ya usa ese nombre y esa contraseña.
func DuplicateExists(ctx context.Context, repo repository.UserRepository, name, password string, exceptID int64) (bool, error) {
	users, err := repo.ListByName(ctx, name)
	if err != nil {
		return false, err
	}
	for _, u := range users {
		if u.ID == exceptID {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil {
			return true, nil
		}
	}
	return false, nil
}

// ToUserResponse convierte la entidad a DTO (sin hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Latitude:  u.Latitude,
		Longitude: u.Longitude,
		Role:      u.Role.String(),
	}
}
