package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tiendas-ops/internal/application/auth"
	"github.com/jhoicas/Tiendas-ops/internal/application/dto"
	"github.com/jhoicas/Tiendas-ops/internal/domain"
	"github.com/jhoicas/Tiendas-ops/internal/domain/entity"
	"github.com/jhoicas/Tiendas-ops/internal/infrastructure/memory"
	"github.com/jhoicas/Tiendas-ops/pkg/logger"
)

const testSecret = "test-secret"

func newAuth(t *testing.T) (*auth.AuthUseCase, *memory.DB) {
	t.Helper()
	db := memory.NewDB()
	uc := auth.NewAuthUseCase(db.Users(), auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "tiendas-test"}, logger.Nop())
	return uc, db
}

func bob() dto.CreateAccountRequest {
	return dto.CreateAccountRequest{Name: "bob", Password: "Passw0rd!", Latitude: "10", Longitude: "20"}
}

// ────────────────────────────────────────────────────────────────────────────
// CreateAccount
// ────────────────────────────────────────────────────────────────────────────

func TestCreateAccount_CreaCliente(t *testing.T) {
	uc, db := newAuth(t)

	out, err := uc.CreateAccount(context.Background(), bob())
	require.NoError(t, err)
	assert.Equal(t, "bob", out.Name)
	assert.Equal(t, "customer", out.Role)

	stored, err := db.Users().GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "Passw0rd!", stored.PasswordHash)
	assert.Equal(t, entity.RoleCustomer, stored.Role)
}

func TestCreateAccount_DuplicadoMismoNombreYPassword(t *testing.T) {
	uc, _ := newAuth(t)
	_, err := uc.CreateAccount(context.Background(), bob())
	require.NoError(t, err)

	_, err = uc.CreateAccount(context.Background(), bob())
	assert.ErrorIs(t, err, domain.ErrDuplicateUser)

	// Mismo nombre con otra contraseña sí se permite.
	other := bob()
	other.Password = "Otra#Clave1"
	_, err = uc.CreateAccount(context.Background(), other)
	assert.NoError(t, err)
}

func TestCreateAccount_Validaciones(t *testing.T) {
	cases := []struct {
		name string
		mod  func(r *dto.CreateAccountRequest)
		want error
	}{
		{"nombre vacío", func(r *dto.CreateAccountRequest) { r.Name = "   " }, domain.ErrEmptyInput},
		{"password vacía", func(r *dto.CreateAccountRequest) { r.Password = "" }, domain.ErrEmptyInput},
		{"password igual al nombre", func(r *dto.CreateAccountRequest) { r.Name = "Abc1!"; r.Password = "Abc1!" }, domain.ErrPasswordEqualsName},
		{"password débil", func(r *dto.CreateAccountRequest) { r.Password = "password" }, domain.ErrWeakPassword},
		{"latitud fuera de rango", func(r *dto.CreateAccountRequest) { r.Latitude = "100" }, domain.ErrOutOfRange},
		{"longitud no numérica", func(r *dto.CreateAccountRequest) { r.Longitude = "abc" }, domain.ErrInvalidFormat},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, db := newAuth(t)
			req := bob()
			tc.mod(&req)
			_, err := uc.CreateAccount(context.Background(), req)
			assert.ErrorIs(t, err, tc.want)

			users, _ := db.Users().List(context.Background())
			assert.Empty(t, users)
		})
	}
}

// ────────────────────────────────────────────────────────────────────────────
// Login / Logout / Resolve
// ────────────────────────────────────────────────────────────────────────────

func TestLogin_AbreSesionFirmada(t *testing.T) {
	uc, _ := newAuth(t)
	created, err := uc.CreateAccount(context.Background(), bob())
	require.NoError(t, err)

	sess, err := uc.Login(context.Background(), dto.LoginRequest{Name: "bob", Password: "Passw0rd!"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, sess.UserID)
	assert.Equal(t, entity.RoleCustomer, sess.Role)
	assert.NotEmpty(t, sess.Token)

	resolved, err := uc.Resolve(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, resolved.ID)
	assert.Equal(t, sess.UserID, resolved.UserID)
	assert.Equal(t, entity.RoleCustomer, resolved.Role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _ := newAuth(t)
	_, err := uc.CreateAccount(context.Background(), bob())
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Name: "bob", Password: "Wrong#123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Name: "nadie", Password: "Passw0rd!"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_EligeLaCuentaPorPassword(t *testing.T) {
	uc, db := newAuth(t)
	hash, err := auth.HashPassword("Admin#123")
	require.NoError(t, err)
	admin := db.AddUser(entity.User{Name: "bob", PasswordHash: hash, Latitude: 1, Longitude: 1, Role: entity.RoleAdmin})
	_, err = uc.CreateAccount(context.Background(), bob())
	require.NoError(t, err)

	sess, err := uc.Login(context.Background(), dto.LoginRequest{Name: "bob", Password: "Admin#123"})
	require.NoError(t, err)
	assert.Equal(t, admin.ID, sess.UserID)
	assert.Equal(t, entity.RoleAdmin, sess.Role)
}

func TestLogout_InvalidaElToken(t *testing.T) {
	uc, _ := newAuth(t)
	_, err := uc.CreateAccount(context.Background(), bob())
	require.NoError(t, err)
	sess, err := uc.Login(context.Background(), dto.LoginRequest{Name: "bob", Password: "Passw0rd!"})
	require.NoError(t, err)

	require.NoError(t, uc.Logout(sess))
	_, err = uc.Resolve(sess.Token)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)

	assert.ErrorIs(t, uc.Logout(nil), domain.ErrSessionExpired)
}

func TestResolve_TokenAlterado(t *testing.T) {
	uc, _ := newAuth(t)
	_, err := uc.Resolve("no-es-un-token")
	assert.ErrorIs(t, err, domain.ErrSessionExpired)

	other := auth.NewAuthUseCase(memory.NewDB().Users(), auth.JWTConfig{Secret: "otro", ExpMinutes: 60}, logger.Nop())
	_, err = other.CreateAccount(context.Background(), bob())
	require.NoError(t, err)
	sess, err := other.Login(context.Background(), dto.LoginRequest{Name: "bob", Password: "Passw0rd!"})
	require.NoError(t, err)

	_, err = uc.Resolve(sess.Token)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}
