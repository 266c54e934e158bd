package cli

import (
	"context"

	"github.com/jhoicas/Tiendas-ops/internal/application/auth"
	"github.com/jhoicas/Tiendas-ops/internal/application/dto"
)

func (c *Console) createAccount(ctx context.Context) error {
	var in dto.CreateAccountRequest
	var err error
	if in.Name, err = c.ask("Nombre"); err != nil {
		return err
	}
	if in.Password, err = c.ask("Contraseña"); err != nil {
		return err
	}
	if in.Latitude, err = c.ask("Latitud (0-100)"); err != nil {
		return err
	}
	if in.Longitude, err = c.ask("Longitud (0-100)"); err != nil {
		return err
	}
	user, err := c.deps.Auth.CreateAccount(ctx, in)
	if err != nil {
		return err
	}
	c.printf("Cuenta creada: %s (ID %d).", user.Name, user.ID)
	return nil
}

func (c *Console) login(ctx context.Context) error {
	var in dto.LoginRequest
	var err error
	if in.Name, err = c.ask("Nombre"); err != nil {
		return err
	}
	if in.Password, err = c.ask("Contraseña"); err != nil {
		return err
	}
	sess, err := c.deps.Auth.Login(ctx, in)
	if err != nil {
		return err
	}
	c.sess = sess
	c.printf("Bienvenido, %s (%s).", sess.Name, sess.Role)
	return nil
}

func (c *Console) logout(_ context.Context, sess *auth.Session) error {
	if err := c.deps.Auth.Logout(sess); err != nil {
		return err
	}
	c.sess = nil
	c.printf("Sesión cerrada.")
	return nil
}

func (c *Console) updateOwnProfile(ctx context.Context, sess *auth.Session) error {
	c.printf("Deje vacío lo que no quiera cambiar.")
	var in dto.UpdateUserRequest
	var err error
	if in.Name, err = c.ask("Nuevo nombre"); err != nil {
		return err
	}
	if in.Password, err = c.ask("Nueva contraseña"); err != nil {
		return err
	}
	if in.Latitude, err = c.ask("Nueva latitud"); err != nil {
		return err
	}
	if in.Longitude, err = c.ask("Nueva longitud"); err != nil {
		return err
	}
	user, err := c.deps.Users.UpdateOwnProfile(ctx, sess.UserID, in)
	if err != nil {
		return err
	}
	c.printf("Datos actualizados: %s (%.2f, %.2f).", user.Name, user.Latitude, user.Longitude)
	return nil
}
