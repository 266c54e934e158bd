package cli

import (
	"context"
	"fmt"

	"github.com/jhoicas/Tiendas-ops/internal/application/auth"
	"github.com/jhoicas/Tiendas-ops/internal/application/dto"
)

func (c *Console) listUsers(ctx context.Context, _ *auth.Session) error {
	users, err := c.deps.Users.ListUsers(ctx)
	if err != nil {
		return err
	}
	rows := make([]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, fmt.Sprintf("%d\t%s\t%s\t%.2f\t%.2f", u.ID, u.Name, u.Role, u.Latitude, u.Longitude))
	}
	c.table("ID\tNombre\tRol\tLatitud\tLongitud", rows)
	return nil
}

func (c *Console) updateUser(ctx context.Context, _ *auth.Session) error {
	var in dto.UpdateUserRequest
	var err error
	if in.UserID, err = c.ask("ID de usuario"); err != nil {
		return err
	}
	c.printf("Deje vacío lo que no quiera cambiar.")
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
	if in.Role, err = c.ask("Nuevo rol (customer, manager, admin)"); err != nil {
		return err
	}
	user, err := c.deps.Users.UpdateUser(ctx, in)
	if err != nil {
		return err
	}
	c.printf("Usuario %d actualizado: %s (%s).", user.ID, user.Name, user.Role)
	return nil
}

func (c *Console) listAllProducts(ctx context.Context, _ *auth.Session) error {
	products, err := c.deps.Ledger.ListAllProducts(ctx)
	if err != nil {
		return err
	}
	c.productTable(products, true)
	return nil
}
