package main

import (
	"context"
	"fmt"

	"github.com/lupon/admin-client/internal/domain/catalog"
	"github.com/lupon/admin-client/internal/domain/partner"
	"github.com/lupon/admin-client/internal/domain/shared"
	"github.com/spf13/cobra"
)

func (c *cli) contactosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "contactos",
		Aliases: []string{"contacts"},
		Short:   "Manage customers and suppliers",
	}
	cmd.AddCommand(c.contactosListCmd(), c.contactosCreateCmd(), c.contactosDeleteCmd())
	return cmd
}

func (c *cli) contactosListCmd() *cobra.Command {
	var (
		filter   partner.ContactoFilter
		tipo     string
		search   string
		useCache bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contacts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter.Tipo = partner.TipoContacto(tipo)
			items, err := c.app.Contactos.List(cmd.Context(), filter, useCache)
			if err != nil {
				return err
			}
			return printJSON(cmd, c.app.Contactos.Search(items, search))
		},
	}
	cmd.Flags().StringVar(&tipo, "tipo", "", "cliente or proveedor")
	cmd.Flags().StringVar(&filter.Nombre, "nombre", "", "Name filter applied by the backend")
	cmd.Flags().StringVar(&search, "search", "", "Accent-insensitive search over the result")
	cmd.Flags().BoolVar(&useCache, "cache", false, "Serve from the in-memory cache when possible")
	return cmd
}

func (c *cli) contactosCreateCmd() *cobra.Command {
	var (
		in        partner.ContactoInput
		tipo      string
		formaPago string
		categoria string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a contact",
		RunE: func(cmd *cobra.Command, _ []string) error {
			in.Tipo = partner.TipoContacto(tipo)
			in.FormaPago = shared.FormaPago(formaPago)
			in.Categoria = partner.Categoria(categoria)
			created, err := c.app.Contactos.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printJSON(cmd, created)
		},
	}
	f := cmd.Flags()
	f.StringVar(&tipo, "tipo", string(partner.TipoCliente), "cliente or proveedor")
	f.StringVar(&in.Nombre, "nombre", "", "Name")
	f.StringVar(&in.NombreFantasia, "nombre-fantasia", "", "Trade name")
	f.StringVar(&in.Email, "email", "", "Email")
	f.StringVar(&in.Telefono, "telefono", "", "Phone")
	f.StringVar(&in.Calle, "calle", "", "Street")
	f.StringVar(&in.Numero, "numero", "", "Street number")
	f.StringVar(&in.Ciudad, "ciudad", "", "City")
	f.StringVar(&formaPago, "forma-pago", "", "contado or 'cuenta corriente'")
	f.IntVar(&in.DiasCC, "dias-cc", 0, "Days of credit on current account")
	f.StringVar(&categoria, "categoria", "", "Mayorista or Minorista")
	return cmd
}

func (c *cli) contactosDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := c.app.Contactos.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Contacto %d deleted\n", id)
			return nil
		},
	}
}

// listByName is the shape shared by the reference listings (clientes,
// proveedores, productos)
type listByName[T any] func(ctx context.Context, nombre string, useCache bool) ([]T, error)

func referenceListCmd[T any](use, short string, list func() listByName[T], search func([]T, string) []T) *cobra.Command {
	var (
		nombre  string
		query   string
		noCache bool
	)
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := list()(cmd.Context(), nombre, !noCache)
			if err != nil {
				return err
			}
			return printJSON(cmd, search(items, query))
		},
	}
	cmd.Flags().StringVar(&nombre, "nombre", "", "Name filter applied by the backend")
	cmd.Flags().StringVar(&query, "search", "", "Accent-insensitive search over the result")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the persisted cache")
	return cmd
}

func (c *cli) clientesCmd() *cobra.Command {
	return referenceListCmd("clientes", "List customers",
		func() listByName[partner.Contacto] { return c.app.Contactos.ListClientes },
		func(items []partner.Contacto, q string) []partner.Contacto { return c.app.Contactos.Search(items, q) },
	)
}

func (c *cli) proveedoresCmd() *cobra.Command {
	return referenceListCmd("proveedores", "List suppliers",
		func() listByName[partner.Contacto] { return c.app.Contactos.ListProveedores },
		func(items []partner.Contacto, q string) []partner.Contacto { return c.app.Contactos.Search(items, q) },
	)
}

func (c *cli) productosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "productos",
		Aliases: []string{"products"},
		Short:   "Browse the product catalog",
	}
	cmd.AddCommand(referenceListCmd("list", "List products",
		func() listByName[catalog.Producto] { return c.app.Productos.List },
		func(items []catalog.Producto, q string) []catalog.Producto { return c.app.Productos.Search(items, q) },
	))
	return cmd
}
