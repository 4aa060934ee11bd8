package main

import (
	"github.com/lupon/admin-client/internal/domain/finance"
	"github.com/lupon/admin-client/internal/domain/report"
	"github.com/lupon/admin-client/internal/domain/shared"
	"github.com/lupon/admin-client/internal/domain/trade"
	"github.com/spf13/cobra"
)

func (c *cli) cobrosCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "cobros", Short: "Customer collections"}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List collections",
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := c.app.Cobros.List(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, items)
		},
	})
	return cmd
}

func (c *cli) pagosCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "pagos", Short: "Supplier payments"}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List payments",
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := c.app.Pagos.List(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, items)
		},
	})
	return cmd
}

func (c *cli) notasCreditoCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "notas-credito", Short: "Credit notes"}

	var filter finance.NotaCreditoFilter
	var tipo string
	list := &cobra.Command{
		Use:   "list",
		Short: "List credit notes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter.Tipo = finance.TipoNota(tipo)
			items, err := c.app.NotasCredito.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return printJSON(cmd, items)
		},
	}
	list.Flags().IntVar(&filter.Contacto, "contacto", 0, "Contact id")
	list.Flags().StringVar(&tipo, "tipo", "", "venta or compra")

	cmd.AddCommand(list)
	return cmd
}

func (c *cli) dashboardCmd() *cobra.Command {
	var filter report.DashboardFilter
	var desde, hasta, formaPago, estadoCobro, estadoPago, medio string
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the business dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if desde != "" {
				if filter.FechaDesde, err = shared.ParseDate(desde); err != nil {
					return err
				}
			}
			if hasta != "" {
				if filter.FechaHasta, err = shared.ParseDate(hasta); err != nil {
					return err
				}
			}
			filter.FormaPago = shared.FormaPago(formaPago)
			filter.EstadoCobro = trade.EstadoCobro(estadoCobro)
			filter.EstadoPago = trade.EstadoPago(estadoPago)
			filter.MedioPago = shared.MedioPago(medio)

			d, err := c.app.Dashboard.Get(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return printJSON(cmd, d)
		},
	}
	f := cmd.Flags()
	f.StringVar(&desde, "desde", "", "Period start, YYYY-MM-DD")
	f.StringVar(&hasta, "hasta", "", "Period end, YYYY-MM-DD")
	f.IntVar(&filter.Cliente, "cliente", 0, "Customer id")
	f.IntVar(&filter.Proveedor, "proveedor", 0, "Supplier id")
	f.StringVar(&formaPago, "forma-pago", "", "Payment terms")
	f.StringVar(&estadoCobro, "estado-cobro", "", "Collection state of sales")
	f.StringVar(&estadoPago, "estado-pago", "", "Payment state of purchases")
	f.StringVar(&medio, "medio-pago", "", "efectivo, transferencia or tarjeta")
	return cmd
}
