package main

import (
	"fmt"
	"os"

	"github.com/lupon/admin-client/internal/domain/shared"
	"github.com/lupon/admin-client/internal/domain/trade"
	"github.com/spf13/cobra"
)

func (c *cli) pedidosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pedidos",
		Short: "Manage sales orders",
	}

	var estado, cliente string
	list := &cobra.Command{
		Use:   "list",
		Short: "List sales orders",
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := c.app.PedidosVentas.List(cmd.Context(), trade.PedidoVentaFilter{
				Estado:  trade.EstadoPedidoVenta(estado),
				Cliente: cliente,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, items)
		},
	}
	list.Flags().StringVar(&estado, "estado", "", "pendiente, aceptado, cancelado or completado")
	list.Flags().StringVar(&cliente, "cliente", "", "Part of the customer name")

	var cancel trade.CancelarPedidoInput
	cancelar := &cobra.Command{
		Use:   "cancelar <id>",
		Short: "Cancel a sales order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			st, err := c.app.PedidosVentas.Cancelar(cmd.Context(), id, cancel)
			if err != nil {
				return err
			}
			return printJSON(cmd, st)
		},
	}
	cancelar.Flags().StringVar(&cancel.MotivoCancelacion, "motivo", "", "Cancellation reason")

	var formaPago, medioPago string
	generar := &cobra.Command{
		Use:   "generar-venta <id>",
		Short: "Generate the sale for an accepted order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			venta, err := c.app.PedidosVentas.GenerarVenta(cmd.Context(), id, trade.GenerarVentaInput{
				FormaPago: shared.FormaPago(formaPago),
				MedioPago: shared.MedioPago(medioPago),
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, venta)
		},
	}
	generar.Flags().StringVar(&formaPago, "forma-pago", string(shared.FormaPagoContado), "contado, 'cuenta corriente' or 'contado pendiente'")
	generar.Flags().StringVar(&medioPago, "medio-pago", "", "efectivo or transferencia")

	cmd.AddCommand(list, cancelar, generar)
	return cmd
}

func (c *cli) ventasCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ventas",
		Short: "Manage sales",
	}

	var estadoEntrega, cliente string
	list := &cobra.Command{
		Use:   "list",
		Short: "List sales",
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := c.app.Ventas.List(cmd.Context(), trade.VentaFilter{
				EstadoEntrega: trade.EstadoEntrega(estadoEntrega),
				Cliente:       cliente,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, items)
		},
	}
	list.Flags().StringVar(&estadoEntrega, "estado-entrega", "", "pendiente, entregada, cancelada or reprogramada")
	list.Flags().StringVar(&cliente, "cliente", "", "Part of the customer name")

	var motivo string
	estado := &cobra.Command{
		Use:   "estado <id> <estado_entrega>",
		Short: "Change the delivery state of a sale",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			st, err := c.app.Ventas.CambiarEstadoEntrega(cmd.Context(), id, trade.CambiarEstadoEntregaInput{
				EstadoEntrega:     trade.EstadoEntrega(args[1]),
				MotivoCancelacion: motivo,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, st)
		},
	}
	estado.Flags().StringVar(&motivo, "motivo", "", "Cancellation reason, required for cancelada")

	reprogramar := &cobra.Command{
		Use:   "reprogramar <id> <YYYY-MM-DD>",
		Short: "Move a delivery to a new date",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			fecha, err := shared.ParseDate(args[1])
			if err != nil {
				return err
			}
			st, err := c.app.Ventas.ReprogramarEntrega(cmd.Context(), id, fecha)
			if err != nil {
				return err
			}
			return printJSON(cmd, st)
		},
	}

	var pdf bool
	var output string
	factura := &cobra.Command{
		Use:   "factura <id>",
		Short: "Download the invoice of a sale",
		Long:  "Download the invoice of a sale as HTML, or as PDF with --pdf. Written to stdout unless -o is given.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			doc, err := c.app.Ventas.Factura(cmd.Context(), id, pdf)
			if err != nil {
				return err
			}
			if output == "" {
				_, err = cmd.OutOrStdout().Write(doc)
				return err
			}
			if err := os.WriteFile(output, doc, 0o644); err != nil {
				return fmt.Errorf("writing invoice: %w", err)
			}
			cmd.PrintErrf("invoice written to %s\n", output)
			return nil
		},
	}
	factura.Flags().BoolVar(&pdf, "pdf", false, "Fetch the PDF rendition")
	factura.Flags().StringVarP(&output, "output", "o", "", "Write the invoice to this file")

	cmd.AddCommand(list, estado, reprogramar, factura)
	return cmd
}

func (c *cli) comprasCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compras",
		Short: "Manage purchases",
	}

	var proveedor, estadoCompra, estadoPago, fecha string
	list := &cobra.Command{
		Use:   "list",
		Short: "List purchases",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter := trade.CompraFilter{
				Proveedor:    proveedor,
				EstadoCompra: trade.EstadoCompra(estadoCompra),
				EstadoPago:   trade.EstadoPago(estadoPago),
			}
			if fecha != "" {
				d, err := shared.ParseDate(fecha)
				if err != nil {
					return err
				}
				filter.FechaCompra = d
			}
			items, err := c.app.Compras.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return printJSON(cmd, items)
		},
	}
	list.Flags().StringVar(&proveedor, "proveedor", "", "Part of the supplier name")
	list.Flags().StringVar(&estadoCompra, "estado", "", "pendiente, recibida or cancelada")
	list.Flags().StringVar(&estadoPago, "estado-pago", "", "pendiente, pagado or parcial")
	list.Flags().StringVar(&fecha, "fecha", "", "Purchase date, YYYY-MM-DD")

	var motivo string
	estado := &cobra.Command{
		Use:   "estado <id> <estado_compra>",
		Short: "Change the state of a purchase",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			st, err := c.app.Compras.CambiarEstado(cmd.Context(), id, trade.CambiarEstadoCompraInput{
				EstadoCompra:      trade.EstadoCompra(args[1]),
				MotivoCancelacion: motivo,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, st)
		},
	}
	estado.Flags().StringVar(&motivo, "motivo", "", "Cancellation reason, required for cancelada")

	cmd.AddCommand(list, estado)
	return cmd
}
