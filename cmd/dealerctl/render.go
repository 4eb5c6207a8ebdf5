package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ThanhY111003/dealer-console/internal/models"
)

// renderCart prints the cart as a table. An empty or absent cart is a
// normal state and points the dealer at the catalog instead of erroring.
func renderCart(w io.Writer, c *models.Cart) {
	if c.IsEmpty() {
		fmt.Fprintln(w, "Your cart is empty. Run `dealerctl orders list` to review past orders,")
		fmt.Fprintln(w, "or browse the vehicle catalog and add items with `dealerctl cart add`.")
		return
	}

	fmt.Fprintf(w, "Cart for %s", c.DealerName)
	if c.UserFullName != "" {
		fmt.Fprintf(w, " (%s)", c.UserFullName)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ITEM\tMODEL\tCOLOR\tUNIT PRICE\tQTY\tTOTAL")
	for _, item := range c.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%d\t%.2f\n",
			item.ID, item.ModelName, item.ColorName, item.UnitPrice, item.Quantity, item.TotalPrice)
	}
	tw.Flush()

	fmt.Fprintf(w, "Cart total: %.2f\n", c.CartTotal)
}

// renderOrders prints the order list view.
func renderOrders(w io.Writer, list []models.Order) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No orders found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCODE\tDATE\tTOTAL\tPAID\tREMAINING\tPROGRESS\tSTATUS\tINSTALLMENT")
	for _, o := range list {
		installment := "no"
		if o.IsInstallment {
			installment = "yes"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%.2f\t%.2f\t%.0f%%\t%s\t%s\n",
			o.ID, o.OrderCode, o.OrderDate.Format("2006-01-02"),
			o.TotalAmount, o.PaidAmount, o.RemainingAmount, o.PaymentProgress,
			o.Status, installment)
	}
	tw.Flush()
}

// renderOrderDetail prints one order with its lines and, for installment
// orders, the payment schedule.
func renderOrderDetail(w io.Writer, o *models.Order) {
	fmt.Fprintf(w, "Order %s (#%d)\n", o.OrderCode, o.ID)
	fmt.Fprintf(w, "Date:      %s\n", o.OrderDate.Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "Status:    %s\n", o.Status)
	fmt.Fprintf(w, "Dealer:    %s\n", o.Dealer)
	fmt.Fprintf(w, "Created:   %s\n", o.CreatedBy)
	fmt.Fprintf(w, "Total:     %.2f (paid %.2f, remaining %.2f, %.0f%%)\n",
		o.TotalAmount, o.PaidAmount, o.RemainingAmount, o.PaymentProgress)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MODEL\tCOLOR\tUNIT PRICE\tQTY\tTOTAL")
	for _, line := range o.OrderDetails {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%d\t%.2f\n",
			line.ModelName, line.ColorName, line.UnitPrice, line.Quantity, line.TotalPrice)
	}
	tw.Flush()

	if !o.IsInstallment || len(o.InstallmentPlans) == 0 {
		return
	}

	fmt.Fprintln(w, "\nInstallment schedule:")
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tAMOUNT\tDUE DATE\tSTATUS")
	for _, p := range o.InstallmentPlans {
		status := p.Status
		if p.IsOverdue {
			status += " (overdue)"
		}
		fmt.Fprintf(tw, "%d\t%.2f\t%s\t%s\n",
			p.InstallmentNumber, p.InstallmentAmount, p.DueDate.Format("2006-01-02"), status)
	}
	tw.Flush()
}
