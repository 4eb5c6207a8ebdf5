package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ThanhY111003/dealer-console/internal/api"
	"github.com/ThanhY111003/dealer-console/internal/cart"
	"github.com/ThanhY111003/dealer-console/internal/checkout"
	"github.com/ThanhY111003/dealer-console/internal/config"
	"github.com/ThanhY111003/dealer-console/internal/models"
	"github.com/ThanhY111003/dealer-console/internal/orders"
	"github.com/ThanhY111003/dealer-console/internal/session"
	"github.com/ThanhY111003/dealer-console/pkg/logger"
)

const usage = `dealerctl - vehicle dealer order console

Usage:
  dealerctl cart show
  dealerctl cart add --vehicle <id> [--quantity N]
  dealerctl cart set-qty --item <id> --quantity N
  dealerctl cart remove --item <id>
  dealerctl cart clear
  dealerctl checkout [--installment --months N] [--notes TEXT]
  dealerctl orders list [--status S] [--sort asc|desc] [--page N] [--page-size N]
  dealerctl orders show --id <id>
  dealerctl order create --vehicle <id> [--installment --months N] [--notes TEXT]

Configuration via environment: DEALER_API_URL, DEALER_API_TOKEN,
DEALER_API_TIMEOUT (seconds), LOG_LEVEL.
`

type app struct {
	carts  *cart.Service
	orders *orders.Service
	engine *checkout.Engine
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	sess := session.New(cfg.API.Token, "")
	client := api.New(
		cfg.API.BaseURL,
		sess,
		time.Duration(cfg.API.TimeoutSeconds)*time.Second,
		log,
		api.WithUnauthorizedHook(func() {
			fmt.Fprintln(os.Stderr, "Session expired. Please log in again.")
		}),
	)

	cartService := cart.NewService(client, log)
	orderService := orders.NewService(client, log)

	a := &app{
		carts:  cartService,
		orders: orderService,
		engine: checkout.NewEngine(orderService, cartService, log),
	}

	if err := a.run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", api.Message(err))
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Print(usage)
		return nil
	}

	switch args[0] {
	case "cart":
		return a.runCart(ctx, args[1:])
	case "checkout":
		return a.runCheckout(ctx, args[1:])
	case "orders":
		return a.runOrders(ctx, args[1:])
	case "order":
		return a.runOrder(ctx, args[1:])
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		fmt.Print(usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (a *app) runCart(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("cart: missing subcommand (show, add, set-qty, remove, clear)")
	}

	switch args[0] {
	case "show":
		c, err := a.carts.Fetch(ctx)
		if err != nil {
			return err
		}
		renderCart(os.Stdout, c)
		return nil

	case "add":
		fs := flag.NewFlagSet("cart add", flag.ExitOnError)
		vehicle := fs.Int64("vehicle", 0, "vehicle model color id")
		quantity := fs.Int("quantity", 1, "quantity to add")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *vehicle == 0 {
			return errors.New("cart add: --vehicle is required")
		}
		c, err := a.carts.Add(ctx, *vehicle, *quantity)
		renderCart(os.Stdout, c)
		return err

	case "set-qty":
		fs := flag.NewFlagSet("cart set-qty", flag.ExitOnError)
		item := fs.Int64("item", 0, "cart item id")
		quantity := fs.Int("quantity", 0, "new quantity")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *item == 0 {
			return errors.New("cart set-qty: --item is required")
		}
		c, err := a.carts.SetQuantity(ctx, *item, *quantity)
		if errors.Is(err, cart.ErrQuantityTooLow) {
			fmt.Fprintln(os.Stderr, "Warning: quantity must be at least 1; nothing was sent")
			return err
		}
		renderCart(os.Stdout, c)
		return err

	case "remove":
		fs := flag.NewFlagSet("cart remove", flag.ExitOnError)
		item := fs.Int64("item", 0, "cart item id")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *item == 0 {
			return errors.New("cart remove: --item is required")
		}
		c, err := a.carts.Remove(ctx, *item)
		renderCart(os.Stdout, c)
		return err

	case "clear":
		c, err := a.carts.Clear(ctx)
		renderCart(os.Stdout, c)
		return err

	default:
		return fmt.Errorf("cart: unknown subcommand %q", args[0])
	}
}

func (a *app) runCheckout(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ExitOnError)
	installment := fs.Bool("installment", false, "pay by installments")
	months := fs.Int("months", 12, "installment months")
	notes := fs.String("notes", "", "order notes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c, err := a.carts.Fetch(ctx)
	if err != nil {
		return err
	}
	if c.IsEmpty() {
		renderCart(os.Stdout, c)
		return nil
	}

	res, err := a.engine.Submit(ctx, c.Items, checkout.Config{
		IsInstallment:     *installment,
		InstallmentMonths: *months,
		Notes:             *notes,
	})
	if err != nil {
		return err
	}

	if s := res.SuccessSummary(); s != "" {
		fmt.Println(s)
	}
	if f := res.FailureSummary(); f != "" {
		fmt.Println(f)
		for _, item := range res.Failed {
			fmt.Printf("  - %s %s: %s\n", item.Item.ModelName, item.Item.ColorName, item.Message)
		}
	}

	if len(res.Succeeded) == 0 {
		return nil
	}

	// The web console navigates to the order list after checkout; the CLI
	// prints it.
	list, err := a.orders.List(ctx)
	if err != nil {
		return err
	}
	renderOrders(os.Stdout, list)
	return nil
}

func (a *app) runOrders(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("orders: missing subcommand (list, show)")
	}

	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("orders list", flag.ExitOnError)
		status := fs.String("status", "", "filter by status (PENDING, CONFIRMED, ...)")
		sortDir := fs.String("sort", "", "sort by amount: asc or desc")
		page := fs.Int("page", 1, "page number")
		pageSize := fs.Int("page-size", 10, "orders per page")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		list, err := a.orders.List(ctx)
		if err != nil {
			return err
		}

		list = orders.FilterByStatus(list, models.OrderStatus(*status))
		switch *sortDir {
		case "asc":
			list = orders.SortByAmount(list, true)
		case "desc":
			list = orders.SortByAmount(list, false)
		case "":
		default:
			return fmt.Errorf("orders list: invalid --sort %q", *sortDir)
		}
		list = orders.Paginate(list, *page, *pageSize)

		renderOrders(os.Stdout, list)
		return nil

	case "show":
		fs := flag.NewFlagSet("orders show", flag.ExitOnError)
		id := fs.Int64("id", 0, "order id")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *id == 0 {
			return errors.New("orders show: --id is required")
		}

		o, err := a.orders.Get(ctx, *id)
		if err != nil {
			return err
		}
		renderOrderDetail(os.Stdout, o)
		return nil

	default:
		return fmt.Errorf("orders: unknown subcommand %q", args[0])
	}
}

// runOrder handles the direct single-item path: one order from a
// pre-selected vehicle, no cart involved.
func (a *app) runOrder(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] != "create" {
		return errors.New("order: missing subcommand (create)")
	}

	fs := flag.NewFlagSet("order create", flag.ExitOnError)
	vehicle := fs.Int64("vehicle", 0, "vehicle model color id")
	installment := fs.Bool("installment", false, "pay by installments")
	months := fs.Int("months", 12, "installment months")
	notes := fs.String("notes", "", "order notes")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if *vehicle == 0 {
		return errors.New("order create: --vehicle is required")
	}

	o, err := a.engine.SubmitDirect(ctx, models.CreateOrderRequest{
		VehicleModelColorID: *vehicle,
		IsInstallment:       *installment,
		InstallmentMonths:   *months,
		Notes:               *notes,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Order %s created\n", o.OrderCode)
	renderOrderDetail(os.Stdout, o)
	return nil
}
