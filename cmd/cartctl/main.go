package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/marketcart/internal/cart"
	"github.com/nikolayk812/marketcart/internal/config"
	"github.com/nikolayk812/marketcart/internal/domain"
	"github.com/nikolayk812/marketcart/internal/logger"
	"github.com/nikolayk812/marketcart/internal/port"
	"github.com/nikolayk812/marketcart/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/currency"
)

const usage = `usage: cartctl <command> [flags]

commands:
  list                                   print the cart
  add -id ID -title T -image URL -price P  add a product
  inc ID                                 increment a product quantity
  dec ID                                 decrement a product quantity
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log := logger.New(logger.Options{
		Service: "cartctl",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})

	if err := run(ctx, cfg, log, os.Args[1:], os.Stdout); err != nil {
		log.WithError(err).Error("cartctl failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log logrus.FieldLogger, args []string, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(out, usage)
		return errors.New("command is required")
	}

	unit, err := currency.ParseISO(cfg.Currency)
	if err != nil {
		return fmt.Errorf("currency.ParseISO: %w", err)
	}

	kv, closeKV, err := openKV(ctx, cfg)
	if err != nil {
		return fmt.Errorf("openKV: %w", err)
	}
	defer closeKV()

	ctx, _, err = cart.Mount(ctx, kv,
		cart.WithKey(cfg.CartKey),
		cart.WithCurrency(unit),
		cart.WithLogger(log),
	)
	if err != nil {
		return fmt.Errorf("cart.Mount: %w", err)
	}

	return dispatch(ctx, args, out)
}

// dispatch only ever reaches the cart through ctx.
func dispatch(ctx context.Context, args []string, out io.Writer) error {
	store, err := cart.FromContext(ctx)
	if err != nil {
		return err
	}

	switch cmd, rest := args[0], args[1:]; cmd {
	case "list":
	case "add":
		product, err := parseProduct(rest)
		if err != nil {
			return err
		}
		if err := store.AddToCart(ctx, product); err != nil {
			return fmt.Errorf("store.AddToCart: %w", err)
		}
	case "inc", "dec":
		if len(rest) != 1 {
			return fmt.Errorf("%s expects exactly one product ID", cmd)
		}
		op := store.Increment
		if cmd == "dec" {
			op = store.Decrement
		}
		if err := op(ctx, rest[0]); err != nil {
			return fmt.Errorf("store.%s: %w", cmd, err)
		}
	default:
		fmt.Fprint(out, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}

	printCart(out, store)
	return nil
}

func parseProduct(args []string) (domain.Product, error) {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	id := fs.String("id", "", "product ID")
	title := fs.String("title", "", "product title")
	image := fs.String("image", "", "product image URL")
	price := fs.String("price", "0", "product price")

	if err := fs.Parse(args); err != nil {
		return domain.Product{}, err
	}

	amount, err := decimal.NewFromString(*price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("price[%s] is not valid: %w", *price, err)
	}

	return domain.Product{
		ID:       *id,
		Title:    *title,
		ImageURL: *image,
		Price:    amount,
	}, nil
}

func printCart(out io.Writer, s *cart.Store) {
	for _, p := range s.Products() {
		fmt.Fprintf(out, "%-36s  %-24s  %3d x %s\n", p.ID, p.Title, p.Quantity, p.Price.StringFixed(2))
	}

	fmt.Fprintf(out, "items: %d  total: %s\n", s.Count(), s.Total())
}

func openKV(ctx context.Context, cfg config.Config) (port.KeyValueStore, func(), error) {
	switch cfg.Backend {
	case config.BackendRedis:
		client := repository.NewRedisClient(cfg.RedisAddr)
		if err := repository.WaitReady(ctx, client); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("repository.WaitReady: %w", err)
		}
		return repository.NewRedisKV(client), func() { _ = client.Close() }, nil

	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.PGDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("pgxpool.New: %w", err)
		}
		return repository.NewPostgresKV(pool), pool.Close, nil

	default:
		return repository.NewMemoryKV(), func() {}, nil
	}
}
