package commands

import (
	"context"
	"fmt"

	"CasaMoreno/internal/config"
	"CasaMoreno/internal/loader"

	"go.uber.org/zap"
)

type categoriesCmd struct{}

func (categoriesCmd) Name() string        { return "categories" }
func (categoriesCmd) Description() string { return "List product categories" }
func (categoriesCmd) Usage() string       { return "categories" }

func (categoriesCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if err := noArgs(args); err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	cats, err := client.Categories(ctx)
	if err != nil {
		return err
	}
	if len(cats) == 0 {
		fmt.Fprintln(Out, "No categories")
		return nil
	}
	for _, c := range cats {
		fmt.Fprintln(Out, c)
	}
	return nil
}

type offersCmd struct{}

func (offersCmd) Name() string        { return "offers" }
func (offersCmd) Description() string { return "Print promotional products as JSON" }
func (offersCmd) Usage() string       { return "offers" }

func (offersCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if err := noArgs(args); err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	products, err := client.PromotionalProducts(ctx)
	if err != nil {
		return err
	}
	return printJSON(products)
}

// homeCmd прогоняет загрузчик главной страницы и печатает props.
// Как и на витрине, сбой бэкенда не ошибка: печатаются пустые props.
type homeCmd struct{}

func (homeCmd) Name() string        { return "home" }
func (homeCmd) Description() string { return "Print homepage props as JSON" }
func (homeCmd) Usage() string       { return "home" }

func (homeCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if err := noArgs(args); err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	var opts []loader.Option
	if cfg.PartialResults {
		opts = append(opts, loader.WithPartialResults())
	}
	res := loader.New(client, Logger, opts...).Home(ctx)
	return printJSON(res.Props)
}

// Logger — логгер команд; main подставляет рабочий
var Logger = zap.NewNop().Sugar()

func init() {
	RegisterCmd(categoriesCmd{})
	RegisterCmd(offersCmd{})
	RegisterCmd(homeCmd{})
}
