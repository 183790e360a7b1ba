package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/five82/crumb/internal/app"
)

const (
	exitOK          = 0
	exitError       = 1
	exitUsage       = 2
	exitUnavailable = 3
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "config file path (default ~/.config/crumb/config.toml)")
	category := flag.String("category", "", "recipe category (overrides config)")
	baseURL := flag.String("base-url", "", "recipe API root (overrides config)")
	list := flag.Bool("list", false, "print the category's recipes and exit")
	show := flag.String("show", "", "print the recipe with this id and exit")
	export := flag.Bool("export", false, "write every recipe of the category as JSON lines and exit")
	asJSON := flag.Bool("json", false, "with -list or -show, print JSON")
	flag.Parse()

	modes := 0
	for _, on := range []bool{*list, strings.TrimSpace(*show) != "", *export} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		fmt.Fprintln(os.Stderr, "crumb: -list, -show and -export are mutually exclusive")
		return exitUsage
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		Category:   *category,
		BaseURL:    *baseURL,
		LogStderr:  modes > 0,
	}

	if modes == 0 {
		if err := app.Run(ctx, opts); err != nil {
			fmt.Fprintf(os.Stderr, "crumb: %v\n", err)
			return exitError
		}
		return exitOK
	}

	env, err := app.Setup(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "crumb: %v\n", err)
		return exitError
	}
	defer env.Close()

	switch {
	case *list:
		err = app.List(ctx, env.Client, env.Config.Category, os.Stdout, *asJSON)
	case *export:
		_, err = app.Export(ctx, env.Client, env.Config.Category, env.Config.ExportWorkers, os.Stdout, env.Log)
	default:
		id := strings.TrimSpace(*show)
		err = app.Show(ctx, env.Client, id, os.Stdout, *asJSON)
		if errors.Is(err, app.ErrUnavailable) {
			fmt.Fprintf(os.Stderr, "recipe %s is unavailable\n", id)
			return exitUnavailable
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "crumb: %v\n", err)
		return exitError
	}
	return exitOK
}
