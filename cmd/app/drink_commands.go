package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/t-lanigan/coffee-shop/cmd/app/commands"
	"github.com/t-lanigan/coffee-shop/internal/app"
	"github.com/t-lanigan/coffee-shop/internal/config"
)

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}

func getDrinkCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "reset-drinks",
			Usage: "Delete every drink and seed the default menu",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				drinkUseCase, err := container.DrinkUseCase()
				if err != nil {
					return err
				}

				return commands.RunResetDrinks(
					ctx,
					drinkUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "list-drinks",
			Usage: "List the drinks menu with full recipes",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				drinkUseCase, err := container.DrinkUseCase()
				if err != nil {
					return err
				}

				return commands.RunListDrinks(
					ctx,
					drinkUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
	}
}
