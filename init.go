package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/facebookgo/inject"
	"github.com/satori/go.uuid"
	"github.com/spf13/cobra"
	"github.com/subosito/gotenv"
	"github.com/tryanzu/cart/board/cartitems"
	rconfig "github.com/tryanzu/cart/core/config"
	chttp "github.com/tryanzu/cart/core/http"
	"github.com/tryanzu/cart/core/shell"
	"github.com/tryanzu/cart/deps"
	"github.com/tryanzu/cart/modules/api"
	"github.com/tryanzu/cart/modules/cart"
	"github.com/tryanzu/cart/modules/exceptions"
)

func main() {
	// .env is optional
	_ = gotenv.Load()

	var rootCmd = &cobra.Command{Use: "cart"}
	rootCmd.AddCommand(cmdAPI(), cmdMigrate(), cmdShell(), cmdConfig(), cmdToken())
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func cmdAPI() *cobra.Command {
	return &cobra.Command{
		Use:   "api [bind]",
		Short: "Starts API web server",
		Long: `Starts API web server listening
		in the specified address or http.bind
		`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			boot()
			defer deps.Container.Close()

			// Graph main object (used to inject dependencies)
			var (
				g      inject.Graph
				module api.Module
				errors exceptions.ExceptionsModule
			)
			err := g.Provide(
				&inject.Object{Value: deps.Container.Config(), Complete: true},
				&inject.Object{Value: deps.Container.Sentry(), Complete: true},
				&inject.Object{Value: rconfig.C, Complete: true},
				&inject.Object{Value: &deps.Container, Complete: true},
				&inject.Object{Value: &errors},
			)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}

			bind := deps.Container.Config().UString("http.bind", ":3200")
			if len(args) == 1 {
				bind = args[0]
			}

			// Populate dependencies using the already instantiated DI
			module.Populate(&g)

			// Run API module
			module.Run(bind)
		},
	}
}

func cmdMigrate() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Creates the cart table or indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			boot()
			defer deps.Container.Close()

			records := deps.Container.Records()
			if records == nil {
				fmt.Println("cart.driver keeps no records, nothing to migrate")
				return nil
			}
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if err := cartitems.Prepare(ctx, records); err != nil {
				return err
			}
			fmt.Println("cart records ready")
			return nil
		},
	}
}

func cmdShell() *cobra.Command {
	var code string
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Starts interactive shell",
		Long: `Starts cart interactive shell
		over a kv session and the configured records.
		`,
		RunE: func(cmd *cobra.Command, args []string) error {
			boot()
			if deps.Container.KV() == nil {
				fn, err := deps.KVIgnitor(deps.Container)
				if err != nil {
					return err
				}
				if deps.Container, err = fn(deps.Container); err != nil {
					return err
				}
			}
			defer deps.Container.Close()

			sc, err := shell.NewCart(deps.Container, settings(), uuid.NewV4().String(), code)
			if err != nil {
				return err
			}
			sc.TTL = time.Duration(deps.Container.Config().UInt("kv.ttl", 604800)) * time.Second
			shell.RunShell(sc)
			return nil
		},
	}
	cmd.Flags().StringVar(&code, "currency", "USD", "ISO 4217 code used to print amounts")
	return cmd
}

func cmdConfig() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Prints the runtime config as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			boot()
			defer deps.Container.Close()

			s := settings()
			err := rconfig.C.Update(map[string]interface{}{
				"cart": map[string]interface{}{
					"driver":      string(s.Driver),
					"session_key": s.SessionKey,
					"table":       s.Table,
				},
			})
			if err != nil {
				return err
			}
			return rconfig.C.Dump(os.Stdout)
		},
	}
}

func cmdToken() *cobra.Command {
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token <user_id>",
		Short: "Signs a bearer token for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := deps.IgniteConfig(deps.Deps{}); err != nil {
				return err
			}
			token, err := chttp.SignToken(deps.AppSecret, args[0], ttl)
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime, 0 never expires")
	return cmd
}

// settings resolves the cart settings: env file first, runtime config over it.
func settings() cart.Settings {
	conf := deps.Container.Config()
	return rconfig.C.Cart(cart.Settings{
		Driver:     cart.Driver(conf.UString("cart.driver", string(cart.DefaultDriver))),
		SessionKey: conf.UString("cart.session_key", cart.DefaultSessionKey),
		Table:      conf.UString("cart.table", cart.DefaultTable),
	})
}
