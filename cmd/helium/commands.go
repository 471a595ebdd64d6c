package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/Sternrassler/helium-api-client/pkg/client"
	"github.com/Sternrassler/helium-api-client/pkg/helium"
	"github.com/Sternrassler/helium-api-client/pkg/logging"
	"github.com/Sternrassler/helium-api-client/pkg/models"
	"github.com/Sternrassler/helium-api-client/pkg/pagination"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "0.1.0"

// app holds the state shared by subcommands. The client is created on
// first use so that flag errors never open connections.
type app struct {
	v      *viper.Viper
	cfg    Config
	redis  *redis.Client
	client *client.Client
	api    *helium.API
}

func newRootCommand() *cobra.Command {
	a := &app{v: newViper()}

	root := &cobra.Command{
		Use:           "helium",
		Short:         "Query the Helium blockchain API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(a.v)
			if err != nil {
				return err
			}
			a.cfg = cfg
			logging.Setup(logging.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty, Output: cmd.ErrOrStderr()})
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	cobra.CheckErr(bindFlags(a.v, root.PersistentFlags()))

	root.AddCommand(
		accountCommand(a),
		hotspotsCommand(a),
		oracleCommand(a),
		heightCommand(a),
		serveCommand(a),
		versionCommand(),
	)
	return root
}

// helium returns the API façade, connecting on first call.
func (a *app) helium(cmd *cobra.Command) (*helium.API, error) {
	if a.api != nil {
		return a.api, nil
	}

	rdb, err := connectRedis(cmd.Context(), a.cfg.RedisAddr)
	if err != nil {
		return nil, err
	}

	c, err := client.New(a.cfg.clientConfig(rdb))
	if err != nil {
		if rdb != nil {
			rdb.Close()
		}
		return nil, err
	}

	a.redis, a.client, a.api = rdb, c, helium.New(c)
	return a.api, nil
}

func (a *app) close() error {
	if a.client != nil {
		a.client.Close()
	}
	if a.redis != nil {
		return a.redis.Close()
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func accountCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "account <address>",
		Short: "Show an account and its balances.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := a.helium(cmd)
			if err != nil {
				return err
			}
			account, err := api.Accounts.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), account)
		},
	}
}

func hotspotsCommand(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "hotspots <owner>...",
		Short: "List the hotspots owned by one or more accounts.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := a.helium(cmd)
			if err != nil {
				return err
			}

			ownerStream := func(owner string) pagination.Iterator[models.Hotspot] {
				var it pagination.Iterator[models.Hotspot] = api.Accounts.Hotspots(owner)
				if limit > 0 {
					it = pagination.Take(it, limit)
				}
				return it
			}

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				for hotspot, err := range pagination.Items(cmd.Context(), ownerStream(args[0])) {
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "%s\t%s\t%s\n", hotspot.Address, hotspot.Mode, hotspotName(hotspot))
				}
				return nil
			}

			// Several owners are drained in parallel, one stream each
			streams := make(map[string]pagination.Iterator[models.Hotspot], len(args))
			for _, owner := range args {
				streams[owner] = ownerStream(owner)
			}
			results, err := pagination.NewBatchCollector[models.Hotspot](pagination.DefaultConfig()).CollectAll(cmd.Context(), streams)
			if err != nil {
				return err
			}

			owners := make([]string, 0, len(results))
			for owner := range results {
				owners = append(owners, owner)
			}
			sort.Strings(owners)
			for _, owner := range owners {
				for _, hotspot := range results[owner] {
					fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", owner, hotspot.Address, hotspot.Mode, hotspotName(hotspot))
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "stop after this many hotspots per owner (0 = all)")
	return cmd
}

func hotspotName(h models.Hotspot) string {
	if h.Name == nil {
		return ""
	}
	return *h.Name
}

func oracleCommand(a *app) *cobra.Command {
	oracle := &cobra.Command{
		Use:   "oracle",
		Short: "Oracle price queries.",
	}

	var block uint64
	price := &cobra.Command{
		Use:   "price",
		Short: "Show the current oracle price, or the price at --block.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := a.helium(cmd)
			if err != nil {
				return err
			}

			var p models.OraclePrice
			if block > 0 {
				p, err = api.Oracle.PriceAtBlock(cmd.Context(), block)
			} else {
				p, err = api.Oracle.CurrentPrice(cmd.Context())
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (block %d)\n", p.Price, p.Price.Symbol(), p.Block)
			return nil
		},
	}
	price.Flags().Uint64Var(&block, "block", 0, "block height to query")

	oracle.AddCommand(price)
	return oracle
}

func heightCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "height",
		Short: "Show the current chain height.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := a.helium(cmd)
			if err != nil {
				return err
			}
			height, err := api.Blocks.Height(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), height)
			return nil
		},
	}
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "helium %s\n", version)
		},
	}
}
