package cmd

import (
	"fmt"

	"github.com/Mohsinsiddi/counterdapp/internal/config"
	"github.com/Mohsinsiddi/counterdapp/internal/ui"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configShowCmd = &cobra.Command{
	Use:     "show",
	Aliases: []string{"list"},
	Short:   "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		pairs := make([][2]string, 0, len(config.Keys)+1)
		for _, k := range config.Keys {
			v, _ := cfg.Get(k)
			if v == "" {
				v = ui.StyleDim.Render("(unset)")
			}
			pairs = append(pairs, [2]string{k, v})
		}
		rpcs := ui.StyleDim.Render("(network defaults)")
		if len(cfg.RPCURLs) > 0 {
			rpcs = fmt.Sprint(cfg.RPCURLs)
		}
		pairs = append(pairs, [2]string{"rpc_urls", rpcs})

		fmt.Println(ui.KeyValueBlock("Current Configuration", pairs))
		fmt.Println(ui.Meta("Config directory: " + cfg.Dir()))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value. Keys:
  network            ethereum | sepolia | holesky | base-sepolia | local
  contract_address   0x-prefixed counter address
  explorer_url       block explorer base URL (overrides the network's)
  default_wallet     wallet name sessions connect with
  log_level          debug | info | warn | error
  rpc_algorithm      fastest (benchmark endpoints) | failover (configured order)`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		v, _ := cfg.Get(args[0])
		fmt.Println(ui.Success(fmt.Sprintf("%s set to %q", args[0], v)))
		return nil
	},
}

var configAddRPCCmd = &cobra.Command{
	Use:   "add-rpc <url>",
	Short: "Add a custom RPC endpoint, tried before the network defaults",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.AddRPC(args[0]); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success("RPC added: " + args[0]))
		return nil
	},
}

var configRemoveRPCCmd = &cobra.Command{
	Use:   "remove-rpc <url>",
	Short: "Remove a custom RPC endpoint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.RemoveRPC(args[0]); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success("RPC removed: " + args[0]))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd, configAddRPCCmd, configRemoveRPCCmd)
}
