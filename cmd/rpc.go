package cmd

import (
	"fmt"
	"slices"

	"github.com/Mohsinsiddi/counterdapp/internal/chain"
	"github.com/Mohsinsiddi/counterdapp/internal/config"
	"github.com/Mohsinsiddi/counterdapp/internal/rpc"
	"github.com/Mohsinsiddi/counterdapp/internal/ui"
	"github.com/spf13/cobra"
)

var rpcCmd = &cobra.Command{
	Use:   "rpc",
	Short: "Inspect the RPC endpoints of the configured network",
}

var rpcListCmd = &cobra.Command{
	Use:   "list",
	Short: "List RPC endpoints in configured order",
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := network()
		if err != nil {
			return err
		}
		fmt.Println(ui.StyleTitle.Render("RPCs for " + n.DisplayName))
		for _, u := range chain.Endpoints(cfg.RPCURLs, n) {
			origin := ui.Meta("(built-in)")
			if slices.Contains(cfg.RPCURLs, u) {
				origin = ui.Meta("(custom)")
			}
			fmt.Printf("  %s %s\n", origin, u)
		}
		return nil
	},
}

var rpcBenchmarkCmd = &cobra.Command{
	Use:   "benchmark",
	Short: "Probe every endpoint and show the dial order",
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := network()
		if err != nil {
			return err
		}
		algo, err := rpc.ParseAlgorithm(cfg.RPCAlgorithm)
		if err != nil {
			return err
		}

		fmt.Printf("%s\n\n", ui.StyleTitle.Render(fmt.Sprintf("Benchmarking %s RPCs...", n.DisplayName)))
		results := rpc.Benchmark(cmd.Context(), chain.Endpoints(cfg.RPCURLs, n), config.RPCDialTimeout)

		t := ui.NewTable([]ui.Column{
			{Title: "RPC URL", Width: 40},
			{Title: "Latency", Width: 12},
			{Title: "Block #", Width: 12},
			{Title: "Status", Width: 10},
		})
		for _, r := range results {
			status := ui.Success("healthy")
			latency := fmt.Sprintf("%dms", r.Latency.Milliseconds())
			block := fmt.Sprintf("%d", r.BlockNumber)
			if !r.Healthy() {
				status = ui.Err("down")
				latency = "—"
				block = "—"
			}
			t.AddRow(ui.Row{r.URL, latency, block, status})
		}
		fmt.Println(t.Render())

		order := rpc.Order(results, algo)
		if len(order) > 0 {
			fmt.Println(ui.Meta(fmt.Sprintf("Algorithm %s dials %s first", algo, order[0])))
		}
		return nil
	},
}

func init() {
	rpcCmd.AddCommand(rpcListCmd, rpcBenchmarkCmd)
}
