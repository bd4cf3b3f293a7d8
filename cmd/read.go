package cmd

import (
	"context"
	"fmt"

	"github.com/Mohsinsiddi/counterdapp/internal/config"
	"github.com/Mohsinsiddi/counterdapp/internal/dapp"
	"github.com/Mohsinsiddi/counterdapp/internal/ui"
	"github.com/Mohsinsiddi/counterdapp/internal/wallet"
	"github.com/spf13/cobra"
)

var historyLimit int

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the current counter value",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), config.LoadTimeout)
		defer cancel()

		client, _, err := dialNetwork(ctx)
		if err != nil {
			return err
		}
		defer client.Close()

		n, err := counterAt(client).Count(ctx)
		if err != nil {
			return fmt.Errorf("%w: %w", dapp.ErrLoadFailed, err)
		}
		fmt.Println(n.String())
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored messages, newest first",
	Example: `  counterdapp history
  counterdapp history --limit 5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), config.LoadTimeout)
		defer cancel()

		client, _, err := dialNetwork(ctx)
		if err != nil {
			return err
		}
		defer client.Close()

		entries, err := dapp.NewLoader(counterAt(client)).LoadHistory(ctx)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println(ui.Info("No messages yet. Be the first!"))
			fmt.Println(ui.Hint("counterdapp increment \"gm\""))
			return nil
		}

		total := len(entries)
		if historyLimit > 0 && historyLimit < total {
			entries = entries[:historyLimit]
		}

		t := ui.NewTable([]ui.Column{
			{Title: "#", Width: 5},
			{Title: "Message", Width: 40},
			{Title: "Sender", Width: 13},
			{Title: "Time", Width: 19},
		})
		for i, e := range entries {
			t.AddRow(ui.Row{
				fmt.Sprint(total - i),
				e.Message,
				dapp.ShortAddr(e.Sender),
				e.Timestamp.Format("2006-01-02 15:04:05"),
			})
		}
		fmt.Println(t.Render())
		fmt.Println(ui.Meta(fmt.Sprintf("%d of %d message(s)", len(entries), total)))
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show network, contract, wallet and counter",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), config.LoadTimeout)
		defer cancel()

		n, err := network()
		if err != nil {
			return err
		}

		walletLine := ui.StyleWarning.Render("none")
		if w := preferredWallet(); w != nil {
			walletLine = w.Name + "  " + dapp.ShortAddr(w.Address)
		}

		pairs := [][2]string{
			{"Network", fmt.Sprintf("%s (chain %d)", n.DisplayName, n.ChainID)},
			{"Contract", cfg.ContractAddress},
			{"Wallet", walletLine},
		}

		client, _, err := dialNetwork(ctx)
		if err != nil {
			pairs = append(pairs, [2]string{"RPC", ui.StyleError.Render(err.Error())})
			fmt.Println(ui.KeyValueBlock("counterdapp status", pairs))
			return nil
		}
		defer client.Close()
		pairs = append(pairs, [2]string{"RPC", client.URL})

		snap, err := dapp.NewLoader(counterAt(client)).LoadAll(ctx)
		if err != nil {
			pairs = append(pairs, [2]string{"Count", ui.StyleError.Render(err.Error())})
		} else {
			pairs = append(pairs,
				[2]string{"Count", snap.Count.String()},
				[2]string{"Messages", fmt.Sprint(len(snap.History))},
			)
		}
		fmt.Println(ui.KeyValueBlock("counterdapp status", pairs))
		return nil
	},
}

// preferredWallet is the wallet a session would connect, or nil.
func preferredWallet() *wallet.Wallet {
	mgr := newWalletManager()
	if cfg.DefaultWallet != "" {
		w, err := mgr.Get(cfg.DefaultWallet)
		if err != nil {
			return nil
		}
		return w
	}
	return mgr.Default()
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "show at most this many messages (0 = all)")
}
