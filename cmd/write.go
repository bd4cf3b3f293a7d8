package cmd

import (
	"context"
	"fmt"

	"github.com/Mohsinsiddi/counterdapp/internal/dapp"
	"github.com/Mohsinsiddi/counterdapp/internal/ui"
	"github.com/spf13/cobra"
)

var incrementCmd = &cobra.Command{
	Use:   "increment <message>",
	Short: "Store a message and bump the counter",
	Example: `  counterdapp increment "gm"
  counterdapp increment "hello world" --yes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransaction(cmd.Context(), "Message stored", func(ctx context.Context, app *dapp.App) error {
			return app.Increment(ctx, args[0])
		})
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the counter and clear all messages",
	RunE: func(cmd *cobra.Command, args []string) error {
		confirmed := assumeYes || ui.ConfirmDanger("Reset count and clear all messages on-chain?")
		if !confirmed {
			fmt.Println(ui.Meta("Cancelled."))
			return nil
		}
		return runTransaction(cmd.Context(), "Counter reset", func(ctx context.Context, app *dapp.App) error {
			return app.Reset(ctx, confirmed)
		})
	},
}

// runTransaction connects the wallet and runs one mutating action, showing a
// spinner from the moment the signature is approved.
func runTransaction(ctx context.Context, done string, action func(context.Context, *dapp.App) error) error {
	spin := ui.NewSpinner("Waiting for confirmation…")
	started := false
	app, _, client, err := newApp(ctx, cliApprover(func() {
		spin.Start()
		started = true
	}))
	if err != nil {
		return err
	}
	defer client.Close()

	if err := app.Connect(ctx); err != nil {
		return err
	}

	err = action(ctx, app)
	if started {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	st := app.State()
	fmt.Println(ui.Success(done))
	if st.LastTx != nil {
		line := "tx " + st.LastTx.Hex()
		if url, err := app.TxURL(); err == nil {
			line = url
		}
		fmt.Println(ui.Meta("  " + line))
	}
	if st.Count != nil {
		fmt.Println(ui.Meta("  count: ") + ui.Val(st.Count.String()))
	}
	return nil
}
