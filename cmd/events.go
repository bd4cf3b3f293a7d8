package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/Mohsinsiddi/counterdapp/internal/config"
	"github.com/Mohsinsiddi/counterdapp/internal/dapp"
	"github.com/Mohsinsiddi/counterdapp/internal/ui"
	"github.com/spf13/cobra"
)

var (
	eventsFrom  uint64
	eventsCount int
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List MessageAdded events emitted by the contract",
	Long: `Fetch and decode MessageAdded logs emitted by the counter contract.

By default queries the last 5000 blocks. Public RPCs often cap the range of
a single log query; narrow it with --from when that happens.

Examples:
  counterdapp events
  counterdapp events --from 7200000 --count 50`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), config.LoadTimeout)
		defer cancel()

		client, _, err := dialNetwork(ctx)
		if err != nil {
			return err
		}
		defer client.Close()

		from := eventsFrom
		if !cmd.Flags().Changed("from") {
			head, err := client.BlockNumber(ctx)
			if err != nil {
				return fmt.Errorf("getting block number: %w", err)
			}
			if head > 5000 {
				from = head - 5000
			}
		}

		events, err := counterAt(client).MessageAdded(ctx, from)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			fmt.Println(ui.Info(fmt.Sprintf("No MessageAdded events since block %d.", from)))
			return nil
		}

		// Newest first, like the history.
		shown := 0
		t := ui.NewTable([]ui.Column{
			{Title: "Block", Width: 10},
			{Title: "Message", Width: 32},
			{Title: "Sender", Width: 13},
			{Title: "Time", Width: 19},
			{Title: "Tx", Width: 13},
		})
		for i := len(events) - 1; i >= 0 && (eventsCount <= 0 || shown < eventsCount); i-- {
			e := events[i]
			t.AddRow(ui.Row{
				fmt.Sprint(e.BlockNumber),
				e.Message,
				dapp.ShortAddr(e.Sender),
				time.Unix(e.Timestamp.Int64(), 0).Format("2006-01-02 15:04:05"),
				ui.TruncateAddr(e.TxHash.Hex()),
			})
			shown++
		}
		fmt.Println(t.Render())
		fmt.Println(ui.Meta(fmt.Sprintf("%d of %d event(s) since block %d", shown, len(events), from)))
		return nil
	},
}

func init() {
	eventsCmd.Flags().Uint64Var(&eventsFrom, "from", 0, "first block to scan (default: last 5000 blocks)")
	eventsCmd.Flags().IntVar(&eventsCount, "count", 20, "max events to show (0 = all)")
}
