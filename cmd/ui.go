package cmd

import (
	"context"

	"github.com/Mohsinsiddi/counterdapp/internal/ui"
	"github.com/spf13/cobra"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive view (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUI(cmd.Context())
	},
}

func runUI(ctx context.Context) error {
	approver := ui.NewApprover()
	app, session, client, err := newApp(ctx, approver)
	if err != nil {
		return err
	}
	defer client.Close()

	n, err := network()
	if err != nil {
		return err
	}
	logger.Info("ui started", "network", n.Name, "rpc", client.URL)
	return ui.Run(ctx, app, approver, ui.Options{
		Network:    n.DisplayName,
		Disconnect: session.Disconnect,
	})
}
