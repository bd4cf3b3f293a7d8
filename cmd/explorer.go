package cmd

import (
	"fmt"

	"github.com/Mohsinsiddi/counterdapp/internal/dapp"
	"github.com/Mohsinsiddi/counterdapp/internal/ui"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

var explorerPrint bool

var explorerCmd = &cobra.Command{
	Use:   "explorer",
	Short: "Open the contract on the block explorer",
	RunE: func(cmd *cobra.Command, args []string) error {
		url, err := contractExplorerURL()
		if err != nil {
			return err
		}
		if explorerPrint {
			fmt.Println(url)
			return nil
		}
		if err := browser.OpenURL(url); err != nil {
			fmt.Println(ui.Warn("Could not open a browser: " + err.Error()))
			fmt.Println(url)
			return nil
		}
		fmt.Println(ui.Success("Opened " + ui.Addr(url)))
		return nil
	},
}

func contractExplorerURL() (string, error) {
	n, err := network()
	if err != nil {
		return "", err
	}
	url, err := dapp.ContractURL(explorerBase(n), cfg.ContractAddress)
	if err != nil {
		return "", fmt.Errorf("%w (set an explorer with `counterdapp config set explorer_url <url>`)", err)
	}
	return url, nil
}

func init() {
	explorerCmd.Flags().BoolVar(&explorerPrint, "print", false, "print the URL instead of opening it")
}
