package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/Mohsinsiddi/counterdapp/internal/ui"
	"github.com/Mohsinsiddi/counterdapp/internal/wallet"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"
)

var walletKeyFlag string

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage signing wallets",
}

var walletImportCmd = &cobra.Command{
	Use:   "import <name>",
	Short: "Import a private key into the OS keychain",
	Long: `Import a hex private key. The key is stored in the OS keychain; only
the name and address are written to wallets.json.

Without --key the key is read from a hidden prompt, or from
COUNTERDAPP_KEY when set.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		key := walletKeyFlag
		if key == "" {
			key = os.Getenv(wallet.EnvKey)
		}
		if key == "" {
			var err error
			key, err = ui.PromptSecret("Private key (hex)", validateHexKey)
			if err != nil {
				return err
			}
		}

		mgr := newWalletManager()
		w, err := mgr.Import(name, key)
		if err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Wallet %q imported: %s", name, ui.Addr(w.Address.Hex()))))
		if w.IsDefault {
			fmt.Println(ui.Meta("  set as default"))
		} else {
			fmt.Println(ui.Hint(fmt.Sprintf("Set as default with: counterdapp wallet use %s", name)))
		}
		return nil
	},
}

var walletListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all wallets",
	RunE: func(cmd *cobra.Command, args []string) error {
		wallets, err := newWalletManager().List()
		if err != nil {
			return err
		}

		if len(wallets) == 0 {
			fmt.Println(ui.Info("No wallets configured yet."))
			fmt.Println(ui.Hint("Import one with: counterdapp wallet import myWallet"))
			return nil
		}

		t := ui.NewTable([]ui.Column{
			{Title: "Name", Width: 16},
			{Title: "Address", Width: 44},
			{Title: "Default", Width: 8},
		})
		for _, w := range wallets {
			def := ""
			if w.IsDefault {
				def = "✓"
			}
			t.AddRow(ui.Row{w.Name, w.Address.Hex(), def})
		}
		fmt.Println(t.Render())
		fmt.Println(ui.Meta(fmt.Sprintf("%d wallet(s) configured", len(wallets))))
		return nil
	},
}

var walletUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Set the wallet new sessions connect with",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if err := newWalletManager().SetDefault(name); err != nil {
			return err
		}
		// An explicit default_wallet would shadow the new default.
		if cfg.DefaultWallet != "" && cfg.DefaultWallet != name {
			cfg.DefaultWallet = name
			if err := cfg.Save(); err != nil {
				return err
			}
		}
		fmt.Println(ui.Success(fmt.Sprintf("Default wallet set to %q", name)))
		return nil
	},
}

var walletRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a wallet and its stored key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if !assumeYes && !ui.ConfirmDanger(fmt.Sprintf("Remove wallet %q and delete its key?", name)) {
			fmt.Println(ui.Meta("Cancelled."))
			return nil
		}
		if err := newWalletManager().Remove(name); err != nil {
			return err
		}
		if cfg.DefaultWallet == name {
			cfg.DefaultWallet = ""
			if err := cfg.Save(); err != nil {
				return err
			}
		}
		fmt.Println(ui.Success(fmt.Sprintf("Wallet %q removed.", name)))
		return nil
	},
}

func validateHexKey(s string) error {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	if _, err := crypto.HexToECDSA(s); err != nil {
		return fmt.Errorf("not a valid private key")
	}
	return nil
}

func init() {
	walletImportCmd.Flags().StringVar(&walletKeyFlag, "key", "", "hex private key (visible in shell history; prefer the prompt)")
	walletCmd.AddCommand(walletImportCmd, walletListCmd, walletUseCmd, walletRemoveCmd)
}
