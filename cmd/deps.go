package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/Mohsinsiddi/counterdapp/internal/chain"
	"github.com/Mohsinsiddi/counterdapp/internal/config"
	"github.com/Mohsinsiddi/counterdapp/internal/contract"
	"github.com/Mohsinsiddi/counterdapp/internal/dapp"
	"github.com/Mohsinsiddi/counterdapp/internal/rpc"
	"github.com/Mohsinsiddi/counterdapp/internal/ui"
	"github.com/Mohsinsiddi/counterdapp/internal/wallet"
	"github.com/ethereum/go-ethereum/common"
)

// network resolves the configured network.
func network() (*chain.Network, error) {
	n, err := chain.NewRegistry().GetByName(cfg.Network)
	if err != nil {
		return nil, fmt.Errorf("%w: %q (see `counterdapp config set network`)", err, cfg.Network)
	}
	return n, nil
}

// explorerBase is the configured explorer, falling back to the network's.
func explorerBase(n *chain.Network) string {
	if cfg.ExplorerURL != "" {
		return cfg.ExplorerURL
	}
	return n.Explorer
}

// dialNetwork connects to the best healthy RPC of the configured network,
// ranked by the configured rpc_algorithm.
func dialNetwork(ctx context.Context) (*chain.Client, *chain.Network, error) {
	n, err := network()
	if err != nil {
		return nil, nil, err
	}
	algo, err := rpc.ParseAlgorithm(cfg.RPCAlgorithm)
	if err != nil {
		return nil, nil, err
	}
	urls := rpc.Arrange(ctx, chain.Endpoints(cfg.RPCURLs, n), algo, config.RPCDialTimeout, logger)
	client, err := chain.Dial(ctx, urls, n.ChainID, config.RPCDialTimeout, logger)
	if err != nil {
		return nil, nil, err
	}
	return client, n, nil
}

func newWalletManager() *wallet.Manager {
	ks := wallet.DefaultKeystore(filepath.Join(cfg.Dir(), "keys"))
	return wallet.NewManager(ks, wallet.WithStore(wallet.NewConfigStore(cfg)))
}

func counterAt(client *chain.Client) *contract.Counter {
	return contract.NewCounter(common.HexToAddress(cfg.ContractAddress), client.Client)
}

// newApp wires the controller for the configured network and wallet.
func newApp(ctx context.Context, approver wallet.Approver) (*dapp.App, *wallet.Session, *chain.Client, error) {
	client, n, err := dialNetwork(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	session := wallet.NewSession(newWalletManager(), approver, cfg.DefaultWallet, logger)
	app := dapp.New(session, client.Client, dapp.Options{
		ContractAddress: cfg.ContractAddress,
		ExplorerURL:     explorerBase(n),
		Logger:          logger,
	})
	return app, session, client, nil
}

// cliApprover asks on the terminal unless --yes was given. onSign runs after
// a signature is approved.
func cliApprover(onSign func()) wallet.Approver {
	return wallet.ApproverFunc(func(ctx context.Context, req wallet.Request) error {
		if !assumeYes && !ui.ConfirmRequest(req) {
			return wallet.ErrUserRejected
		}
		if req.Kind == wallet.RequestSign && onSign != nil {
			onSign()
		}
		return nil
	})
}
