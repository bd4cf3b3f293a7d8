package wallet_test

import (
	"testing"

	"github.com/Mohsinsiddi/counterdapp/internal/config"
	"github.com/Mohsinsiddi/counterdapp/internal/wallet"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	key0  = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	addr0 = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	key1  = "0x59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"
	addr1 = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
)

func newTestManager() *wallet.Manager {
	return wallet.NewManager(wallet.NewInMemoryKeystore(), wallet.WithInMemoryStore())
}

func TestImportWallet(t *testing.T) {
	mgr := newTestManager()

	w, err := mgr.Import("signer", key0)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(addr0), w.Address) // known address for test key
	assert.Equal(t, "counterdapp.signer", w.KeyRef)
	assert.True(t, w.IsDefault, "first wallet becomes default")

	got, err := mgr.Get("signer")
	require.NoError(t, err)
	assert.Equal(t, w, got)
}

func TestImportDuplicateWalletErrors(t *testing.T) {
	mgr := newTestManager()
	_, err := mgr.Import("dup", key0)
	require.NoError(t, err)

	_, err = mgr.Import("dup", key1)
	assert.ErrorIs(t, err, wallet.ErrWalletExists)
}

func TestImportInvalidPrivateKey(t *testing.T) {
	mgr := newTestManager()
	_, err := mgr.Import("bad", "not-a-valid-key")
	assert.ErrorIs(t, err, wallet.ErrInvalidKey)
}

func TestListWalletsSorted(t *testing.T) {
	mgr := newTestManager()
	mgr.Import("zed", key0)   //nolint:errcheck
	mgr.Import("alpha", key1) //nolint:errcheck

	wallets, err := mgr.List()
	require.NoError(t, err)
	require.Len(t, wallets, 2)
	assert.Equal(t, "alpha", wallets[0].Name)
	assert.Equal(t, "zed", wallets[1].Name)
}

func TestRemoveWalletDeletesKey(t *testing.T) {
	ks := wallet.NewInMemoryKeystore()
	mgr := wallet.NewManager(ks, wallet.WithInMemoryStore())
	w, err := mgr.Import("w1", key0)
	require.NoError(t, err)

	require.NoError(t, mgr.Remove("w1"))

	_, err = mgr.Get("w1")
	assert.ErrorIs(t, err, wallet.ErrWalletNotFound)
	_, err = ks.Retrieve(w.KeyRef)
	assert.Error(t, err)
}

func TestRemoveNonExistentWallet(t *testing.T) {
	err := newTestManager().Remove("ghost")
	assert.ErrorIs(t, err, wallet.ErrWalletNotFound)
}

func TestSetDefault(t *testing.T) {
	mgr := newTestManager()
	mgr.Import("w1", key0) //nolint:errcheck
	mgr.Import("w2", key1) //nolint:errcheck

	require.NoError(t, mgr.SetDefault("w2"))

	def := mgr.Default()
	require.NotNil(t, def)
	assert.Equal(t, "w2", def.Name)
}

func TestSetDefaultUnknown(t *testing.T) {
	err := newTestManager().SetDefault("ghost")
	assert.ErrorIs(t, err, wallet.ErrWalletNotFound)
}

func TestDefaultNone(t *testing.T) {
	assert.Nil(t, newTestManager().Default())
}

func TestConfigStorePersists(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)

	ks := wallet.NewInMemoryKeystore()
	mgr := wallet.NewManager(ks, wallet.WithStore(wallet.NewConfigStore(cfg)))
	_, err = mgr.Import("alice", key0)
	require.NoError(t, err)

	// A fresh manager over the same file sees the wallet.
	reloaded := wallet.NewManager(ks, wallet.WithStore(wallet.NewConfigStore(cfg)))
	w, err := reloaded.Get("alice")
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(addr0), w.Address)
	assert.True(t, w.IsDefault)
}

func TestConfigStoreRejectsBadAddress(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, cfg.SaveWallets(&config.WalletsFile{
		Wallets: []config.Wallet{{Name: "broken", Address: "0x123"}},
	}))

	_, err = wallet.NewConfigStore(cfg).Load()
	assert.ErrorContains(t, err, "invalid address")
}
