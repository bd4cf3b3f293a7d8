package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

const (
	defaultLogLevel     = "info"
	defaultRPCAlgorithm = "fastest"

	configFile  = "config.json"
	walletsFile = "wallets.json"
	logFile     = "counterdapp.log"
)

// Keys accepted by Set, in display order.
var Keys = []string{"network", "contract_address", "explorer_url", "default_wallet", "log_level", "rpc_algorithm"}

// Load reads config from dir (or creates defaults). dir defaults to ~/.counterdapp.
func Load(dir string) (*Config, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("could not determine home dir: %w", err)
		}
		dir = filepath.Join(home, ".counterdapp")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("could not create config dir: %w", err)
	}

	cfg := defaults(dir)

	path := filepath.Join(dir, configFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.configDir = dir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.configDir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.configDir, configFile), data, 0o600)
}

// Validate checks the fields that would otherwise fail late, at the first
// contract call.
func (c *Config) Validate() error {
	if !common.IsHexAddress(c.ContractAddress) {
		return fmt.Errorf("invalid contract_address %q", c.ContractAddress)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q: choose debug, info, warn or error", c.LogLevel)
	}
	switch c.RPCAlgorithm {
	case "", "fastest", "failover":
	default:
		return fmt.Errorf("invalid rpc_algorithm %q: choose fastest or failover", c.RPCAlgorithm)
	}
	return nil
}

// Set updates a single key by name. The caller persists with Save.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	prev := *c
	switch key {
	case "network":
		c.Network = strings.ToLower(value)
	case "contract_address":
		c.ContractAddress = value
	case "explorer_url":
		c.ExplorerURL = strings.TrimRight(value, "/")
	case "default_wallet":
		c.DefaultWallet = value
	case "log_level":
		c.LogLevel = strings.ToLower(value)
	case "rpc_algorithm":
		c.RPCAlgorithm = strings.ToLower(value)
	default:
		return fmt.Errorf("unknown key %q: choose one of %s", key, strings.Join(Keys, ", "))
	}
	if err := c.Validate(); err != nil {
		*c = prev
		return err
	}
	return nil
}

// Get returns the string value of a key, as accepted by Set.
func (c *Config) Get(key string) (string, bool) {
	switch key {
	case "network":
		return c.Network, true
	case "contract_address":
		return c.ContractAddress, true
	case "explorer_url":
		return c.ExplorerURL, true
	case "default_wallet":
		return c.DefaultWallet, true
	case "log_level":
		return c.LogLevel, true
	case "rpc_algorithm":
		return c.RPCAlgorithm, true
	}
	return "", false
}

// AddRPC adds a custom RPC URL.
func (c *Config) AddRPC(url string) error {
	if slices.Contains(c.RPCURLs, url) {
		return fmt.Errorf("RPC %s already configured", url)
	}
	c.RPCURLs = append(c.RPCURLs, url)
	return nil
}

// RemoveRPC removes a custom RPC URL.
func (c *Config) RemoveRPC(url string) error {
	idx := slices.Index(c.RPCURLs, url)
	if idx == -1 {
		return fmt.Errorf("RPC %s not configured", url)
	}
	c.RPCURLs = slices.Delete(c.RPCURLs, idx, idx+1)
	return nil
}

// Dir returns the config directory.
func (c *Config) Dir() string {
	return c.configDir
}

// WalletsPath returns the path of wallets.json.
func (c *Config) WalletsPath() string {
	return filepath.Join(c.configDir, walletsFile)
}

// LogPath returns the path of the rotating log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.configDir, logFile)
}

// LoadWallets reads wallets.json.
func (c *Config) LoadWallets() (*WalletsFile, error) {
	return loadJSON[WalletsFile](c.WalletsPath())
}

// SaveWallets writes wallets.json.
func (c *Config) SaveWallets(wf *WalletsFile) error {
	return saveJSON(c.WalletsPath(), wf)
}

// --- helpers ---

func defaults(dir string) *Config {
	return &Config{
		Network:         DefaultNetwork,
		ContractAddress: DefaultContractAddress,
		LogLevel:        defaultLogLevel,
		RPCAlgorithm:    defaultRPCAlgorithm,
		configDir:       dir,
	}
}

func loadJSON[T any](path string) (*T, error) {
	var zero T
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &zero, nil
	}
	if err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func saveJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
