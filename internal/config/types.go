package config

// Config holds all counterdapp configuration.
type Config struct {
	Network         string   `json:"network"`
	RPCURLs         []string `json:"rpc_urls,omitempty"`     // custom endpoints, tried before the network defaults
	RPCAlgorithm    string   `json:"rpc_algorithm"`          // "fastest" | "failover"
	ContractAddress string   `json:"contract_address"`
	ExplorerURL     string   `json:"explorer_url,omitempty"` // overrides the network explorer
	DefaultWallet   string   `json:"default_wallet"`
	LogLevel        string   `json:"log_level"` // "debug" | "info" | "warn" | "error"

	// internal: config dir path used for Save()
	configDir string
}

// Wallet represents a stored wallet entry in wallets.json.
type Wallet struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	KeyRef    string `json:"key_ref"` // keychain reference
	IsDefault bool   `json:"is_default"`
	CreatedAt string `json:"created_at"`
}

// WalletsFile is the structure of wallets.json.
type WalletsFile struct {
	Wallets []Wallet `json:"wallets"`
}
