package config

import "time"

// Deployed MessageCounter contract and the network it lives on.
const (
	DefaultContractAddress = "0x68E35E3eeF7fcd4c1ca64A7B68A3A793312d53aC"
	DefaultNetwork         = "sepolia"
)

// GasLimitContractCall is the EstimateGas fallback when the node cannot
// simulate the call. increment() with a long message stays well below it.
const GasLimitContractCall = uint64(200_000)

const (
	RPCDialTimeout = 8 * time.Second  // ethclient dial, per endpoint
	ReceiptPoll    = 2 * time.Second  // transaction receipt polling interval
	LoadTimeout    = 30 * time.Second // CLI read commands only
)
