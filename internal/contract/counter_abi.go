package contract

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// CounterABIJSON is the interface of the deployed message counter.
const CounterABIJSON = `[
  {"type":"function","name":"count","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"increment","stateMutability":"nonpayable","inputs":[{"name":"_message","type":"string"}],"outputs":[]},
  {"type":"function","name":"reset","stateMutability":"nonpayable","inputs":[],"outputs":[]},
  {"type":"function","name":"getHistoryCount","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"getMessage","stateMutability":"view","inputs":[{"name":"index","type":"uint256"}],"outputs":[{"name":"","type":"string"},{"name":"","type":"address"},{"name":"","type":"uint256"}]},
  {"type":"event","name":"MessageAdded","anonymous":false,"inputs":[{"name":"message","type":"string","indexed":false},{"name":"sender","type":"address","indexed":true},{"name":"timestamp","type":"uint256","indexed":false}]}
]`

// Method and event names.
const (
	MethodCount           = "count"
	MethodIncrement       = "increment"
	MethodReset           = "reset"
	MethodGetHistoryCount = "getHistoryCount"
	MethodGetMessage      = "getMessage"
	EventMessageAdded     = "MessageAdded"
)

// CounterABI is the parsed counter interface.
var CounterABI = mustParseABI(CounterABIJSON)

func mustParseABI(s string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(s))
	if err != nil {
		panic("contract: invalid counter ABI: " + err.Error())
	}
	return parsed
}
