package agency

// KV is the key-value storage the ledger persists to.
//
// Get must return an error wrapping fs.ErrNotExist for an absent key.
// Values are JSON documents.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// Storage keys, one per entity group.
const (
	KeyAgentProfile = "agentProfile"
	KeyCustomers    = "customers"
	KeyCollections  = "collections"
	KeyDeposits     = "deposits"
	KeyAppSettings  = "appSettings"
)

// Keys lists all the keys the ledger reads and writes, in write order.
var Keys = []string{KeyAgentProfile, KeyCustomers, KeyCollections, KeyDeposits, KeyAppSettings}
