package types

const (
	// ModuleName defines the module name
	ModuleName = "darkpool"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// MemStoreKey defines the in-memory store key
	MemStoreKey = "mem_" + ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName

	// QuerierRoute defines the module's query routing key
	QuerierRoute = ModuleName
)

// Store key prefixes shared across keeper files. Feature-local prefixes
// (orders, fills, tickets, grants) live next to the code that owns them.
var (
	ParamsKey = []byte{0x01} // key for module parameters
	PausedKey = []byte{0x02} // key for the emergency pause flag
)
