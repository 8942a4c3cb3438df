package domain

// Table is a mongo collection name
type Table string

const (
	// TableCounters holds one scalar document per counter name
	TableCounters Table = "counters"
	// TableAuctions is the auction-id-keyed record table
	TableAuctions Table = "auctions"
	// TableEscrowInstructions is the append-only payout instruction audit trail
	TableEscrowInstructions Table = "escrow_instructions"
)
