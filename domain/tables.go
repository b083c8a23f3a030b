package domain

// Table is a mongo collection name
type Table string

const (
	TableAccounts   Table = "accounts"
	TableOrders     Table = "orders"
	TablePayTokens  Table = "pay_tokens"
	TableLaunchpads Table = "launchpads"
	TableMintPhases Table = "mint_phases"
	TableWhitelists Table = "whitelists"
	TableMintSlots  Table = "mint_slots"
)
