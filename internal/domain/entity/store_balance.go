package entity

// StoreBalance is a store with its balance derived at query time
type StoreBalance struct {
	Store            Store
	Balance          int64 // signed, minor units
	TransactionCount int64
}

// FormattedBalance returns the balance in currency units
func (b StoreBalance) FormattedBalance() string {
	return FormatMinorUnits(b.Balance)
}

// StoreStatement is a store with its transactions, in chronological order
type StoreStatement struct {
	StoreBalance
	Transactions []*Transaction
	Types        TransactionTypes
}
