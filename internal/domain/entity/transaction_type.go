package entity

import (
	"fmt"

	errs "github.com/amirhossein-jamali/cnab-processor/internal/domain/error"
)

// Nature describes the cash direction of a transaction type
type Nature string

// Nature constants
const (
	NatureIncome  Nature = "income"
	NatureExpense Nature = "expense"
)

// TransactionType is a row of the type lookup table and the only source of balance signs
type TransactionType struct {
	Code        int
	Description string
	Nature      Nature
	Sign        int // +1 or -1
}

// SignedAmount applies the type sign to an unsigned amount
func (t TransactionType) SignedAmount(amount int64) int64 {
	if t.Sign < 0 {
		return -amount
	}
	return amount
}

// SignSymbol returns "+" or "-"
func (t TransactionType) SignSymbol() string {
	if t.Sign < 0 {
		return "-"
	}
	return "+"
}

// TransactionTypes indexes the lookup table by code
type TransactionTypes map[int]TransactionType

// NewTransactionTypes indexes a list of lookup rows
func NewTransactionTypes(types []TransactionType) TransactionTypes {
	index := make(TransactionTypes, len(types))
	for _, t := range types {
		index[t.Code] = t
	}
	return index
}

// SignedAmount resolves the type of a transaction and returns its signed amount
func (tt TransactionTypes) SignedAmount(tx *Transaction) (int64, error) {
	t, ok := tt[tx.TypeCode]
	if !ok {
		return 0, fmt.Errorf("%w: code %d", errs.ErrTransactionTypeNotFound, tx.TypeCode)
	}
	return t.SignedAmount(tx.Amount), nil
}

// Balance sums the signed amounts of transactions
func (tt TransactionTypes) Balance(transactions []*Transaction) (int64, error) {
	var total int64
	for _, tx := range transactions {
		signed, err := tt.SignedAmount(tx)
		if err != nil {
			return 0, err
		}
		total += signed
	}
	return total, nil
}
