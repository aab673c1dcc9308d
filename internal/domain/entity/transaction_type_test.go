package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/cnab-processor/internal/domain/error"
)

func testTypes() TransactionTypes {
	return NewTransactionTypes([]TransactionType{
		{Code: 1, Description: "Debit", Nature: NatureIncome, Sign: 1},
		{Code: 2, Description: "Boleto", Nature: NatureExpense, Sign: -1},
		{Code: 4, Description: "Credit", Nature: NatureIncome, Sign: 1},
		{Code: 9, Description: "Rent", Nature: NatureExpense, Sign: -1},
	})
}

func TestTransactionTypeSignedAmount(t *testing.T) {
	types := testTypes()

	assert.Equal(t, int64(1000), types[1].SignedAmount(1000))
	assert.Equal(t, int64(-1000), types[2].SignedAmount(1000))
	assert.Equal(t, "+", types[4].SignSymbol())
	assert.Equal(t, "-", types[9].SignSymbol())
}

func TestSignDeterminism(t *testing.T) {
	types := testTypes()
	amounts := []int64{1, 50, 1000, 999999999}

	for code, tt := range types {
		var firstSign int64
		for i, amount := range amounts {
			signed := tt.SignedAmount(amount)
			sign := signed / abs(signed)
			if i == 0 {
				firstSign = sign
				continue
			}
			assert.Equal(t, firstSign, sign, "type %d produced mixed signs", code)
		}
	}
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func TestTransactionTypesBalance(t *testing.T) {
	types := testTypes()
	fileID := uuid.New()

	transactions := []*Transaction{
		{FileID: fileID, StoreID: 1, TypeCode: 4, Amount: 1000},
		{FileID: fileID, StoreID: 1, TypeCode: 1, Amount: 250},
		{FileID: fileID, StoreID: 1, TypeCode: 9, Amount: 300},
	}

	balance, err := types.Balance(transactions)
	require.NoError(t, err)
	assert.Equal(t, int64(950), balance)

	_, err = types.Balance([]*Transaction{{TypeCode: 7, Amount: 1}})
	assert.ErrorIs(t, err, errs.ErrTransactionTypeNotFound)
}
