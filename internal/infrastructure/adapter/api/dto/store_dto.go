package dto

import (
	"github.com/amirhossein-jamali/cnab-processor/internal/domain/entity"
)

// StoreBalanceResponse represents a store and its derived balance.
// Amounts are decimal strings in currency units.
type StoreBalanceResponse struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	OwnerName        string `json:"ownerName"`
	Balance          string `json:"balance"`
	TransactionCount int64  `json:"transactionCount"`
}

// NewStoreBalanceResponse maps a store balance to its API representation
func NewStoreBalanceResponse(b entity.StoreBalance) StoreBalanceResponse {
	return StoreBalanceResponse{
		ID:               b.Store.ID,
		Name:             b.Store.Name,
		OwnerName:        b.Store.OwnerName,
		Balance:          b.FormattedBalance(),
		TransactionCount: b.TransactionCount,
	}
}

// StoreBalancesResponse lists every store with its balance
type StoreBalancesResponse struct {
	Stores []StoreBalanceResponse `json:"stores"`
}

// NewStoreBalancesResponse maps a list of balances, keeping their order
func NewStoreBalancesResponse(balances []entity.StoreBalance) StoreBalancesResponse {
	stores := make([]StoreBalanceResponse, 0, len(balances))
	for _, b := range balances {
		stores = append(stores, NewStoreBalanceResponse(b))
	}
	return StoreBalancesResponse{Stores: stores}
}

// StatementLineResponse represents one transaction of a store statement
type StatementLineResponse struct {
	ID           uint64 `json:"id"`
	FileID       string `json:"fileId"`
	Type         int    `json:"type"`
	Description  string `json:"description"`
	Nature       string `json:"nature"`
	Sign         string `json:"sign"`
	Amount       string `json:"amount"`
	SignedAmount string `json:"signedAmount"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	CardRef      string `json:"cardRef"`
	SubjectID    string `json:"subjectId"`
}

// StatementResponse represents a store with its transactions in chronological order
type StatementResponse struct {
	Store        StoreBalanceResponse    `json:"store"`
	Transactions []StatementLineResponse `json:"transactions"`
}

// NewStatementResponse maps a statement. Lines whose type is missing from the lookup keep
// their unsigned amount and an empty sign.
func NewStatementResponse(s *entity.StoreStatement) StatementResponse {
	lines := make([]StatementLineResponse, 0, len(s.Transactions))
	for _, tx := range s.Transactions {
		line := StatementLineResponse{
			ID:           tx.ID,
			FileID:       tx.FileID.String(),
			Type:         tx.TypeCode,
			Amount:       entity.FormatMinorUnits(tx.Amount),
			SignedAmount: entity.FormatMinorUnits(tx.Amount),
			Date:         tx.Date.Format("2006-01-02"),
			Time:         tx.Time.String(),
			CardRef:      tx.CardRef,
			SubjectID:    tx.SubjectID,
		}
		if t, ok := s.Types[tx.TypeCode]; ok {
			line.Description = t.Description
			line.Nature = string(t.Nature)
			line.Sign = t.SignSymbol()
			line.SignedAmount = entity.FormatMinorUnits(t.SignedAmount(tx.Amount))
		}
		lines = append(lines, line)
	}

	return StatementResponse{
		Store:        NewStoreBalanceResponse(s.StoreBalance),
		Transactions: lines,
	}
}
