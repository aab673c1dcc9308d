package model

// TransactionType is a row of the transaction type lookup table.
// Sign is the only source of truth for how a type affects a balance.
type TransactionType struct {
	Code        int    `gorm:"primaryKey;autoIncrement:false"`
	Description string `gorm:"size:50;not null"`
	Nature      string `gorm:"size:10;not null"`
	Sign        int16  `gorm:"not null;check:chk_transaction_types_sign,sign IN (-1, 1)"`
}

// TableName specifies the table name for TransactionType
func (TransactionType) TableName() string {
	return "transaction_types"
}
