package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Record kinds stored in the shared records table.
const (
	KindToken       = "token"
	KindReward      = "reward"
	KindTransaction = "transaction"
)

// Transaction kinds.
const (
	TxEarn  = "earn"
	TxSpend = "spend"
)

// Record is a single row of the shared single-table store. All three kinds
// live in one table distinguished by Kind, with secondary indexes on Kind
// and TokenID. Fields not belonging to a record's kind stay at their zero
// value.
type Record struct {
	ID   string `gorm:"primaryKey;size:36" json:"id"`
	Kind string `gorm:"size:16;index;not null" json:"kind"`

	// Token fields
	Name  string `gorm:"size:100" json:"name"`
	Count int    `gorm:"default:0" json:"count"`
	Color string `gorm:"size:16" json:"color"`
	Icon  string `gorm:"size:50" json:"icon"`

	// Reward fields
	Description string `gorm:"size:500" json:"description"`
	TokenCost   int    `json:"tokenCost"`
	TokenType   string `gorm:"size:36" json:"tokenType"`
	IsActive    bool   `json:"isActive"`

	// Transaction fields
	TransactionKind string `gorm:"size:8" json:"transactionKind"`
	TokenID         string `gorm:"size:36;index" json:"tokenId"`
	TokenName       string `gorm:"size:100" json:"tokenName"`
	Amount          int    `json:"amount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName pins the shared table name.
func (Record) TableName() string { return "records" }

// BeforeCreate assigns an id and timestamps when not provided.
func (r *Record) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	now := time.Now()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now
	return nil
}

// IsToken reports whether the record is a well-formed token row.
func (r *Record) IsToken() bool { return r.Kind == KindToken }

// IsReward reports whether the record is a well-formed reward row.
func (r *Record) IsReward() bool { return r.Kind == KindReward }

// IsTransaction reports whether the record is a transaction log row.
func (r *Record) IsTransaction() bool { return r.Kind == KindTransaction }

// Token is the API view of a token jar record.
type Token struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Count     int       `json:"count"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Reward is the API view of a reward record. TokenType is a weak reference:
// the token it names may have been deleted since, readers must tolerate
// that.
type Reward struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	TokenCost   int       `json:"tokenCost"`
	TokenType   string    `json:"tokenType"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Transaction is the API view of one immutable earn/spend log entry.
type Transaction struct {
	ID              string    `json:"id"`
	TransactionKind string    `json:"transactionKind"`
	TokenID         string    `json:"tokenId"`
	TokenName       string    `json:"tokenName"`
	Amount          int       `json:"amount"`
	Description     string    `json:"description"`
	Timestamp       time.Time `json:"timestamp"`
}

// AsToken projects the record onto the token view.
func (r *Record) AsToken() Token {
	return Token{
		ID:        r.ID,
		Name:      r.Name,
		Count:     r.Count,
		Color:     r.Color,
		Icon:      r.Icon,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// AsReward projects the record onto the reward view.
func (r *Record) AsReward() Reward {
	return Reward{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		TokenCost:   r.TokenCost,
		TokenType:   r.TokenType,
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// AsTransaction projects the record onto the transaction view.
func (r *Record) AsTransaction() Transaction {
	return Transaction{
		ID:              r.ID,
		TransactionKind: r.TransactionKind,
		TokenID:         r.TokenID,
		TokenName:       r.TokenName,
		Amount:          r.Amount,
		Description:     r.Description,
		Timestamp:       r.CreatedAt,
	}
}

// FilterTokens keeps the token rows of a mixed record slice.
func FilterTokens(records []Record) []Token {
	out := make([]Token, 0, len(records))
	for i := range records {
		if records[i].IsToken() {
			out = append(out, records[i].AsToken())
		}
	}
	return out
}

// FilterRewards keeps the reward rows of a mixed record slice.
func FilterRewards(records []Record) []Reward {
	out := make([]Reward, 0, len(records))
	for i := range records {
		if records[i].IsReward() {
			out = append(out, records[i].AsReward())
		}
	}
	return out
}

// FilterTransactions keeps the transaction rows of a mixed record slice.
func FilterTransactions(records []Record) []Transaction {
	out := make([]Transaction, 0, len(records))
	for i := range records {
		if records[i].IsTransaction() {
			out = append(out, records[i].AsTransaction())
		}
	}
	return out
}
