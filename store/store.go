package store

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rewardjar/rewardjar/models"
)

// Sentinel errors surfaced to the API layer.
var (
	// ErrNotFound means the id does not resolve to a record of the
	// expected kind.
	ErrNotFound = errors.New("record not found")
	// ErrInsufficientBalance means a spend exceeds the jar's current count.
	ErrInsufficientBalance = errors.New("insufficient tokens")
	// ErrInvalidReference means a reward's tokenType does not resolve to an
	// existing token.
	ErrInvalidReference = errors.New("invalid token type")
)

// Store wraps the shared records table. All three record kinds live in one
// table; the store itself stays kind-agnostic in the generic operations and
// kind-aware in the helpers below them.
type Store struct {
	db *gorm.DB
}

// New creates a Store on an initialized database handle.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Put inserts a record, stamping id and timestamps via the model hook.
func (s *Store) Put(rec *models.Record) error {
	return s.db.Create(rec).Error
}

// GetByID loads one record regardless of kind.
func (s *Store) GetByID(id string) (*models.Record, error) {
	var rec models.Record
	if err := s.db.First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// Update merge-patches a record and refreshes its update timestamp. The id
// and kind columns can never be altered through a patch.
func (s *Store) Update(id string, fields map[string]any) (*models.Record, error) {
	patch := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		if k == "id" || k == "kind" {
			continue
		}
		patch[k] = v
	}
	patch["updated_at"] = time.Now()

	res := s.db.Model(&models.Record{}).Where("id = ?", id).Updates(patch)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetByID(id)
}

// Delete removes a record by id. Deleting a token never cascades to the
// rewards that reference it; those references go dangling by design of the
// data model and readers tolerate them.
func (s *Store) Delete(id string) error {
	return s.db.Delete(&models.Record{}, "id = ?", id).Error
}

// QueryByKind lists all records of one kind, newest first.
func (s *Store) QueryByKind(kind string) ([]models.Record, error) {
	var recs []models.Record
	err := s.db.Where("kind = ?", kind).Order("created_at DESC").Find(&recs).Error
	return recs, err
}

// QueryByTokenID lists the transaction rows referencing a token, newest
// first.
func (s *Store) QueryByTokenID(tokenID string) ([]models.Record, error) {
	var recs []models.Record
	err := s.db.Where("token_id = ?", tokenID).Order("created_at DESC").Find(&recs).Error
	return recs, err
}

// getKind loads a record and checks its discriminator.
func (s *Store) getKind(id, kind string) (*models.Record, error) {
	rec, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec.Kind != kind {
		return nil, ErrNotFound
	}
	return rec, nil
}

// GetToken loads a token record by id.
func (s *Store) GetToken(id string) (*models.Record, error) {
	return s.getKind(id, models.KindToken)
}

// GetReward loads a reward record by id.
func (s *Store) GetReward(id string) (*models.Record, error) {
	return s.getKind(id, models.KindReward)
}

// ListTokens returns all token jars.
func (s *Store) ListTokens() ([]models.Token, error) {
	recs, err := s.QueryByKind(models.KindToken)
	if err != nil {
		return nil, err
	}
	return models.FilterTokens(recs), nil
}

// ListRewards returns all rewards.
func (s *Store) ListRewards() ([]models.Reward, error) {
	recs, err := s.QueryByKind(models.KindReward)
	if err != nil {
		return nil, err
	}
	return models.FilterRewards(recs), nil
}

// ListTransactions returns the full transaction log.
func (s *Store) ListTransactions() ([]models.Transaction, error) {
	recs, err := s.QueryByKind(models.KindTransaction)
	if err != nil {
		return nil, err
	}
	return models.FilterTransactions(recs), nil
}

// TransactionsForToken returns one token's log entries. The token must
// exist; its past transactions would otherwise be indistinguishable from a
// typo'd id.
func (s *Store) TransactionsForToken(tokenID string) ([]models.Transaction, error) {
	if _, err := s.GetToken(tokenID); err != nil {
		return nil, err
	}
	recs, err := s.QueryByTokenID(tokenID)
	if err != nil {
		return nil, err
	}
	return models.FilterTransactions(recs), nil
}

// CreateToken inserts a new jar with a zero count.
func (s *Store) CreateToken(name, color, icon string) (models.Token, error) {
	rec := models.Record{
		Kind:  models.KindToken,
		Name:  name,
		Count: 0,
		Color: color,
		Icon:  icon,
	}
	if err := s.Put(&rec); err != nil {
		return models.Token{}, err
	}
	return rec.AsToken(), nil
}

// UpdateTokenMeta patches a jar's display fields. The count column is
// deliberately unreachable from here; it only moves through
// AdjustTokenCount.
func (s *Store) UpdateTokenMeta(id string, fields map[string]any) (models.Token, error) {
	if _, err := s.GetToken(id); err != nil {
		return models.Token{}, err
	}
	delete(fields, "count")
	rec, err := s.Update(id, fields)
	if err != nil {
		return models.Token{}, err
	}
	return rec.AsToken(), nil
}

// DeleteToken removes a jar. Rewards referencing it keep their now-dangling
// tokenType.
func (s *Store) DeleteToken(id string) error {
	if _, err := s.GetToken(id); err != nil {
		return err
	}
	return s.Delete(id)
}

// AdjustTokenCount applies a signed delta to a jar and appends the paired
// transaction row. Positive amounts earn, negative amounts spend; a spend
// exceeding the current balance fails with ErrInsufficientBalance and
// leaves no trace.
//
// The re-check, the count update and the log append run in one database
// transaction under a row lock, so two concurrent spends cannot both pass
// the balance check, and a failed log append rolls the count back. The lock
// matters on MySQL; SQLite serializes writers on its own and rejects
// FOR UPDATE syntax.
func (s *Store) AdjustTokenCount(id string, amount int, description string) (models.Token, error) {
	var updated models.Token

	txKind := models.TxEarn
	if amount < 0 {
		txKind = models.TxSpend
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		q := tx.Where("id = ? AND kind = ?", id, models.KindToken)
		if tx.Dialector.Name() == "mysql" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var token models.Record
		if err := q.First(&token).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if txKind == models.TxSpend && !models.CanAfford(token.Count, -amount) {
			return ErrInsufficientBalance
		}

		newCount := models.ApplyTokenDelta(token.Count, amount)
		now := time.Now()
		if err := tx.Model(&models.Record{}).Where("id = ?", token.ID).
			Updates(map[string]any{"count": newCount, "updated_at": now}).Error; err != nil {
			return err
		}

		logAmount := amount
		if logAmount < 0 {
			logAmount = -logAmount
		}
		entry := models.Record{
			Kind:            models.KindTransaction,
			TransactionKind: txKind,
			TokenID:         token.ID,
			TokenName:       token.Name, // pre-mutation name
			Amount:          logAmount,
			Description:     models.TxDescription(description, txKind),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		updated = token.AsToken()
		updated.Count = newCount
		updated.UpdatedAt = now
		return nil
	})
	if err != nil {
		return models.Token{}, err
	}
	return updated, nil
}

// CreateReward inserts a reward after resolving its token reference.
func (s *Store) CreateReward(name, description string, tokenCost int, tokenType string) (models.Reward, error) {
	if _, err := s.GetToken(tokenType); err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.Reward{}, ErrInvalidReference
		}
		return models.Reward{}, err
	}

	rec := models.Record{
		Kind:        models.KindReward,
		Name:        name,
		Description: description,
		TokenCost:   tokenCost,
		TokenType:   tokenType,
		IsActive:    true,
	}
	if err := s.Put(&rec); err != nil {
		return models.Reward{}, err
	}
	return rec.AsReward(), nil
}

// UpdateReward patches a reward. The token reference is re-validated only
// when it differs from the stored value, skipping a redundant lookup on
// unrelated-field edits.
func (s *Store) UpdateReward(id, name, description string, tokenCost int, tokenType string) (models.Reward, error) {
	rec, err := s.GetReward(id)
	if err != nil {
		return models.Reward{}, err
	}

	if tokenType != rec.TokenType {
		if _, err := s.GetToken(tokenType); err != nil {
			if errors.Is(err, ErrNotFound) {
				return models.Reward{}, ErrInvalidReference
			}
			return models.Reward{}, err
		}
	}

	updated, err := s.Update(id, map[string]any{
		"name":        name,
		"description": description,
		"token_cost":  tokenCost,
		"token_type":  tokenType,
	})
	if err != nil {
		return models.Reward{}, err
	}
	return updated.AsReward(), nil
}

// ToggleRewardActive flips a reward's active flag, leaving every other field
// untouched.
func (s *Store) ToggleRewardActive(id string) (models.Reward, error) {
	rec, err := s.GetReward(id)
	if err != nil {
		return models.Reward{}, err
	}
	updated, err := s.Update(id, map[string]any{"is_active": !rec.IsActive})
	if err != nil {
		return models.Reward{}, err
	}
	return updated.AsReward(), nil
}

// DeleteReward removes a reward.
func (s *Store) DeleteReward(id string) error {
	if _, err := s.GetReward(id); err != nil {
		return err
	}
	return s.Delete(id)
}
