package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
	"github.com/finance-tracker/moneyflow/internal/integration/persistence/model"
)

// ledger implements the adapter.Ledger interface on top of GORM transactions.
// Balances and bill amounts are changed with relative updates so concurrent
// bookings never overwrite each other.
type ledger struct {
	db *gorm.DB
}

// NewLedger creates a new ledger instance.
func NewLedger(db *gorm.DB) adapter.Ledger {
	return &ledger{
		db: db,
	}
}

// Book persists new transactions with their balance and bill effects.
func (l *ledger) Book(ctx context.Context, transactions []*entity.Transaction) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, txn := range transactions {
			if err := applyEffects(tx, txn, decimal.NewFromInt(1)); err != nil {
				return err
			}
			if err := tx.Create(model.TransactionFromEntity(txn)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Rebook replaces previous with updated, reverting and reapplying effects.
// A bill payment rebooked away from its bill reopens the bill.
func (l *ledger) Rebook(ctx context.Context, previous, updated *entity.Transaction) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := applyEffects(tx, previous, decimal.NewFromInt(-1)); err != nil {
			return err
		}
		if err := applyEffects(tx, updated, decimal.NewFromInt(1)); err != nil {
			return err
		}
		if previous.IsBillPayment() && !(updated.IsBillPayment() && *updated.BillID == *previous.BillID) {
			if err := reopenBill(tx, *previous.BillID); err != nil {
				return err
			}
		}

		updated.UpdatedAt = time.Now().UTC()
		result := tx.Model(&model.TransactionModel{}).
			Where("id = ? AND user_id = ?", updated.ID, updated.UserID).
			Select("*").
			Omit("created_at", "deleted_at").
			Updates(model.TransactionFromEntity(updated))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrTransactionNotFound
		}
		return nil
	})
}

// Unbook deletes a transaction and reverts its effects.
// Deleting a bill payment reopens the bill.
func (l *ledger) Unbook(ctx context.Context, transaction *entity.Transaction) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := applyEffects(tx, transaction, decimal.NewFromInt(-1)); err != nil {
			return err
		}

		if transaction.IsBillPayment() {
			if err := reopenBill(tx, *transaction.BillID); err != nil {
				return err
			}
		}

		result := tx.Where("id = ? AND user_id = ?", transaction.ID, transaction.UserID).
			Delete(&model.TransactionModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrTransactionNotFound
		}
		return nil
	})
}

// Recategorize sets the category of the user's transactions in ids.
func (l *ledger) Recategorize(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, categoryID *uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	result := l.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("user_id = ? AND id IN ?", userID, ids).
		Updates(map[string]interface{}{
			"category_id": categoryID,
			"updated_at":  time.Now().UTC(),
		})
	return result.RowsAffected, result.Error
}

// SettleBill marks a bill as paid and books the payment against a bank account.
func (l *ledger) SettleBill(ctx context.Context, input adapter.SettleBillInput) (*entity.Bill, *entity.Transaction, error) {
	var (
		bill    *entity.Bill
		payment *entity.Transaction
	)

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Ownership is checked through the card, not the denormalized owner.
		var billModel model.BillModel
		result := tx.
			Joins("JOIN cards ON cards.id = bills.card_id AND cards.deleted_at IS NULL").
			Where("bills.id = ? AND cards.user_id = ?", input.BillID, input.UserID).
			First(&billModel)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return domainerror.ErrBillNotFound
			}
			return result.Error
		}
		bill = billModel.ToEntity()

		if bill.Status == entity.BillStatusPaid {
			return domainerror.ErrBillAlreadyPaid
		}

		var count int64
		if err := tx.Model(&model.BankInfoModel{}).
			Where("id = ? AND user_id = ?", input.BankInfoID, input.UserID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerror.ErrBankInfoNotFound
		}

		bill.MarkPaid(input.PaidAt)
		result = tx.Model(&model.BillModel{}).
			Where("id = ? AND status <> ?", bill.ID, string(entity.BillStatusPaid)).
			Updates(map[string]interface{}{
				"status":     string(bill.Status),
				"paid_at":    bill.PaidAt,
				"updated_at": bill.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrBillAlreadyPaid
		}

		if !bill.Amount.IsPositive() {
			return nil
		}

		payment = entity.NewTransaction(
			input.UserID,
			entity.TransactionTypeExpense,
			entity.TransactionStatusCompleted,
			bill.Amount,
			bill.PaymentDescription(),
			input.PaidAt,
		)
		bankID := input.BankInfoID
		billID := bill.ID
		payment.BankInfoID = &bankID
		payment.BillID = &billID

		if err := applyEffects(tx, payment, decimal.NewFromInt(1)); err != nil {
			return err
		}
		return tx.Create(model.TransactionFromEntity(payment)).Error
	})
	if err != nil {
		return nil, nil, err
	}

	return bill, payment, nil
}

// UpdateCard saves the card and reschedules its unpaid bills due after from.
// References stay put: the due day only moves within the bill's month.
func (l *ledger) UpdateCard(ctx context.Context, card *entity.Card, from time.Time) (int, error) {
	moved := 0
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.CardModel{}).
			Where("id = ? AND user_id = ?", card.ID, card.UserID).
			Updates(map[string]interface{}{
				"description":  card.Description,
				"credit_limit": card.Limit,
				"flag":         card.Flag,
				"closing_day":  card.ClosingDay,
				"due_day":      card.DueDay,
				"bank_info_id": card.BankInfoID,
				"updated_at":   card.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrCardNotFound
		}

		var billModels []model.BillModel
		if err := tx.Where("card_id = ? AND status <> ? AND due_date > ?",
			card.ID, string(entity.BillStatusPaid), entity.DateOnly(from)).
			Find(&billModels).Error; err != nil {
			return err
		}

		for _, billModel := range billModels {
			current := billModel.DueDate.UTC()
			dueDate := card.DueDate(current.Year(), current.Month())
			if dueDate.Equal(current) {
				continue
			}
			if err := tx.Model(&model.BillModel{}).
				Where("id = ?", billModel.ID).
				Updates(map[string]interface{}{
					"due_date":   dueDate,
					"updated_at": card.UpdatedAt,
				}).Error; err != nil {
				return err
			}
			moved++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return moved, nil
}

// CreateCardWithBills persists a card and its initial bills together.
func (l *ledger) CreateCardWithBills(ctx context.Context, card *entity.Card, bills []*entity.Bill) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model.CardFromEntity(card)).Error; err != nil {
			return err
		}
		for _, bill := range bills {
			if err := tx.Create(model.BillFromEntity(bill)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteBankCascade deletes a bank account with its transactions, cards and bills.
// Transfers touching other accounts are reverted on those accounts.
func (l *ledger) DeleteBankCascade(ctx context.Context, userID, bankInfoID uuid.UUID) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var bankCount int64
		if err := tx.Model(&model.BankInfoModel{}).
			Where("id = ? AND user_id = ?", bankInfoID, userID).
			Count(&bankCount).Error; err != nil {
			return err
		}
		if bankCount == 0 {
			return domainerror.ErrBankInfoNotFound
		}

		var transactionModels []model.TransactionModel
		if err := tx.
			Where("user_id = ?", userID).
			Where("(bank_info_id = ? OR destination_bank_info_id = ?)", bankInfoID, bankInfoID).
			Find(&transactionModels).Error; err != nil {
			return err
		}

		ids := make([]uuid.UUID, 0, len(transactionModels))
		for i := range transactionModels {
			txn := transactionModels[i].ToEntity()
			ids = append(ids, txn.ID)

			for _, delta := range txn.BalanceEffects() {
				if delta.BankInfoID == bankInfoID {
					continue
				}
				if err := adjustBalance(tx, userID, delta.BankInfoID, delta.Amount.Neg()); err != nil {
					return err
				}
			}
			if txn.Type == entity.TransactionTypeExpense && txn.BillID != nil {
				if err := reopenBill(tx, *txn.BillID); err != nil {
					return err
				}
			}
		}

		if len(ids) > 0 {
			if err := tx.Where("id IN ?", ids).Delete(&model.TransactionModel{}).Error; err != nil {
				return err
			}
		}

		var cardModels []model.CardModel
		if err := tx.Where("user_id = ? AND bank_info_id = ?", userID, bankInfoID).
			Find(&cardModels).Error; err != nil {
			return err
		}
		for i := range cardModels {
			if err := deleteCard(tx, userID, cardModels[i].ID); err != nil {
				return err
			}
		}

		return tx.Where("id = ? AND user_id = ?", bankInfoID, userID).
			Delete(&model.BankInfoModel{}).Error
	})
}

// DeleteCardCascade deletes a card with its bills and card expenses.
func (l *ledger) DeleteCardCascade(ctx context.Context, userID, cardID uuid.UUID) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteCard(tx, userID, cardID)
	})
}

func deleteCard(tx *gorm.DB, userID, cardID uuid.UUID) error {
	var billIDs []uuid.UUID
	if err := tx.Model(&model.BillModel{}).
		Where("card_id = ?", cardID).
		Pluck("id", &billIDs).Error; err != nil {
		return err
	}

	if err := tx.
		Where("user_id = ? AND card_id = ? AND type = ?", userID, cardID, string(entity.TransactionTypeCardExpense)).
		Delete(&model.TransactionModel{}).Error; err != nil {
		return err
	}

	if len(billIDs) > 0 {
		// Payments stay in the account history.
		if err := tx.Model(&model.TransactionModel{}).
			Where("user_id = ? AND bill_id IN ?", userID, billIDs).
			Updates(map[string]interface{}{
				"bill_id":    nil,
				"updated_at": time.Now().UTC(),
			}).Error; err != nil {
			return err
		}

		if err := tx.Where("card_id = ?", cardID).Delete(&model.BillModel{}).Error; err != nil {
			return err
		}
	}

	result := tx.Where("id = ? AND user_id = ?", cardID, userID).Delete(&model.CardModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrCardNotFound
	}
	return nil
}

// applyEffects applies (sign = 1) or reverts (sign = -1) the balance and bill
// effects of a transaction. Booking a card expense assigns its bill.
func applyEffects(tx *gorm.DB, txn *entity.Transaction, sign decimal.Decimal) error {
	for _, delta := range txn.BalanceEffects() {
		if err := adjustBalance(tx, txn.UserID, delta.BankInfoID, delta.Amount.Mul(sign)); err != nil {
			return err
		}
	}

	if txn.Type != entity.TransactionTypeCardExpense || txn.CardID == nil {
		return nil
	}

	if sign.IsPositive() {
		bill, err := billForPurchase(tx, txn)
		if err != nil {
			return err
		}
		txn.BillID = &bill.ID
	}

	if txn.BillID == nil {
		return nil
	}
	return adjustBillAmount(tx, *txn.BillID, txn.Amount.Mul(sign))
}

func adjustBalance(tx *gorm.DB, userID, bankInfoID uuid.UUID, amount decimal.Decimal) error {
	result := tx.Model(&model.BankInfoModel{}).
		Where("id = ? AND user_id = ?", bankInfoID, userID).
		Updates(map[string]interface{}{
			"current_balance": gorm.Expr("current_balance + ?", amount),
			"updated_at":      time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrBankInfoNotFound
	}
	return nil
}

func adjustBillAmount(tx *gorm.DB, billID uuid.UUID, amount decimal.Decimal) error {
	var billModel model.BillModel
	if err := tx.Where("id = ?", billID).First(&billModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Bill removed with its card; nothing to adjust.
			return nil
		}
		return err
	}
	if billModel.Status == string(entity.BillStatusPaid) {
		return domainerror.ErrBillAlreadyPaid
	}

	return tx.Model(&model.BillModel{}).
		Where("id = ?", billID).
		Updates(map[string]interface{}{
			"amount":     gorm.Expr("amount + ?", amount),
			"updated_at": time.Now().UTC(),
		}).Error
}

// billForPurchase finds or creates the bill covering the purchase date.
func billForPurchase(tx *gorm.DB, txn *entity.Transaction) (*entity.Bill, error) {
	var cardModel model.CardModel
	if err := tx.Where("id = ? AND user_id = ?", *txn.CardID, txn.UserID).First(&cardModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCardNotFound
		}
		return nil, err
	}
	card := cardModel.ToEntity()

	year, month := card.CycleFor(txn.Date)
	candidate := entity.NewBillForCard(card, month, year)

	var billModel model.BillModel
	err := tx.Where("card_id = ? AND reference = ?", card.ID, candidate.Reference).First(&billModel).Error
	if err == nil {
		return billModel.ToEntity(), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := tx.Create(model.BillFromEntity(candidate)).Error; err != nil {
		return nil, err
	}
	return candidate, nil
}

func reopenBill(tx *gorm.DB, billID uuid.UUID) error {
	return tx.Model(&model.BillModel{}).
		Where("id = ? AND status = ?", billID, string(entity.BillStatusPaid)).
		Updates(map[string]interface{}{
			"status":     string(entity.BillStatusOpen),
			"paid_at":    nil,
			"updated_at": time.Now().UTC(),
		}).Error
}
