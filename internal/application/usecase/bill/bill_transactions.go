package bill

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
)

// BillTransactionsInput represents the input for listing a bill's purchases.
type BillTransactionsInput struct {
	Principal entity.Principal
	BillID    uuid.UUID
}

// BillTransactionItem represents a purchase annotated with its category name.
type BillTransactionItem struct {
	*entity.Transaction
	CategoryName string
}

// BillTransactionsOutput represents a bill, its purchases and its payment.
type BillTransactionsOutput struct {
	Bill         *entity.Bill
	Transactions []*BillTransactionItem
	Payment      *entity.Transaction
}

// BillTransactionsUseCase lists the card expenses grouped in a bill.
type BillTransactionsUseCase struct {
	billRepo        adapter.BillRepository
	transactionRepo adapter.TransactionRepository
	resolver        CategoryResolver
}

// NewBillTransactionsUseCase creates a new BillTransactionsUseCase instance.
func NewBillTransactionsUseCase(
	billRepo adapter.BillRepository,
	transactionRepo adapter.TransactionRepository,
	resolver CategoryResolver,
) *BillTransactionsUseCase {
	return &BillTransactionsUseCase{
		billRepo:        billRepo,
		transactionRepo: transactionRepo,
		resolver:        resolver,
	}
}

// Execute lists the purchases of an owned bill with their category names.
func (uc *BillTransactionsUseCase) Execute(ctx context.Context, input BillTransactionsInput) (*BillTransactionsOutput, error) {
	if !input.Principal.Authenticated() {
		return nil, domainerror.NewUnauthorizedError()
	}

	bill, err := uc.billRepo.FindByIDAndUser(ctx, input.BillID, input.Principal.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrBillNotFound) {
			return nil, billNotFound()
		}
		return nil, fmt.Errorf("failed to find bill: %w", err)
	}

	transactions, err := uc.transactionRepo.FindByBill(ctx, input.Principal.UserID, bill.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bill transactions: %w", err)
	}

	output := &BillTransactionsOutput{
		Bill:         bill,
		Transactions: make([]*BillTransactionItem, 0, len(transactions)),
	}

	categoryIDs := make([]*uuid.UUID, 0, len(transactions))
	for _, txn := range transactions {
		categoryIDs = append(categoryIDs, txn.CategoryID)
	}
	resolutions, err := uc.resolver.ResolveMany(ctx, input.Principal.UserID, categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve categories: %w", err)
	}

	for _, txn := range transactions {
		if txn.Type != entity.TransactionTypeCardExpense {
			output.Payment = txn
			continue
		}
		output.Transactions = append(output.Transactions, &BillTransactionItem{
			Transaction:  txn,
			CategoryName: resolutions.For(txn.CategoryID).Name,
		})
	}

	return output, nil
}
