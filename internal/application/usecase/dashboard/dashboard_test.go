package dashboard

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/moneyflow/internal/application/usecase/category"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
)

type fakeDashboardRepository struct {
	transactions []*entity.Transaction
	accounts     []*entity.BankInfo
	err          error
}

func (r *fakeDashboardRepository) GetDateRange(_ context.Context, userID uuid.UUID) (*DateRange, error) {
	dr := &DateRange{}
	for _, txn := range r.transactions {
		if txn.UserID != userID {
			continue
		}
		d := txn.Date
		if dr.OldestDate == nil || d.Before(*dr.OldestDate) {
			dr.OldestDate = &d
		}
		if dr.NewestDate == nil || d.After(*dr.NewestDate) {
			dr.NewestDate = &d
		}
		dr.TotalTransactions++
	}
	return dr, nil
}

func (r *fakeDashboardRepository) GetTransactionsInPeriod(
	_ context.Context,
	userID uuid.UUID,
	txnType *entity.TransactionType,
	startDate, endDate time.Time,
) ([]*entity.Transaction, error) {
	if r.err != nil {
		return nil, r.err
	}
	var result []*entity.Transaction
	for _, txn := range r.transactions {
		if txn.UserID != userID || (txnType != nil && txn.Type != *txnType) {
			continue
		}
		if txn.Date.Before(startDate) || txn.Date.After(endDate) {
			continue
		}
		result = append(result, txn)
	}
	return result, nil
}

func (r *fakeDashboardRepository) GetRecentTransactions(_ context.Context, userID uuid.UUID, limit int) ([]*entity.Transaction, error) {
	var result []*entity.Transaction
	for _, txn := range r.transactions {
		if txn.UserID == userID {
			result = append(result, txn)
		}
	}
	// Fixtures are inserted oldest first.
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *fakeDashboardRepository) GetBankAccounts(_ context.Context, userID uuid.UUID) ([]*entity.BankInfo, error) {
	var result []*entity.BankInfo
	for _, account := range r.accounts {
		if account.UserID == userID {
			result = append(result, account)
		}
	}
	return result, nil
}

// fakeResolver resolves built-ins and a fixed set of user categories.
type fakeResolver struct {
	names map[uuid.UUID]string
	calls atomic.Int32
}

func (r *fakeResolver) ResolveMany(_ context.Context, _ uuid.UUID, ids []*uuid.UUID) (category.Resolutions, error) {
	r.calls.Add(1)
	resolutions := make(category.Resolutions)
	for _, id := range ids {
		if id == nil {
			continue
		}
		resolvedID := *id
		if builtin, ok := entity.LookupBuiltinCategory(resolvedID); ok {
			resolutions[resolvedID] = category.Resolution{ID: &resolvedID, Name: builtin.Name, Source: entity.CategorySourceBuiltin}
			continue
		}
		if name, ok := r.names[resolvedID]; ok {
			resolutions[resolvedID] = category.Resolution{ID: &resolvedID, Name: name, Source: entity.CategorySourceUserDefined}
		}
	}
	return resolutions, nil
}

type fixture struct {
	principal entity.Principal
	repo      *fakeDashboardRepository
	resolver  *fakeResolver
}

func newFixture() *fixture {
	return &fixture{
		principal: entity.Principal{UserID: uuid.New(), Email: "ana@example.com"},
		repo:      &fakeDashboardRepository{},
		resolver:  &fakeResolver{names: make(map[uuid.UUID]string)},
	}
}

func (f *fixture) add(txnType entity.TransactionType, amount int64, day time.Time, categoryID *uuid.UUID) *entity.Transaction {
	txn := entity.NewTransaction(f.principal.UserID, txnType, entity.TransactionStatusCompleted,
		decimal.NewFromInt(amount), string(txnType), day)
	txn.CategoryID = categoryID
	f.repo.transactions = append(f.repo.transactions, txn)
	return txn
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestTotalForPeriodUseCase(t *testing.T) {
	f := newFixture()
	f.add(entity.TransactionTypeIncome, 1000, date(2025, time.March, 1), nil)
	f.add(entity.TransactionTypeIncome, 500, date(2025, time.March, 31), nil)
	f.add(entity.TransactionTypeIncome, 700, date(2025, time.April, 1), nil)
	f.add(entity.TransactionTypeExpense, 50, date(2025, time.March, 10), nil)

	uc := NewTotalForPeriodUseCase(f.repo)
	ctx := context.Background()

	t.Run("bounds are inclusive", func(t *testing.T) {
		out, err := uc.Execute(ctx, TotalForPeriodInput{
			Principal: f.principal,
			Type:      entity.TransactionTypeIncome,
			StartDate: date(2025, time.March, 1),
			EndDate:   date(2025, time.March, 31),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Total.Equal(decimal.NewFromInt(1500)) {
			t.Errorf("expected 1500, got %s", out.Total)
		}
	})

	t.Run("empty period is zero", func(t *testing.T) {
		out, err := uc.Execute(ctx, TotalForPeriodInput{
			Principal: f.principal,
			Type:      entity.TransactionTypeTransfer,
			StartDate: date(2025, time.March, 1),
			EndDate:   date(2025, time.March, 31),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Total.IsZero() {
			t.Errorf("expected 0, got %s", out.Total)
		}
	})

	t.Run("other users see nothing", func(t *testing.T) {
		out, err := uc.Execute(ctx, TotalForPeriodInput{
			Principal: entity.Principal{UserID: uuid.New()},
			Type:      entity.TransactionTypeIncome,
			StartDate: date(2025, time.January, 1),
			EndDate:   date(2025, time.December, 31),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Total.IsZero() {
			t.Errorf("expected 0, got %s", out.Total)
		}
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name  string
			input TotalForPeriodInput
			kind  domainerror.Kind
		}{
			{"missing principal", TotalForPeriodInput{Type: entity.TransactionTypeIncome, StartDate: date(2025, 1, 1), EndDate: date(2025, 1, 2)}, domainerror.KindUnauthorized},
			{"bad type", TotalForPeriodInput{Principal: f.principal, Type: "gift", StartDate: date(2025, 1, 1), EndDate: date(2025, 1, 2)}, domainerror.KindValidation},
			{"missing start", TotalForPeriodInput{Principal: f.principal, Type: entity.TransactionTypeIncome, EndDate: date(2025, 1, 2)}, domainerror.KindValidation},
			{"reversed range", TotalForPeriodInput{Principal: f.principal, Type: entity.TransactionTypeIncome, StartDate: date(2025, 2, 1), EndDate: date(2025, 1, 2)}, domainerror.KindValidation},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := uc.Execute(ctx, tt.input)
				if got := domainerror.KindOf(err); got != tt.kind {
					t.Errorf("expected %s, got %s (%v)", tt.kind, got, err)
				}
			})
		}
	})

	t.Run("store failure", func(t *testing.T) {
		failing := &fakeDashboardRepository{err: errors.New("boom")}
		_, err := NewTotalForPeriodUseCase(failing).Execute(ctx, TotalForPeriodInput{
			Principal: f.principal,
			Type:      entity.TransactionTypeIncome,
			StartDate: date(2025, time.March, 1),
			EndDate:   date(2025, time.March, 31),
		})
		if domainerror.KindOf(err) != domainerror.KindUnknown {
			t.Errorf("expected unknown kind, got %v", err)
		}
	})
}

func TestSavingsForPeriodUseCase(t *testing.T) {
	tests := []struct {
		name    string
		income  int64
		expense int64
		want    int64
	}{
		{"positive", 1000, 400, 600},
		{"overspend is negative", 200, 350, -150},
		{"nothing", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if tt.income > 0 {
				f.add(entity.TransactionTypeIncome, tt.income, date(2025, time.March, 5), nil)
			}
			if tt.expense > 0 {
				f.add(entity.TransactionTypeExpense, tt.expense, date(2025, time.March, 6), nil)
			}
			// Transfers never count as income or expense.
			f.add(entity.TransactionTypeTransfer, 999, date(2025, time.March, 7), nil)

			out, err := NewSavingsForPeriodUseCase(f.repo).Execute(context.Background(), SavingsForPeriodInput{
				Principal: f.principal,
				StartDate: date(2025, time.March, 1),
				EndDate:   date(2025, time.March, 31),
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !out.Savings.Equal(decimal.NewFromInt(tt.want)) {
				t.Errorf("expected %d, got %s", tt.want, out.Savings)
			}
			if !out.Savings.Equal(out.Income.Sub(out.Expense)) {
				t.Error("savings must equal income minus expense")
			}
		})
	}
}

func TestExpensePercentageByCategoryUseCase(t *testing.T) {
	ctx := context.Background()
	food := entity.BuiltinCategoryID("food")
	housing := entity.BuiltinCategoryID("housing")
	march := ExpensePercentageByCategoryInput{StartDate: date(2025, time.March, 1), EndDate: date(2025, time.March, 31)}

	t.Run("same category aggregates into one entry", func(t *testing.T) {
		f := newFixture()
		f.add(entity.TransactionTypeExpense, 100, date(2025, time.March, 3), &food)
		f.add(entity.TransactionTypeExpense, 300, date(2025, time.March, 20), &food)

		input := march
		input.Principal = f.principal
		out, err := NewExpensePercentageByCategoryUseCase(f.repo, f.resolver).Execute(ctx, input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Categories) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(out.Categories))
		}
		entry := out.Categories[0]
		if entry.Category != "Food" || !entry.Amount.Equal(decimal.NewFromInt(400)) || entry.Percentage != 100 {
			t.Errorf("unexpected entry %+v", entry)
		}
		if out.PeriodLabel != "Mar 2025" {
			t.Errorf("expected label Mar 2025, got %q", out.PeriodLabel)
		}
	})

	t.Run("no expenses yields an empty list", func(t *testing.T) {
		f := newFixture()
		f.add(entity.TransactionTypeIncome, 100, date(2025, time.March, 3), nil)

		input := march
		input.Principal = f.principal
		out, err := NewExpensePercentageByCategoryUseCase(f.repo, f.resolver).Execute(ctx, input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Categories == nil || len(out.Categories) != 0 {
			t.Errorf("expected empty non-nil list, got %v", out.Categories)
		}
		if f.resolver.calls.Load() != 0 {
			t.Error("expected no category resolution for an empty period")
		}
	})

	t.Run("percentages add up to 100 and are sorted", func(t *testing.T) {
		f := newFixture()
		pets := uuid.New()
		f.resolver.names[pets] = "Pets"
		unknown := uuid.New()

		f.add(entity.TransactionTypeExpense, 100, date(2025, time.March, 1), &food)
		f.add(entity.TransactionTypeExpense, 100, date(2025, time.March, 2), &housing)
		f.add(entity.TransactionTypeExpense, 100, date(2025, time.March, 3), &pets)
		f.add(entity.TransactionTypeExpense, 50, date(2025, time.March, 4), nil)
		f.add(entity.TransactionTypeExpense, 50, date(2025, time.March, 5), &unknown)

		input := march
		input.Principal = f.principal
		out, err := NewExpensePercentageByCategoryUseCase(f.repo, f.resolver).Execute(ctx, input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !out.TotalExpenses.Equal(decimal.NewFromInt(400)) {
			t.Errorf("expected total 400, got %s", out.TotalExpenses)
		}
		if len(out.Categories) != 4 {
			t.Fatalf("expected 4 entries, got %+v", out.Categories)
		}

		sum := 0.0
		for i, entry := range out.Categories {
			sum += entry.Percentage
			if i > 0 && entry.Amount.GreaterThan(out.Categories[i-1].Amount) {
				t.Error("expected entries sorted by amount desc")
			}
		}
		if math.Abs(sum-100) > 0.01 {
			t.Errorf("expected percentages to sum to 100, got %f", sum)
		}

		last := out.Categories[len(out.Categories)-1]
		if last.Category != entity.UncategorizedName || !last.Amount.Equal(decimal.NewFromInt(100)) || last.CategoryID != nil {
			t.Errorf("expected missing and unknown categories to merge, got %+v", last)
		}
	})

	t.Run("card purchases count once, through their bill payment", func(t *testing.T) {
		f := newFixture()
		f.add(entity.TransactionTypeCardExpense, 300, date(2025, time.March, 2), &housing)
		payment := f.add(entity.TransactionTypeExpense, 300, date(2025, time.March, 10), nil)
		billID := uuid.New()
		payment.BillID = &billID
		f.add(entity.TransactionTypeExpense, 100, date(2025, time.March, 12), &food)
		f.add(entity.TransactionTypeIncome, 1000, date(2025, time.March, 5), nil)

		input := march
		input.Principal = f.principal
		out, err := NewExpensePercentageByCategoryUseCase(f.repo, f.resolver).Execute(ctx, input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		savings, err := NewSavingsForPeriodUseCase(f.repo).Execute(ctx, SavingsForPeriodInput{
			Principal: f.principal, StartDate: input.StartDate, EndDate: input.EndDate,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !out.TotalExpenses.Equal(decimal.NewFromInt(400)) {
			t.Errorf("expected payment and cash expense only, total %s", out.TotalExpenses)
		}
		if !out.TotalExpenses.Equal(savings.Expense) {
			t.Errorf("breakdown total %s differs from savings expense %s", out.TotalExpenses, savings.Expense)
		}
		if len(out.Categories) != 2 || out.Categories[0].Category != entity.UncategorizedName || out.Categories[1].Category != "Food" {
			t.Errorf("unexpected entries %+v", out.Categories)
		}
	})

	t.Run("thirds still sum to 100", func(t *testing.T) {
		f := newFixture()
		pets := uuid.New()
		f.resolver.names[pets] = "Pets"
		f.add(entity.TransactionTypeExpense, 1, date(2025, time.March, 1), &food)
		f.add(entity.TransactionTypeExpense, 1, date(2025, time.March, 2), &housing)
		f.add(entity.TransactionTypeExpense, 1, date(2025, time.March, 3), &pets)

		input := march
		input.Principal = f.principal
		out, err := NewExpensePercentageByCategoryUseCase(f.repo, f.resolver).Execute(ctx, input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		sum := 0.0
		for _, entry := range out.Categories {
			sum += entry.Percentage
		}
		if math.Abs(sum-100) > 0.01 {
			t.Errorf("expected 100, got %f", sum)
		}
	})

	t.Run("requires a principal", func(t *testing.T) {
		f := newFixture()
		_, err := NewExpensePercentageByCategoryUseCase(f.repo, f.resolver).Execute(ctx, march)
		if domainerror.KindOf(err) != domainerror.KindUnauthorized {
			t.Errorf("expected unauthorized, got %v", err)
		}
	})
}

func TestLastNTransactionsUseCase(t *testing.T) {
	f := newFixture()
	food := entity.BuiltinCategoryID("food")
	for day := 1; day <= 5; day++ {
		f.add(entity.TransactionTypeExpense, int64(day), date(2025, time.March, day), &food)
	}
	f.add(entity.TransactionTypeIncome, 10, date(2025, time.March, 6), nil)

	uc := NewLastNTransactionsUseCase(f.repo, f.resolver)

	out, err := uc.Execute(context.Background(), LastNTransactionsInput{Principal: f.principal})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Transactions) != DefaultRecentTransactions {
		t.Fatalf("expected %d transactions, got %d", DefaultRecentTransactions, len(out.Transactions))
	}
	if !out.Transactions[0].Date.Equal(date(2025, time.March, 6)) {
		t.Errorf("expected newest first, got %s", out.Transactions[0].Date)
	}
	if out.Transactions[0].CategoryName != entity.UncategorizedName {
		t.Errorf("expected Uncategorized, got %q", out.Transactions[0].CategoryName)
	}
	if out.Transactions[1].CategoryName != "Food" {
		t.Errorf("expected Food, got %q", out.Transactions[1].CategoryName)
	}
	if !out.Transactions[1].SignedAmount.IsNegative() {
		t.Error("expected expenses to carry a negative signed amount")
	}
	if f.resolver.calls.Load() != 1 {
		t.Errorf("expected a single batch resolution, got %d", f.resolver.calls.Load())
	}

	out, err = uc.Execute(context.Background(), LastNTransactionsInput{Principal: f.principal, N: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Transactions) != 6 {
		t.Errorf("expected all 6 transactions, got %d", len(out.Transactions))
	}
}

func TestComputeQuotaUsage(t *testing.T) {
	tests := []struct {
		name      string
		current   int64
		available int64
		want      float64
	}{
		{"half", 50, 100, 50},
		{"rounded", 1, 3, 33.33},
		{"full", 5, 5, 100},
		{"over", 6, 5, 120},
		{"unlimited", 12345, entity.Unlimited, 0},
		{"unlimited and empty", 0, entity.Unlimited, 0},
		{"zero quota unused", 0, 0, 0},
		{"zero quota used", 1, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeQuotaUsage(tt.current, tt.available)
			if math.IsNaN(got.Usage) || got.Usage != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got.Usage)
			}
			if got.Current != tt.current || got.Available != tt.available {
				t.Errorf("expected inputs echoed, got %+v", got)
			}
		})
	}
}

func TestBalanceOverviewUseCase(t *testing.T) {
	f := newFixture()
	f.repo.accounts = []*entity.BankInfo{
		entity.NewBankInfo(f.principal.UserID, "Main", entity.BankAccountChecking, decimal.RequireFromString("1200.50"), "Bank"),
		entity.NewBankInfo(f.principal.UserID, "Savings", entity.BankAccountSavings, decimal.RequireFromString("-200.25"), "Bank"),
		entity.NewBankInfo(uuid.New(), "Foreign", entity.BankAccountChecking, decimal.NewFromInt(99999), "Bank"),
	}

	out, err := NewBalanceOverviewUseCase(f.repo).Execute(context.Background(), BalanceOverviewInput{Principal: f.principal})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Accounts) != 2 {
		t.Errorf("expected 2 accounts, got %d", len(out.Accounts))
	}
	if !out.Total.Equal(decimal.RequireFromString("1000.25")) {
		t.Errorf("expected 1000.25, got %s", out.Total)
	}
}

func TestMonthlySeriesUseCase(t *testing.T) {
	f := newFixture()
	f.add(entity.TransactionTypeIncome, 1000, date(2025, time.January, 5), nil)
	f.add(entity.TransactionTypeExpense, 300, date(2025, time.January, 20), nil)
	f.add(entity.TransactionTypeExpense, 50, date(2025, time.March, 31), nil)
	f.add(entity.TransactionTypeIncome, 777, date(2024, time.December, 31), nil)

	out, err := NewMonthlySeriesUseCase(f.repo).Execute(context.Background(), MonthlySeriesInput{Principal: f.principal, Year: 2025})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Months) != 12 {
		t.Fatalf("expected 12 months, got %d", len(out.Months))
	}

	jan := out.Months[0]
	if jan.Label != "Jan 2025" || !jan.Savings.Equal(decimal.NewFromInt(700)) {
		t.Errorf("unexpected January %+v", jan)
	}
	if mar := out.Months[2]; !mar.Savings.Equal(decimal.NewFromInt(-50)) || mar.Label != "Mar 2025" {
		t.Errorf("unexpected March %+v", mar)
	}
	if feb := out.Months[1]; !feb.Income.IsZero() || feb.Label != "Fev 2025" {
		t.Errorf("unexpected February %+v", feb)
	}
}

func TestOverviewUseCase(t *testing.T) {
	f := newFixture()
	food := entity.BuiltinCategoryID("food")
	f.add(entity.TransactionTypeIncome, 1000, date(2025, time.March, 1), nil)
	f.add(entity.TransactionTypeExpense, 250, date(2025, time.March, 2), &food)
	f.repo.accounts = []*entity.BankInfo{
		entity.NewBankInfo(f.principal.UserID, "Main", entity.BankAccountChecking, decimal.NewFromInt(750), "Bank"),
	}

	out, err := NewOverviewUseCase(f.repo, f.resolver).Execute(context.Background(), OverviewInput{
		Principal: f.principal,
		StartDate: date(2025, time.March, 1),
		EndDate:   date(2025, time.March, 31),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Savings.Savings.Equal(decimal.NewFromInt(750)) {
		t.Errorf("unexpected savings %s", out.Savings.Savings)
	}
	if len(out.Categories.Categories) != 1 {
		t.Errorf("unexpected categories %+v", out.Categories.Categories)
	}
	if len(out.Recent.Transactions) != 2 {
		t.Errorf("unexpected recent %+v", out.Recent.Transactions)
	}
	if !out.Balances.Total.Equal(decimal.NewFromInt(750)) {
		t.Errorf("unexpected balance %s", out.Balances.Total)
	}
}

func TestGetDataRangeUseCase(t *testing.T) {
	f := newFixture()
	out, err := NewGetDataRangeUseCase(f.repo).Execute(context.Background(), GetDataRangeInput{Principal: f.principal})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.HasData {
		t.Error("expected no data")
	}

	f.add(entity.TransactionTypeIncome, 1, date(2024, time.May, 1), nil)
	f.add(entity.TransactionTypeIncome, 1, date(2025, time.June, 1), nil)
	out, err = NewGetDataRangeUseCase(f.repo).Execute(context.Background(), GetDataRangeInput{Principal: f.principal})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.HasData || out.TotalTransactions != 2 || !out.OldestDate.Equal(date(2024, time.May, 1)) {
		t.Errorf("unexpected range %+v", out)
	}
}
