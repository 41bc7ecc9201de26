package entity

// PlanName identifies a subscription plan.
type PlanName string

const (
	PlanFree  PlanName = "free"
	PlanBasic PlanName = "basic"
	PlanPro   PlanName = "pro"
)

// Unlimited marks a quota without a cap.
const Unlimited int64 = -1

// QuotaResource is an entity type counted against a plan.
type QuotaResource string

const (
	QuotaTransactions QuotaResource = "transactions"
	QuotaBankAccounts QuotaResource = "bank_accounts"
	QuotaCards        QuotaResource = "cards"
	QuotaCategories   QuotaResource = "categories"
)

// QuotaResources lists every counted resource in display order.
var QuotaResources = []QuotaResource{QuotaTransactions, QuotaBankAccounts, QuotaCards, QuotaCategories}

// Quota holds the caps of a plan.
type Quota struct {
	Transactions int64
	BankAccounts int64
	Cards        int64
	Categories   int64
}

// Limit returns the cap for resource.
func (q Quota) Limit(resource QuotaResource) int64 {
	switch resource {
	case QuotaTransactions:
		return q.Transactions
	case QuotaBankAccounts:
		return q.BankAccounts
	case QuotaCards:
		return q.Cards
	case QuotaCategories:
		return q.Categories
	default:
		return 0
	}
}

// Allows reports whether owning current+1 entities stays within the cap.
func (q Quota) Allows(resource QuotaResource, current int64) bool {
	limit := q.Limit(resource)
	return limit == Unlimited || current < limit
}

var planQuotas = map[PlanName]Quota{
	PlanFree:  {Transactions: 100, BankAccounts: 2, Cards: 1, Categories: 5},
	PlanBasic: {Transactions: 1000, BankAccounts: 5, Cards: 5, Categories: 20},
	PlanPro:   {Transactions: Unlimited, BankAccounts: Unlimited, Cards: Unlimited, Categories: Unlimited},
}

// QuotaFor returns the quota of plan. Unknown plans get the free quota.
func QuotaFor(plan PlanName) Quota {
	if q, ok := planQuotas[plan]; ok {
		return q
	}
	return planQuotas[PlanFree]
}
