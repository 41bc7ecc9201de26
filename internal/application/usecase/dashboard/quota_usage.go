package dashboard

import (
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/moneyflow/internal/domain/entity"
)

// QuotaUsage represents how much of a plan quota is in use.
// Available is entity.Unlimited for unlimited plans.
type QuotaUsage struct {
	Current   int64   `json:"current"`
	Available int64   `json:"available"`
	Usage     float64 `json:"usage"`
}

// ComputeQuotaUsage returns current/available as a percentage rounded to 2 dp.
// Unlimited quotas report 0; a zero quota reports 100 once anything is used.
func ComputeQuotaUsage(current, available int64) QuotaUsage {
	usage := QuotaUsage{Current: current, Available: available}

	switch {
	case available == entity.Unlimited:
		usage.Usage = 0
	case available <= 0:
		if current > 0 {
			usage.Usage = 100
		}
	default:
		pct := decimal.NewFromInt(current).Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(available))
		usage.Usage, _ = pct.Round(2).Float64()
	}

	return usage
}
