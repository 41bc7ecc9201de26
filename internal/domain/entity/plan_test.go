package entity

import "testing"

func TestQuotaFor(t *testing.T) {
	if got := QuotaFor(PlanName("enterprise")); got != QuotaFor(PlanFree) {
		t.Errorf("expected unknown plan to fall back to free, got %+v", got)
	}

	pro := QuotaFor(PlanPro)
	for _, resource := range QuotaResources {
		if pro.Limit(resource) != Unlimited {
			t.Errorf("expected pro %s to be unlimited", resource)
		}
	}
}

func TestQuota_Allows(t *testing.T) {
	free := QuotaFor(PlanFree)

	if !free.Allows(QuotaCards, 0) {
		t.Error("expected first card to be allowed")
	}
	if free.Allows(QuotaCards, free.Cards) {
		t.Error("expected card beyond the cap to be rejected")
	}
	if !QuotaFor(PlanPro).Allows(QuotaTransactions, 1_000_000) {
		t.Error("expected unlimited plan to allow any count")
	}
}
