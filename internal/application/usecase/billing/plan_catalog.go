// Package billing contains subscription and quota use cases.
package billing

import (
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
)

// PlanCatalog maps billing provider price ids to plans.
type PlanCatalog struct {
	planByPrice map[string]entity.PlanName
	priceByPlan map[entity.PlanName]string
}

// NewPlanCatalog creates a catalog from the configured price ids. Empty ids are skipped.
func NewPlanCatalog(basicPriceID, proPriceID string) *PlanCatalog {
	c := &PlanCatalog{
		planByPrice: make(map[string]entity.PlanName),
		priceByPlan: make(map[entity.PlanName]string),
	}
	c.add(entity.PlanBasic, basicPriceID)
	c.add(entity.PlanPro, proPriceID)
	return c
}

func (c *PlanCatalog) add(plan entity.PlanName, priceID string) {
	if priceID == "" {
		return
	}
	c.planByPrice[priceID] = plan
	c.priceByPlan[plan] = priceID
}

// PlanForPrice returns the plan of a price id. Empty or unknown prices are free.
func (c *PlanCatalog) PlanForPrice(priceID string) entity.PlanName {
	if plan, ok := c.planByPrice[priceID]; ok {
		return plan
	}
	return entity.PlanFree
}

// PriceForPlan returns the price id that subscribes to plan.
func (c *PlanCatalog) PriceForPlan(plan entity.PlanName) (string, bool) {
	price, ok := c.priceByPlan[plan]
	return price, ok
}

// IsKnownPrice reports whether priceID belongs to a paid plan.
func (c *PlanCatalog) IsKnownPrice(priceID string) bool {
	_, ok := c.planByPrice[priceID]
	return ok
}
