package billing

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
)

// QuotaGuard implements adapter.QuotaChecker against the stored plan of the user.
type QuotaGuard struct {
	userRepo  adapter.UserRepository
	usageRepo adapter.UsageRepository
	plans     *PlanCatalog
	locks     *userLocks
}

// NewQuotaGuard creates a new QuotaGuard instance.
func NewQuotaGuard(
	userRepo adapter.UserRepository,
	usageRepo adapter.UsageRepository,
	plans *PlanCatalog,
) *QuotaGuard {
	return &QuotaGuard{
		userRepo:  userRepo,
		usageRepo: usageRepo,
		plans:     plans,
		locks:     newUserLocks(),
	}
}

// PlanOf returns the plan the user is subscribed to.
func (g *QuotaGuard) PlanOf(ctx context.Context, userID uuid.UUID) (entity.PlanName, error) {
	user, err := g.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to find user: %w", err)
	}
	return g.plans.PlanForPrice(user.StripePriceID), nil
}

// Reserve implements adapter.QuotaChecker. Reservations of one user are
// serialized within the process, so the count cannot go stale before the
// caller's insert lands.
func (g *QuotaGuard) Reserve(ctx context.Context, userID uuid.UUID, resource entity.QuotaResource, adding int64) (func(), error) {
	release := g.locks.lock(userID)
	if err := g.check(ctx, userID, resource, adding); err != nil {
		release()
		return nil, err
	}
	return release, nil
}

func (g *QuotaGuard) check(ctx context.Context, userID uuid.UUID, resource entity.QuotaResource, adding int64) error {
	plan, err := g.PlanOf(ctx, userID)
	if err != nil {
		return err
	}

	limit := entity.QuotaFor(plan).Limit(resource)
	if limit == entity.Unlimited {
		return nil
	}

	current, err := g.usageRepo.CountOwned(ctx, userID, resource)
	if err != nil {
		return fmt.Errorf("failed to count %s: %w", resource, err)
	}

	if current+adding > limit {
		return domainerror.NewBillingError(
			domainerror.ErrCodeQuotaExceeded,
			fmt.Sprintf("the %s plan allows up to %d %s", plan, limit, strings.ReplaceAll(string(resource), "_", " ")),
			domainerror.ErrQuotaExceeded,
		)
	}
	return nil
}

// userLocks hands out one mutex per user, dropped once nobody holds it.
type userLocks struct {
	mu   sync.Mutex
	held map[uuid.UUID]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

func newUserLocks() *userLocks {
	return &userLocks{held: make(map[uuid.UUID]*userLock)}
}

func (l *userLocks) lock(userID uuid.UUID) func() {
	l.mu.Lock()
	ul, ok := l.held[userID]
	if !ok {
		ul = &userLock{}
		l.held[userID] = ul
	}
	ul.refs++
	l.mu.Unlock()

	ul.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			ul.mu.Unlock()
			l.mu.Lock()
			ul.refs--
			if ul.refs == 0 {
				delete(l.held, userID)
			}
			l.mu.Unlock()
		})
	}
}
