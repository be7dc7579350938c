package service

import (
	"time"

	"github.com/jinzhu/copier"
	"golang.org/x/sync/singleflight"

	"cre-commission-api/internal/constant"
	"cre-commission-api/internal/dao"
	"cre-commission-api/internal/dto"
	"cre-commission-api/internal/idgen"
	"cre-commission-api/internal/ledger"
	dealmodel "cre-commission-api/internal/model/deal"
	"cre-commission-api/internal/store"
)

// CommissionService maintains per-broker percentage allocations across a
// deal's three fee pools. The 100%-sum invariant is checked at read time, not
// on write: percentages are edited incrementally across several splits.
type CommissionService struct {
	st        store.Store
	sync      *SyncService
	dealGroup singleflight.Group
}

func NewCommissionService() *CommissionService {
	st := dao.NewDao()
	return &CommissionService{st: st, sync: NewSyncServiceWith(st)}
}

func NewCommissionServiceWith(st store.Store) *CommissionService {
	return &CommissionService{st: st, sync: NewSyncServiceWith(st)}
}

// getDeal loads a deal through the cache, collapsing concurrent loads.
func (s *CommissionService) getDeal(dealID uint64) (*dealmodel.Deal, error) {
	var cached dealmodel.Deal
	if cacheGet(dealCacheKey(dealID), &cached) {
		return &cached, nil
	}
	v, err, _ := s.dealGroup.Do(dealCacheKey(dealID), func() (interface{}, error) {
		d, err := s.st.GetDeal(dealID)
		if err != nil {
			return nil, err
		}
		if d != nil {
			cacheSet(dealCacheKey(dealID), d, dealCacheTTL)
		}
		return d, nil
	})
	if err != nil {
		return nil, err
	}
	d, _ := v.(*dealmodel.Deal)
	if d == nil {
		return nil, constant.NewErrorf(constant.CodeDealNotFound, "deal %d", dealID)
	}
	return d, nil
}

// AddBroker creates a zero-percentage commission split for the broker.
func (s *CommissionService) AddBroker(cmd dto.AddBrokerCmd) (dto.SplitEditResult, error) {
	var res dto.SplitEditResult

	deal, err := s.getDeal(cmd.DealID)
	if err != nil {
		return res, err
	}

	existing, err := s.st.GetCommissionSplit(deal.DealID, cmd.BrokerID)
	if err != nil {
		return res, err
	}
	if existing != nil {
		return res, constant.NewErrorf(constant.CodeDuplicateBroker, "broker %d on deal %d", cmd.BrokerID, cmd.DealID)
	}

	now := time.Now()
	cs := &dealmodel.CommissionSplit{
		SplitID:   idgen.New(),
		DealID:    deal.DealID,
		BrokerID:  cmd.BrokerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.st.InsertCommissionSplit(cs); err != nil {
		return res, err
	}
	invalidateDeal(deal.DealID)

	return s.editResult(deal.DealID, cs, cmd.ActorID)
}

// RemoveBroker deletes the broker's commission split and its unpaid, unlocked
// payment splits. Rejected once any of the broker's payment splits is paid.
func (s *CommissionService) RemoveBroker(cmd dto.RemoveBrokerCmd) (dto.SyncSummary, error) {
	var sum dto.SyncSummary

	cs, err := s.st.GetCommissionSplit(cmd.DealID, cmd.BrokerID)
	if err != nil {
		return sum, err
	}
	if cs == nil {
		return sum, constant.NewErrorf(constant.CodeBrokerNotFound, "broker %d on deal %d", cmd.BrokerID, cmd.DealID)
	}

	brokerSplits, err := s.st.ListBrokerSplits(cmd.DealID, cmd.BrokerID)
	if err != nil {
		return sum, err
	}
	for _, ps := range brokerSplits {
		if ps.Paid {
			return sum, constant.NewErrorf(constant.CodeHasPaidPayments,
				"broker %d has paid split %d on payment %d", cmd.BrokerID, ps.PSplitID, ps.PaymentID)
		}
	}

	err = s.st.Tx(func(tx store.Store) error {
		if err := tx.DeleteCommissionSplit(cs.SplitID); err != nil {
			return err
		}
		return tx.DeleteUnpaidBrokerSplits(cmd.DealID, cmd.BrokerID)
	})
	if err != nil {
		return sum, err
	}
	invalidateDeal(cmd.DealID)

	return s.sync.AutoSyncPaymentSplits(cmd.DealID, cmd.ActorID)
}

// SetSplitPercentage updates one pool percentage and rederives the split's
// dollar amounts. Imbalanced pool sums come back as warnings, never errors.
func (s *CommissionService) SetSplitPercentage(cmd dto.SetSplitPercentageCmd) (dto.SplitEditResult, error) {
	var res dto.SplitEditResult

	pool, err := ledger.ParsePool(cmd.Pool)
	if err != nil {
		return res, err
	}
	pct, err := ledger.ParsePercent(cmd.Percent)
	if err != nil {
		return res, err
	}

	deal, err := s.getDeal(cmd.DealID)
	if err != nil {
		return res, err
	}
	cs, err := s.st.GetCommissionSplit(cmd.DealID, cmd.BrokerID)
	if err != nil {
		return res, err
	}
	if cs == nil {
		return res, constant.NewErrorf(constant.CodeBrokerNotFound, "broker %d on deal %d", cmd.BrokerID, cmd.DealID)
	}

	oldTotal := cs.Total
	switch pool {
	case ledger.PoolOrigination:
		cs.OriginationPct = pct
	case ledger.PoolSite:
		cs.SitePct = pct
	case ledger.PoolDeal:
		cs.DealPct = pct
	}
	ledger.Recompute(deal, cs)

	if err := s.st.UpdateCommissionSplit(cs); err != nil {
		return res, err
	}
	if err := s.st.AppendAudit(&dealmodel.SplitAuditLog{
		ID:         idgen.New(),
		PaymentID:  0,
		DealID:     cs.DealID,
		ChangeType: dealmodel.ChangeCommissionChange,
		OldTotal:   oldTotal,
		NewTotal:   cs.Total,
		Reason:     string(pool) + " set to " + pct.String() + "%",
		ChangedBy:  cmd.ActorID,
		ChangedAt:  time.Now(),
	}); err != nil {
		return res, err
	}
	invalidateDeal(cmd.DealID)

	return s.editResult(cmd.DealID, cs, cmd.ActorID)
}

// ValidateTotals reports per-pool percentage sums. Pure read, cached briefly.
func (s *CommissionService) ValidateTotals(dealID uint64) (ledger.TotalsReport, error) {
	var cached ledger.TotalsReport
	if cacheGet(totalsCacheKey(dealID), &cached) {
		return cached, nil
	}

	splits, err := s.st.ListCommissionSplits(dealID)
	if err != nil {
		return ledger.TotalsReport{}, err
	}
	report := ledger.ValidateTotals(dealID, splits)
	cacheSet(totalsCacheKey(dealID), report, totalsCacheTTL)
	return report, nil
}

// editResult runs the follow-up sync and packages the split, warnings and
// sync summary for the caller.
func (s *CommissionService) editResult(dealID uint64, cs *dealmodel.CommissionSplit, actorID uint64) (dto.SplitEditResult, error) {
	var res dto.SplitEditResult
	_ = copier.Copy(&res.Split, cs)

	splits, err := s.st.ListCommissionSplits(dealID)
	if err != nil {
		return res, err
	}
	res.Warnings = ledger.ValidateTotals(dealID, splits).Warnings()

	sum, err := s.sync.AutoSyncPaymentSplits(dealID, actorID)
	if err != nil {
		return res, err
	}
	res.Sync = sum
	return res, nil
}
