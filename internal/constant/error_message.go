package constant

// ErrorMessages maps business codes to caller-facing messages.
var ErrorMessages = map[int]string{
	CodeSuccess:       "success",
	CodeSystemError:   "system error",
	CodeDatabaseError: "database error",
	CodeBadRequest:    "bad request",

	CodeDealNotFound:     "deal not found",
	CodeDealLocked:       "deal financials are locked while payments are in flight",
	CodeDealAmountError:  "deal amount invalid",
	CodePaymentCountBad:  "number of payments invalid",
	CodeDealHasPayments:  "deal already has payments",
	CodeDealNotDeletable: "deals with payments cannot be deleted",

	CodeDuplicateBroker:   "broker already on commission splits",
	CodeBrokerNotFound:    "broker not on commission splits",
	CodeInvalidPercentage: "percentage invalid",
	CodeHasPaidPayments:   "broker has paid payment splits",
	CodePoolInvalid:       "unknown fee pool",

	CodePaymentNotFound:   "payment not found",
	CodeInvalidState:      "invalid payment state for this operation",
	CodePaymentSynced:     "payment already synced to accounting",
	CodePaymentNotDraft:   "payment is not in draft",
	CodeSplitOutOfBalance: "payment splits out of balance",

	CodeSplitNotFound:   "payment split not found",
	CodeSplitLocked:     "payment split is locked",
	CodeOverrideInvalid: "override requires positive amount and reason",
	CodeVersionConflict: "record was modified concurrently, retry",

	CodeExternalSync: "accounting sync failed",
}
