package constant

// System codes (0 / 1xxx)
const (
	CodeSuccess       = 0
	CodeSystemError   = 1000
	CodeDatabaseError = 1001
	CodeBadRequest    = 1002
)

// Deal codes (30xx)
const (
	CodeDealNotFound     = 3000 // deal does not exist
	CodeDealLocked       = 3001 // deal financials cannot change while payments are in flight
	CodeDealAmountError  = 3002 // fee / pool base amounts invalid
	CodePaymentCountBad  = 3003 // number of payments must be >= 1
	CodeDealHasPayments  = 3004 // deal already has scheduled payments
	CodeDealNotDeletable = 3005 // deals with payments are never deleted
)

// Commission split codes (31xx)
const (
	CodeDuplicateBroker   = 3100 // broker already holds a commission split on this deal
	CodeBrokerNotFound    = 3101 // broker has no commission split on this deal
	CodeInvalidPercentage = 3102 // percentage not numeric
	CodeHasPaidPayments   = 3103 // broker has paid payment splits, removal rejected
	CodePoolInvalid       = 3104 // pool must be origination, site or deal
)

// Payment lifecycle codes (32xx)
const (
	CodePaymentNotFound   = 3200 // payment does not exist
	CodeInvalidState      = 3201 // illegal lifecycle transition
	CodePaymentSynced     = 3202 // payment already synced to accounting, immutable
	CodePaymentNotDraft   = 3203 // operation requires a draft payment
	CodeSplitOutOfBalance = 3204 // split totals do not match the distributable amount
)

// Payment split codes (33xx)
const (
	CodeSplitNotFound   = 3300 // payment split does not exist
	CodeSplitLocked     = 3301 // split is locked or its payment is disbursed
	CodeOverrideInvalid = 3302 // override needs a positive amount and a reason
	CodeVersionConflict = 3303 // row changed underneath the caller, retry
)

// External collaborator codes (34xx)
const (
	CodeExternalSync = 3400 // accounting system call failed, payment stays approved
)
