package domain

// Intent is the classified purpose of an inbound chat message.
type Intent string

const (
	IntentAdd     Intent = "ADD"
	IntentUse     Intent = "USE"
	IntentSearch  Intent = "SEARCH"
	IntentListAll Intent = "LIST_ALL"
	IntentUnknown Intent = "UNKNOWN"
)

func (i Intent) String() string { return string(i) }

func (i Intent) IsValid() bool {
	switch i {
	case IntentAdd, IntentUse, IntentSearch, IntentListAll, IntentUnknown:
		return true
	}
	return false
}

// ActionKind identifies the kind of action recorded in the activity log.
type ActionKind string

const (
	ActionAdded    ActionKind = "added"
	ActionUsed     ActionKind = "used"
	ActionSearched ActionKind = "searched"
	ActionDeleted  ActionKind = "deleted"
)

func (a ActionKind) String() string { return string(a) }

func (a ActionKind) IsValid() bool {
	switch a {
	case ActionAdded, ActionUsed, ActionSearched, ActionDeleted:
		return true
	}
	return false
}

// WarningTag annotates an operation result with a stock or expiry warning.
type WarningTag string

const (
	WarningLowStock     WarningTag = "LOW_STOCK"
	WarningExpiringSoon WarningTag = "EXPIRING_SOON"
	WarningExpired      WarningTag = "EXPIRED"
)

func (w WarningTag) String() string { return string(w) }

// ResultStatus is the outcome category of a handled message or operation.
type ResultStatus string

const (
	StatusSuccess            ResultStatus = "SUCCESS"
	StatusNeedsClarification ResultStatus = "NEEDS_CLARIFICATION"
	StatusError              ResultStatus = "ERROR"
)

func (s ResultStatus) String() string { return string(s) }

// ErrorKind discriminates failure categories in a structured result so the
// caller can decide between correcting input, suggesting alternatives, or
// retrying.
type ErrorKind string

const (
	ErrorKindNone              ErrorKind = ""
	ErrorKindValidation        ErrorKind = "VALIDATION"
	ErrorKindNotFound          ErrorKind = "NOT_FOUND"
	ErrorKindInsufficientStock ErrorKind = "INSUFFICIENT_STOCK"
	ErrorKindStoreUnavailable  ErrorKind = "STORE_UNAVAILABLE"
	ErrorKindConflict          ErrorKind = "CONFLICT"
	ErrorKindInternal          ErrorKind = "INTERNAL"
)

func (k ErrorKind) String() string { return string(k) }
