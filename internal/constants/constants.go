package constants

type (
	EventType           string
	EventStatus         string
	EventCategory       string
	QualificationStatus string
	CurrencyStatus      string
	RequirementPeriod   string
	APIStatus           string
	CachePrefix         string
)

const (
	EventTypeB2     EventType = "b-2"
	EventTypeOB2    EventType = "ob2"
	EventTypeOB3    EventType = "ob3"
	EventTypeLocal  EventType = "local"
	EventTypeMaddog EventType = "maddog"
	EventTypeWST    EventType = "wst"

	EventStatusScheduled EventStatus = "scheduled"
	EventStatusEffective EventStatus = "effective"
	EventStatusCancelled EventStatus = "cancelled"

	CategoryFlight    EventCategory = "flight"
	CategorySimulator EventCategory = "simulator"
	CategoryBoth      EventCategory = "both"

	StatusCMR          QualificationStatus = "cmr"
	StatusBMC          QualificationStatus = "bmc"
	StatusNotQualified QualificationStatus = "not_qualified"

	CurrencyCurrent  CurrencyStatus = "current"
	CurrencyExpiring CurrencyStatus = "expiring"
	CurrencyExpired  CurrencyStatus = "expired"

	PeriodMonthly   RequirementPeriod = "monthly"
	PeriodQuarterly RequirementPeriod = "quarterly"

	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixRequirements CachePrefix = "TRAINING_REQ_"
	CachePrefixRoster       CachePrefix = "ROSTER_"
)

// CurrencyExpiringWindowDays is the fixed threshold used when deriving a
// currency record's status from its expiration date.
const CurrencyExpiringWindowDays = 30

// DefaultCurrencyDays is the lookahead used by the assignment engine when the
// constraints omit currency_days.
const DefaultCurrencyDays = 30

// QuarterLookbackDays is the fixed window for quarterly requirements. It is
// not calendar-quarter aligned.
const QuarterLookbackDays = 90

// ValidEventType reports whether t is one of the known event types.
func ValidEventType(t EventType) bool {
	switch t {
	case EventTypeB2, EventTypeOB2, EventTypeOB3, EventTypeLocal, EventTypeMaddog, EventTypeWST:
		return true
	}
	return false
}

// ValidEventStatus reports whether s is a known lifecycle status.
func ValidEventStatus(s EventStatus) bool {
	switch s {
	case EventStatusScheduled, EventStatusEffective, EventStatusCancelled:
		return true
	}
	return false
}

// CategoryOf maps an event type to its readiness category. WST events run in
// the weapon system trainer; everything else is a flight.
func CategoryOf(t EventType) EventCategory {
	if t == EventTypeWST {
		return CategorySimulator
	}
	return CategoryFlight
}
