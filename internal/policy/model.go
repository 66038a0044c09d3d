// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package policy

// Special predefined application identifiers (spec §3 "Special
// identifiers"). An application whose policy value is one of these as a
// *string* means "inherit that predefined policy" — the store records only
// the flag, not a copy of the target's groups, nicknames, etc.
const (
	DefaultID       = "default"
	PreDataConsentID = "pre_DataConsent"
	DeviceID        = "device"
)

// Document is the full in-memory policy table, as materialized by
// GenerateSnapshot and consumed by Save. Every top-level section is a
// [Field] so that a Gather call that failed to prepare its select can leave
// its section Unset rather than forcing a zero value on it.
type Document struct {
	ModuleMeta                Field[ModuleMeta]
	ModuleConfig              Field[ModuleConfig]
	FunctionalGroupings       Field[map[string]FunctionalGroup]
	ApplicationPolicies       Field[map[string]ApplicationPolicy]
	Device                    Field[DevicePolicy]
	ConsumerFriendlyMessages  Field[ConsumerFriendlyMessages]
	DeviceData                Field[DeviceData]
	UsageAndErrorCounts       Field[UsageAndErrorCounts]
}

// ModuleMeta is the singleton row of module-level counters and flags.
type ModuleMeta struct {
	PTExchangedAtOdometerX       int
	PTExchangedXDaysAfterEpoch   int
	IgnitionCyclesSinceLastExchange int
	FlagUpdateRequired           bool
	DBVersion                    int64
}

// ModuleConfig is the singleton row of update-cadence thresholds, retry
// schedules, notification limits and update-delivery endpoints.
type ModuleConfig struct {
	PreloadedPT                  bool
	ExchangeAfterXIgnitionCycles int
	ExchangeAfterXKilometers     int
	ExchangeAfterXDays           int
	TimeoutAfterXSeconds         int
	VehicleMake                  Field[string]
	VehicleModel                 Field[string]
	VehicleYear                  Field[string]
	PreloadedDate                Field[string]
	Certificate                  Field[string]

	// SecondsBetweenRetries is the ordered retry backoff schedule.
	SecondsBetweenRetries []int

	// NotificationsPerMinuteByPriority maps a priority token to the max
	// notifications per minute allowed at that priority.
	NotificationsPerMinuteByPriority map[Priority]int

	// Endpoints maps service_type -> app_id -> ordered sequence of urls.
	// The app_id "default" is the fallback entry used by
	// GetLockScreenIconUrl and any app without a specific override.
	Endpoints map[string]map[string][]string
}

// FunctionalGroup is a named bundle of rpc+hmi-level+parameter permissions.
// ID is a deterministic surrogate key: abs(Djb2Hash(Name)), stable across a
// drop+reinsert of the same name (spec §3/§9).
type FunctionalGroup struct {
	ID                int64
	Name              string
	UserConsentPrompt Field[string]
	// Rpcs is Null when a group has no rpcs at all (explicit null per
	// spec §4.4), keyed by rpc name.
	Rpcs Field[map[string]RpcPermission]
}

// RpcPermission is the set of hmi levels and parameters permitted for one
// rpc within a functional group. Both slices are insertion-ordered and
// value-unique per spec §4.4.
type RpcPermission struct {
	HmiLevels  []HmiLevel
	Parameters []Parameter
}

// ApplicationPolicy is either a structured record, a sentinel string
// referencing a predefined policy ("default"/"pre_DataConsent"), or null
// (revoked). See [ApplicationPolicyValue].
type ApplicationPolicy struct {
	AppID string
	Value ApplicationPolicyValue
}

// ApplicationPolicyValue is a tagged variant (spec §9 "Predefined-app
// polymorphism") modeling the three shapes an application's policy can take.
// Exactly one of IsRevoked, InheritsFrom!="" or Params.IsSet() holds.
type ApplicationPolicyValue struct {
	// IsRevoked is true when the stored value is null (spec: "revoked").
	IsRevoked bool

	// InheritsFrom is DefaultID or PreDataConsentID when this app's
	// policy is a sentinel string pointing at a predefined policy. Empty
	// otherwise.
	InheritsFrom string

	// Params holds the structured policy when this app is neither
	// revoked nor inheriting.
	Params Field[ApplicationParams]
}

// ApplicationParams is the structured body of a non-predefined application
// policy.
type ApplicationParams struct {
	Priority           Priority
	MemoryKB           int
	HeartBeatTimeoutMs int64
	Certificate        Field[string]
	Groups             []string
	Nicknames          []string
	AppHMITypes        []AppHMIType
	RequestTypes       []RequestType
	IsDefault          bool
	IsPredata          bool
	IsRevoked          bool
}

// DevicePolicy is the singleton device-level priority record.
type DevicePolicy struct {
	Priority Priority
}

// ConsumerFriendlyMessages holds the user-facing message catalog version
// and, optionally, the per-type/per-language message bodies. Messages is
// Unset whenever the source document did not carry a messages section at
// all — per spec §4.4 that must leave stored message strings untouched on
// Save ("preserve-on-absent").
type ConsumerFriendlyMessages struct {
	Version  string
	Messages Field[map[string]MessageType]
}

// MessageType groups a consumer-friendly message's per-language bodies.
type MessageType struct {
	Languages map[string]MessageString
}

// MessageString is a single localized message body. Per spec §4.4,
// SaveMessageString is a deliberate no-op (message bodies live elsewhere),
// so only the structural shape round-trips; Body is carried for API
// completeness but is never persisted.
type MessageString struct {
	Body string
}

// DeviceData is the set of device identifiers the head unit has paired
// with.
type DeviceData struct {
	DeviceIDs map[string]struct{}
}

// UsageAndErrorCounts tracks per-application usage/error counters.
type UsageAndErrorCounts struct {
	AppLevel map[string]AppLevel
}

// AppLevel is one application's usage/error counters.
type AppLevel struct {
	CountOfTLSErrors int
	MinutesInHMIFull int
	MinutesInHMILimited int
	MinutesInHMIBackground int
	CountOfUserSelections int
	CountOfRejectedRPCCalls int
	CountOfRPCsSentInHMINone int
	CountOfRemovalsMisbehaving int
	CountOfRunAttemptsWhileRevoked int
}
