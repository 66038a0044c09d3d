// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package policy

// Priority is the scheduling/consent priority an application or the device
// policy is assigned.
type Priority int

const (
	PriorityNone Priority = iota
	PriorityCommunication
	PriorityNormal
	PriorityNavigation
	PriorityVoiceCommunication
	PriorityEmergency
)

// HmiLevel is the head-unit interaction tier gating what an app may do.
type HmiLevel int

const (
	HmiLevelNone HmiLevel = iota
	HmiLevelBackground
	HmiLevelLimited
	HmiLevelFull
)

// Parameter is an RPC parameter name permitted under a functional group.
type Parameter int

const (
	ParameterUnknown Parameter = iota
	ParameterMainField1
	ParameterMainField2
	ParameterMainField3
	ParameterMainField4
	ParameterStatusBar
	ParameterMediaClock
	ParameterMediaTrack
	ParameterAlertText1
	ParameterAlertText2
	ParameterAlertText3
)

// AppHMIType describes a category of application behavior (navigation,
// media, etc.) used to bucket default permission sets.
type AppHMIType int

const (
	AppHMITypeDefault AppHMIType = iota
	AppHMITypeCommunication
	AppHMITypeMedia
	AppHMITypeMessaging
	AppHMITypeNavigation
	AppHMITypeInformation
	AppHMITypeSocial
	AppHMITypeBackgroundProcess
	AppHMITypeTesting
	AppHMITypeSystem
)

// RequestType is an RPC request classification used for rate-limiting and
// consent purposes.
type RequestType int

const (
	RequestTypeHTTP RequestType = iota
	RequestTypeFileResume
	RequestTypeAuth
	RequestTypeProprietary
	RequestTypeQueryApps
	RequestTypeLaunchApp
	RequestTypeUnregisterApp
)

var priorityTokens = map[Priority]string{
	PriorityNone:               "NONE",
	PriorityCommunication:      "COMMUNICATION",
	PriorityNormal:             "NORMAL",
	PriorityNavigation:         "NAVIGATION",
	PriorityVoiceCommunication: "VOICE_COMMUNICATION",
	PriorityEmergency:          "EMERGENCY",
}

var hmiLevelTokens = map[HmiLevel]string{
	HmiLevelNone:       "NONE",
	HmiLevelBackground: "BACKGROUND",
	HmiLevelLimited:    "LIMITED",
	HmiLevelFull:       "FULL",
}

var parameterTokens = map[Parameter]string{
	ParameterUnknown:    "",
	ParameterMainField1: "mainField1",
	ParameterMainField2: "mainField2",
	ParameterMainField3: "mainField3",
	ParameterMainField4: "mainField4",
	ParameterStatusBar:  "statusBar",
	ParameterMediaClock: "mediaClock",
	ParameterMediaTrack: "mediaTrack",
	ParameterAlertText1: "alertText1",
	ParameterAlertText2: "alertText2",
	ParameterAlertText3: "alertText3",
}

var appHMITypeTokens = map[AppHMIType]string{
	AppHMITypeDefault:           "DEFAULT",
	AppHMITypeCommunication:     "COMMUNICATION",
	AppHMITypeMedia:             "MEDIA",
	AppHMITypeMessaging:         "MESSAGING",
	AppHMITypeNavigation:        "NAVIGATION",
	AppHMITypeInformation:       "INFORMATION",
	AppHMITypeSocial:            "SOCIAL",
	AppHMITypeBackgroundProcess: "BACKGROUND_PROCESS",
	AppHMITypeTesting:           "TESTING",
	AppHMITypeSystem:            "SYSTEM",
}

var requestTypeTokens = map[RequestType]string{
	RequestTypeHTTP:          "HTTP",
	RequestTypeFileResume:    "FILE_RESUME",
	RequestTypeAuth:          "AUTH",
	RequestTypeProprietary:   "PROPRIETARY",
	RequestTypeQueryApps:     "QUERY_APPS",
	RequestTypeLaunchApp:     "LAUNCH_APP",
	RequestTypeUnregisterApp: "UNREGISTER_APP_INTERFACE",
}

func invert[K comparable](m map[K]string) map[string]K {
	out := make(map[string]K, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

var (
	tokenToPriority    = invert(priorityTokens)
	tokenToHmiLevel    = invert(hmiLevelTokens)
	tokenToParameter   = invert(parameterTokens)
	tokenToAppHMIType  = invert(appHMITypeTokens)
	tokenToRequestType = invert(requestTypeTokens)
)

// EnumToJsonString converts an enum value to its canonical wire token. It is
// total: every declared constant of a domain has a token, so it never fails.
func EnumToJsonString[T Priority | HmiLevel | Parameter | AppHMIType | RequestType](v T) string {
	switch e := any(v).(type) {
	case Priority:
		return priorityTokens[e]
	case HmiLevel:
		return hmiLevelTokens[e]
	case Parameter:
		return parameterTokens[e]
	case AppHMIType:
		return appHMITypeTokens[e]
	case RequestType:
		return requestTypeTokens[e]
	}
	return ""
}

// PriorityFromJsonString and the four XFromJsonString functions below are
// partial conversions from a wire token back to an enum value, one per
// domain. An unrecognized token yields ok=false, which callers (the
// Gather methods) use to drop the offending row without failing the whole
// load, preserving forward compatibility with newer backends.
func PriorityFromJsonString(s string) (Priority, bool) {
	v, ok := tokenToPriority[s]
	return v, ok
}

func HmiLevelFromJsonString(s string) (HmiLevel, bool) {
	v, ok := tokenToHmiLevel[s]
	return v, ok
}

func ParameterFromJsonString(s string) (Parameter, bool) {
	v, ok := tokenToParameter[s]
	return v, ok
}

func AppHMITypeFromJsonString(s string) (AppHMIType, bool) {
	v, ok := tokenToAppHMIType[s]
	return v, ok
}

func RequestTypeFromJsonString(s string) (RequestType, bool) {
	v, ok := tokenToRequestType[s]
	return v, ok
}
