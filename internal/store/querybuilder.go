// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import sq "github.com/Masterminds/squirrel"

// statementBuilder renders statements with sqlite's "?" placeholder style,
// used for every call site whose argument count varies with its input
// (batch inserts, optional filters) rather than being fixed by the Query
// Catalog.
var statementBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// RpcRow is one (rpc_name, hmi_level, parameter) tuple to insert for a
// functional group.
type RpcRow struct {
	RpcName   string
	HmiLevel  string
	Parameter *string
}

// BuildInsertRpcs renders a single multi-row INSERT for every rpc row in a
// functional group, replacing what would otherwise be one Exec per row.
func BuildInsertRpcs(groupID int64, rows []RpcRow) (string, []any, error) {
	b := statementBuilder.Insert("rpc").Columns("group_id", "rpc_name", "hmi_level", "parameter")
	for _, r := range rows {
		b = b.Values(groupID, r.RpcName, r.HmiLevel, r.Parameter)
	}
	return b.ToSql()
}

// EndpointRow is one ordered (app_id, url) pair under a service type.
type EndpointRow struct {
	AppID   string
	Ordinal int
	URL     string
}

// BuildInsertEndpoints renders a single multi-row INSERT for every endpoint
// url configured under a service type.
func BuildInsertEndpoints(serviceType string, rows []EndpointRow) (string, []any, error) {
	b := statementBuilder.Insert("endpoint").Columns("service_type", "app_id", "ordinal", "url")
	for _, r := range rows {
		b = b.Values(serviceType, r.AppID, r.Ordinal, r.URL)
	}
	return b.ToSql()
}

// BuildSelectApplications renders a SELECT over application rows, optionally
// filtered to a specific set of app ids. An empty filter selects every
// application; GatherApplicationPoliciesSection calls it with an empty
// filter.
func BuildSelectApplications(appIDs []string) (string, []any, error) {
	b := statementBuilder.Select(
		"app_id", "priority", "is_null", "memory_kb", "heart_beat_timeout_ms",
		"certificate", "is_default", "is_predata", "is_revoked", "inherits_from",
	).From("application")

	if len(appIDs) > 0 {
		b = b.Where(sq.Eq{"app_id": appIDs})
	}
	return b.ToSql()
}

// BuildInsertNotificationsPerMinute renders a single multi-row INSERT for
// the priority->per-minute notification limit table.
func BuildInsertNotificationsPerMinute(limits map[string]int) (string, []any, error) {
	b := statementBuilder.Insert("notifications_per_minute").Columns("priority", "per_minute")
	for priority, limit := range limits {
		b = b.Values(priority, limit)
	}
	return b.ToSql()
}

// BuildInsertSecondsBetweenRetries renders a single multi-row INSERT for the
// ordered retry backoff schedule.
func BuildInsertSecondsBetweenRetries(schedule []int) (string, []any, error) {
	b := statementBuilder.Insert("seconds_between_retries").Columns("ordinal", "seconds")
	for i, seconds := range schedule {
		b = b.Values(i, seconds)
	}
	return b.ToSql()
}
