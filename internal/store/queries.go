// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

// Query Catalog: every named SQL statement the Persistence Engine and
// Decision Engine use for CRUD over the policy entities. Kept as string
// constants addressable by symbolic name, in the style of the platform's
// own sql_queries.go.
const (
	kSelectModuleMeta = `
		SELECT
			pt_exchanged_at_odometer_x,
			pt_exchanged_x_days_after_epoch,
			ignition_cycles_since_last_exchange,
			flag_update_required,
			db_version
		FROM module_meta WHERE id = 0;`

	kUpdateModuleMeta = `
		UPDATE module_meta SET
			pt_exchanged_at_odometer_x = ?,
			pt_exchanged_x_days_after_epoch = ?,
			ignition_cycles_since_last_exchange = ?,
			flag_update_required = ?,
			db_version = ?
		WHERE id = 0;`

	kUpdateExchangeCounters = `
		UPDATE module_meta SET
			pt_exchanged_at_odometer_x = ?,
			pt_exchanged_x_days_after_epoch = ?
		WHERE id = 0;`

	kIncrementIgnitionCycles = `
		UPDATE module_meta SET
			ignition_cycles_since_last_exchange = ignition_cycles_since_last_exchange + 1
		WHERE id = 0;`

	kResetIgnitionCycles = `
		UPDATE module_meta SET ignition_cycles_since_last_exchange = 0 WHERE id = 0;`

	kSelectModuleConfig = `
		SELECT
			preloaded_pt,
			exchange_after_x_ignition_cycles,
			exchange_after_x_kilometers,
			exchange_after_x_days,
			timeout_after_x_seconds,
			vehicle_make,
			vehicle_model,
			vehicle_year,
			preloaded_date,
			certificate
		FROM module_config WHERE id = 0;`

	kUpdateModuleConfig = `
		UPDATE module_config SET
			preloaded_pt = ?,
			exchange_after_x_ignition_cycles = ?,
			exchange_after_x_kilometers = ?,
			exchange_after_x_days = ?,
			timeout_after_x_seconds = ?,
			vehicle_make = ?,
			vehicle_model = ?,
			vehicle_year = ?,
			preloaded_date = ?,
			certificate = ?
		WHERE id = 0;`

	kSetPreloadedPT = `UPDATE module_config SET preloaded_pt = ? WHERE id = 0;`

	// kInsertSecondsBetweenRetries, kInsertNotificationsPerMinute and
	// kInsertEndpoint have no single-row form here: their row counts are
	// variable-arity, so BuildInsertSecondsBetweenRetries,
	// BuildInsertNotificationsPerMinute and BuildInsertEndpoints in
	// querybuilder.go render their INSERTs instead.
	kDeleteSecondsBetweenRetries = `DELETE FROM seconds_between_retries;`
	kSelectSecondsBetweenRetries = `SELECT seconds FROM seconds_between_retries ORDER BY ordinal ASC;`

	kDeleteNotificationsPerMinute = `DELETE FROM notifications_per_minute;`
	kSelectNotificationsPerMinute = `SELECT priority, per_minute FROM notifications_per_minute;`
	kSelectNotificationsForPriority = `SELECT per_minute FROM notifications_per_minute WHERE priority = ?;`

	kDeleteEndpoints = `DELETE FROM endpoint;`
	kSelectEndpoint  = `SELECT url, app_id FROM endpoint WHERE service_type = ? ORDER BY ordinal ASC;`
	kSelectAllEndpoints = `SELECT service_type, app_id, ordinal, url FROM endpoint ORDER BY service_type, app_id, ordinal;`
	kSelectLockScreenIconURL = `
		SELECT url FROM endpoint
		WHERE service_type = 'lock_screen_icon_url' AND app_id = 'default'
		ORDER BY ordinal ASC LIMIT 1;`

	kDeleteRpcs           = `DELETE FROM rpc;`
	kDeleteFunctionalGroups = `DELETE FROM functional_group;`
	kInsertFunctionalGroup  = `INSERT INTO functional_group (id, name, user_consent_prompt) VALUES (?, ?, ?);`
	kSelectFunctionalGroups = `SELECT id, name, user_consent_prompt FROM functional_group;`
	// kInsertRpc has no single-row form here: BuildInsertRpcs in
	// querybuilder.go renders the variable-arity multi-row INSERT instead.
	kSelectRpcsForGroup = `SELECT DISTINCT rpc_name FROM rpc WHERE group_id = ?;`
	kSelectRpcDetails       = `SELECT hmi_level, parameter FROM rpc WHERE group_id = ? AND rpc_name = ?;`

	// kSelectRpc is the hot permission-check path: CheckPermissions binds
	// app_id, hmi_level and rpc_name and inspects the result set.
	kSelectRpc = `
		SELECT r.parameter
		FROM rpc r
		JOIN app_group ag ON ag.group_name = (SELECT name FROM functional_group WHERE id = r.group_id)
		WHERE ag.app_id = ? AND r.hmi_level = ? AND r.rpc_name = ?;`

	kDeleteAppGroups   = `DELETE FROM app_group;`
	kDeleteApplications = `DELETE FROM application;`
	kDeleteRequestTypes = `DELETE FROM request_type;`
	kDeleteNicknames    = `DELETE FROM nickname;`
	kDeleteAppHMITypes  = `DELETE FROM app_hmi_type;`

	kInsertApplication = `
		INSERT INTO application (
			app_id, priority, is_null, memory_kb, heart_beat_timeout_ms,
			certificate, is_default, is_predata, is_revoked, inherits_from
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	kCopyApplication = `
		INSERT OR REPLACE INTO application (
			app_id, priority, is_null, memory_kb, heart_beat_timeout_ms,
			certificate, is_default, is_predata, is_revoked, inherits_from
		)
		SELECT ?, priority, is_null, memory_kb, heart_beat_timeout_ms,
			certificate, is_default, is_predata, is_revoked, inherits_from
		FROM application WHERE app_id = ?;`

	kDeleteAppGroupsForApp = `DELETE FROM app_group WHERE app_id = ?;`
	kInsertAppGroup        = `INSERT INTO app_group (app_id, group_name) VALUES (?, ?);`
	kSelectAppGroups       = `SELECT group_name FROM app_group WHERE app_id = ?;`
	kCopyAppGroups         = `INSERT INTO app_group (app_id, group_name) SELECT ?, group_name FROM app_group WHERE app_id = ?;`
	kSetIsDefault          = `UPDATE application SET is_default = ? WHERE app_id = ?;`

	kInsertNickname  = `INSERT INTO nickname (app_id, ordinal, nickname) VALUES (?, ?, ?);`
	kSelectNicknames = `SELECT nickname FROM nickname WHERE app_id = ? ORDER BY ordinal ASC;`

	kInsertAppHMIType  = `INSERT INTO app_hmi_type (app_id, ordinal, hmi_type) VALUES (?, ?, ?);`
	kSelectAppHMITypes = `SELECT hmi_type FROM app_hmi_type WHERE app_id = ? ORDER BY ordinal ASC;`

	kInsertRequestType  = `INSERT INTO request_type (app_id, ordinal, request_type) VALUES (?, ?, ?);`
	kSelectRequestTypes = `SELECT request_type FROM request_type WHERE app_id = ? ORDER BY ordinal ASC;`

	kSelectDevicePriority = `SELECT priority FROM device_policy WHERE id = 0;`
	kUpdateDevicePriority = `UPDATE device_policy SET priority = ? WHERE id = 0;`

	kSelectApplicationPriority = `SELECT priority FROM application WHERE app_id = ?;`
	kSelectApplicationFlags    = `SELECT is_revoked, is_default, is_null FROM application WHERE app_id = ?;`
	kSaveApplicationCustomData = `UPDATE application SET is_revoked = ?, is_default = ?, is_null = ? WHERE app_id = ?;`

	kSetFlagUpdateRequired = `UPDATE module_meta SET flag_update_required = ? WHERE id = 0;`
	kSelectPreloadedPT     = `SELECT preloaded_pt FROM module_config WHERE id = 0;`

	kSelectConsumerFriendlyMessages = `SELECT version FROM consumer_friendly_messages WHERE id = 0;`
	kUpdateMessagesVersion          = `UPDATE consumer_friendly_messages SET version = ? WHERE id = 0;`
	kDeleteMessageStrings           = `DELETE FROM message_string;`
	kInsertMessageString            = `INSERT INTO message_string (message_type, language, body) VALUES (?, ?, ?);`
	kSelectMessageStrings           = `SELECT message_type, language, body FROM message_string;`

	kDeleteDeviceData = `DELETE FROM device_data;`
	kInsertDeviceID   = `INSERT INTO device_data (device_id) VALUES (?);`
	kSelectDeviceIDs  = `SELECT device_id FROM device_data;`

	kDeleteUsageAndErrorCounts = `DELETE FROM usage_and_error_count;`
	kInsertUsageAndErrorCount  = `
		INSERT INTO usage_and_error_count (
			app_id, count_of_tls_errors, minutes_in_hmi_full, minutes_in_hmi_limited,
			minutes_in_hmi_background, count_of_user_selections, count_of_rejected_rpc_calls,
			count_of_rpcs_sent_in_hmi_none, count_of_removals_misbehaving,
			count_of_run_attempts_while_revoked
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`
	kSelectUsageAndErrorCounts = `
		SELECT app_id, count_of_tls_errors, minutes_in_hmi_full, minutes_in_hmi_limited,
			minutes_in_hmi_background, count_of_user_selections, count_of_rejected_rpc_calls,
			count_of_rpcs_sent_in_hmi_none, count_of_removals_misbehaving,
			count_of_run_attempts_while_revoked
		FROM usage_and_error_count;`
)

// The functions below expose the Query Catalog to the Persistence Engine
// (internal/pt), which lives in a different package and so cannot reach the
// unexported kXxx constants directly. Every wrapper here has a real call
// site in gather.go, save.go or decision.go; a catalog entry with no
// wrapper below has no caller and exists only as schema documentation.

func SelectModuleMetaSQL() string       { return kSelectModuleMeta }
func UpdateModuleMetaSQL() string       { return kUpdateModuleMeta }
func UpdateExchangeCountersSQL() string { return kUpdateExchangeCounters }
func IncrementIgnitionCyclesSQL() string { return kIncrementIgnitionCycles }
func ResetIgnitionCyclesSQL() string     { return kResetIgnitionCycles }

func SelectModuleConfigSQL() string { return kSelectModuleConfig }
func UpdateModuleConfigSQL() string { return kUpdateModuleConfig }
func SetPreloadedPTSQL() string     { return kSetPreloadedPT }

func DeleteSecondsBetweenRetriesSQL() string { return kDeleteSecondsBetweenRetries }
func SelectSecondsBetweenRetriesSQL() string { return kSelectSecondsBetweenRetries }

func DeleteNotificationsPerMinuteSQL() string   { return kDeleteNotificationsPerMinute }
func SelectNotificationsPerMinuteSQL() string   { return kSelectNotificationsPerMinute }
func SelectNotificationsForPrioritySQL() string { return kSelectNotificationsForPriority }

func DeleteEndpointsSQL() string         { return kDeleteEndpoints }
func SelectEndpointSQL() string          { return kSelectEndpoint }
func SelectAllEndpointsSQL() string      { return kSelectAllEndpoints }
func SelectLockScreenIconURLSQL() string { return kSelectLockScreenIconURL }

func DeleteRpcsSQL() string           { return kDeleteRpcs }
func DeleteFunctionalGroupsSQL() string { return kDeleteFunctionalGroups }
func InsertFunctionalGroupSQL() string  { return kInsertFunctionalGroup }
func SelectFunctionalGroupsSQL() string { return kSelectFunctionalGroups }
func SelectRpcsForGroupSQL() string     { return kSelectRpcsForGroup }
func SelectRpcDetailsSQL() string       { return kSelectRpcDetails }
func SelectRpcSQL() string              { return kSelectRpc }

func DeleteAppGroupsSQL() string   { return kDeleteAppGroups }
func DeleteApplicationsSQL() string { return kDeleteApplications }
func DeleteRequestTypesSQL() string { return kDeleteRequestTypes }
func DeleteNicknamesSQL() string    { return kDeleteNicknames }
func DeleteAppHMITypesSQL() string  { return kDeleteAppHMITypes }

func InsertApplicationSQL() string { return kInsertApplication }
func CopyApplicationSQL() string   { return kCopyApplication }

func DeleteAppGroupsForAppSQL() string { return kDeleteAppGroupsForApp }
func InsertAppGroupSQL() string        { return kInsertAppGroup }
func SelectAppGroupsSQL() string       { return kSelectAppGroups }
func CopyAppGroupsSQL() string         { return kCopyAppGroups }
func SetIsDefaultSQL() string          { return kSetIsDefault }

func InsertNicknameSQL() string  { return kInsertNickname }
func SelectNicknamesSQL() string { return kSelectNicknames }

func InsertAppHMITypeSQL() string  { return kInsertAppHMIType }
func SelectAppHMITypesSQL() string { return kSelectAppHMITypes }

func InsertRequestTypeSQL() string  { return kInsertRequestType }
func SelectRequestTypesSQL() string { return kSelectRequestTypes }

func SelectDevicePrioritySQL() string { return kSelectDevicePriority }
func UpdateDevicePrioritySQL() string { return kUpdateDevicePriority }

func SelectApplicationPrioritySQL() string { return kSelectApplicationPriority }
func SelectApplicationFlagsSQL() string    { return kSelectApplicationFlags }
func SaveApplicationCustomDataSQL() string { return kSaveApplicationCustomData }

func SetFlagUpdateRequiredSQL() string { return kSetFlagUpdateRequired }
func SelectPreloadedPTSQL() string     { return kSelectPreloadedPT }

func SelectConsumerFriendlyMessagesSQL() string { return kSelectConsumerFriendlyMessages }
func UpdateMessagesVersionSQL() string          { return kUpdateMessagesVersion }
func DeleteMessageStringsSQL() string           { return kDeleteMessageStrings }
func InsertMessageStringSQL() string            { return kInsertMessageString }
func SelectMessageStringsSQL() string           { return kSelectMessageStrings }

func DeleteDeviceDataSQL() string { return kDeleteDeviceData }
func InsertDeviceIDSQL() string   { return kInsertDeviceID }
func SelectDeviceIDsSQL() string  { return kSelectDeviceIDs }

func DeleteUsageAndErrorCountsSQL() string { return kDeleteUsageAndErrorCounts }
func InsertUsageAndErrorCountSQL() string  { return kInsertUsageAndErrorCount }
func SelectUsageAndErrorCountsSQL() string { return kSelectUsageAndErrorCounts }
