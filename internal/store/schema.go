// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "github.com/rkhiriev/policytable/internal/policy"

// kCreateSchema installs every table, index and trigger the policy table
// needs. Its text is also the source of the schema's version identity (see
// GetDBVersion): any edit here changes the identity and forces a refresh at
// the lifecycle layer.
const kCreateSchema = `
CREATE TABLE IF NOT EXISTS module_meta (
	id INTEGER PRIMARY KEY CHECK (id = 0),
	pt_exchanged_at_odometer_x INTEGER NOT NULL DEFAULT 0,
	pt_exchanged_x_days_after_epoch INTEGER NOT NULL DEFAULT 0,
	ignition_cycles_since_last_exchange INTEGER NOT NULL DEFAULT 0,
	flag_update_required INTEGER NOT NULL DEFAULT 0,
	db_version INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS module_config (
	id INTEGER PRIMARY KEY CHECK (id = 0),
	preloaded_pt INTEGER NOT NULL DEFAULT 0,
	exchange_after_x_ignition_cycles INTEGER NOT NULL DEFAULT 0,
	exchange_after_x_kilometers INTEGER NOT NULL DEFAULT 0,
	exchange_after_x_days INTEGER NOT NULL DEFAULT 0,
	timeout_after_x_seconds INTEGER NOT NULL DEFAULT 0,
	vehicle_make TEXT,
	vehicle_model TEXT,
	vehicle_year TEXT,
	preloaded_date TEXT,
	certificate TEXT
);

CREATE TABLE IF NOT EXISTS seconds_between_retries (
	ordinal INTEGER NOT NULL,
	seconds INTEGER NOT NULL,
	PRIMARY KEY (ordinal)
);

CREATE TABLE IF NOT EXISTS notifications_per_minute (
	priority TEXT NOT NULL PRIMARY KEY,
	per_minute INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS endpoint (
	service_type TEXT NOT NULL,
	app_id TEXT NOT NULL,
	ordinal INTEGER NOT NULL,
	url TEXT NOT NULL,
	PRIMARY KEY (service_type, app_id, ordinal)
);

CREATE TABLE IF NOT EXISTS functional_group (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	user_consent_prompt TEXT
);

CREATE TABLE IF NOT EXISTS rpc (
	group_id INTEGER NOT NULL REFERENCES functional_group(id),
	rpc_name TEXT NOT NULL,
	hmi_level TEXT NOT NULL,
	parameter TEXT,
	PRIMARY KEY (group_id, rpc_name, hmi_level, parameter)
);

CREATE TABLE IF NOT EXISTS application (
	app_id TEXT NOT NULL PRIMARY KEY,
	priority TEXT NOT NULL DEFAULT 'NONE',
	is_null INTEGER NOT NULL DEFAULT 0,
	memory_kb INTEGER NOT NULL DEFAULT 0,
	heart_beat_timeout_ms INTEGER NOT NULL DEFAULT 0,
	certificate TEXT,
	is_default INTEGER NOT NULL DEFAULT 0,
	is_predata INTEGER NOT NULL DEFAULT 0,
	is_revoked INTEGER NOT NULL DEFAULT 0,
	inherits_from TEXT
);

CREATE TABLE IF NOT EXISTS app_group (
	app_id TEXT NOT NULL REFERENCES application(app_id),
	group_name TEXT NOT NULL,
	PRIMARY KEY (app_id, group_name)
);

CREATE TABLE IF NOT EXISTS nickname (
	app_id TEXT NOT NULL REFERENCES application(app_id),
	ordinal INTEGER NOT NULL,
	nickname TEXT NOT NULL,
	PRIMARY KEY (app_id, ordinal)
);

CREATE TABLE IF NOT EXISTS app_hmi_type (
	app_id TEXT NOT NULL REFERENCES application(app_id),
	ordinal INTEGER NOT NULL,
	hmi_type TEXT NOT NULL,
	PRIMARY KEY (app_id, ordinal)
);

CREATE TABLE IF NOT EXISTS request_type (
	app_id TEXT NOT NULL REFERENCES application(app_id),
	ordinal INTEGER NOT NULL,
	request_type TEXT NOT NULL,
	PRIMARY KEY (app_id, ordinal)
);

CREATE TABLE IF NOT EXISTS device_policy (
	id INTEGER PRIMARY KEY CHECK (id = 0),
	priority TEXT NOT NULL DEFAULT 'NONE'
);

CREATE TABLE IF NOT EXISTS consumer_friendly_messages (
	id INTEGER PRIMARY KEY CHECK (id = 0),
	version TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS message_string (
	message_type TEXT NOT NULL,
	language TEXT NOT NULL,
	body TEXT,
	PRIMARY KEY (message_type, language)
);

CREATE TABLE IF NOT EXISTS device_data (
	device_id TEXT NOT NULL PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS usage_and_error_count (
	app_id TEXT NOT NULL PRIMARY KEY,
	count_of_tls_errors INTEGER NOT NULL DEFAULT 0,
	minutes_in_hmi_full INTEGER NOT NULL DEFAULT 0,
	minutes_in_hmi_limited INTEGER NOT NULL DEFAULT 0,
	minutes_in_hmi_background INTEGER NOT NULL DEFAULT 0,
	count_of_user_selections INTEGER NOT NULL DEFAULT 0,
	count_of_rejected_rpc_calls INTEGER NOT NULL DEFAULT 0,
	count_of_rpcs_sent_in_hmi_none INTEGER NOT NULL DEFAULT 0,
	count_of_removals_misbehaving INTEGER NOT NULL DEFAULT 0,
	count_of_run_attempts_while_revoked INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS lifecycle_flag (
	id INTEGER PRIMARY KEY CHECK (id = 0),
	is_first_run INTEGER NOT NULL DEFAULT 1
);
`

// kDropSchema is the inverse of kCreateSchema.
const kDropSchema = `
DROP TABLE IF EXISTS lifecycle_flag;
DROP TABLE IF EXISTS usage_and_error_count;
DROP TABLE IF EXISTS device_data;
DROP TABLE IF EXISTS message_string;
DROP TABLE IF EXISTS consumer_friendly_messages;
DROP TABLE IF EXISTS device_policy;
DROP TABLE IF EXISTS request_type;
DROP TABLE IF EXISTS app_hmi_type;
DROP TABLE IF EXISTS nickname;
DROP TABLE IF EXISTS app_group;
DROP TABLE IF EXISTS application;
DROP TABLE IF EXISTS rpc;
DROP TABLE IF EXISTS functional_group;
DROP TABLE IF EXISTS endpoint;
DROP TABLE IF EXISTS notifications_per_minute;
DROP TABLE IF EXISTS seconds_between_retries;
DROP TABLE IF EXISTS module_config;
DROP TABLE IF EXISTS module_meta;
`

// kDeleteData truncates every table without dropping the schema, used by
// Clear before re-seeding.
const kDeleteData = `
DELETE FROM lifecycle_flag;
DELETE FROM usage_and_error_count;
DELETE FROM device_data;
DELETE FROM message_string;
DELETE FROM consumer_friendly_messages;
DELETE FROM device_policy;
DELETE FROM request_type;
DELETE FROM app_hmi_type;
DELETE FROM nickname;
DELETE FROM app_group;
DELETE FROM application;
DELETE FROM rpc;
DELETE FROM functional_group;
DELETE FROM endpoint;
DELETE FROM notifications_per_minute;
DELETE FROM seconds_between_retries;
DELETE FROM module_config;
DELETE FROM module_meta;
`

// kInsertInitData is the seed insert that constitutes an empty, but valid,
// policy table: the singleton rows and the two predefined applications.
const kInsertInitData = `
INSERT INTO module_meta (id) VALUES (0);
INSERT INTO module_config (id) VALUES (0);
INSERT INTO device_policy (id) VALUES (0);
INSERT INTO consumer_friendly_messages (id, version) VALUES (0, '0');
INSERT INTO lifecycle_flag (id, is_first_run) VALUES (0, 1);
INSERT INTO application (app_id, is_default) VALUES ('default', 1);
INSERT INTO application (app_id, is_predata) VALUES ('pre_DataConsent', 1);
`

// kCheckPgNumber reports whether the sqlite file has any pages at all; a
// zero result means "new, empty file" and the Lifecycle Controller falls
// through to schema creation.
const kCheckPgNumber = `PRAGMA page_count;`

// kCheckDBIntegrity runs sqlite's built-in integrity check. Every row must
// read "ok" for the file to be considered healthy.
const kCheckDBIntegrity = `PRAGMA integrity_check;`

// kIsFirstRun / kSetNotFirstRun gate the one-time first-run transition.
const kIsFirstRun = `SELECT is_first_run FROM lifecycle_flag WHERE id = 0;`
const kSetNotFirstRun = `UPDATE lifecycle_flag SET is_first_run = 0 WHERE id = 0;`

// GetDBVersion returns the schema's version identity: the Djb2 hash of the
// kCreateSchema text. Any DDL edit changes this value.
func GetDBVersion() int64 {
	return policy.Djb2Hash(kCreateSchema)
}

// CreateSchemaSQL exposes kCreateSchema to the Lifecycle Controller.
func CreateSchemaSQL() string { return kCreateSchema }

// DropSchemaSQL exposes kDropSchema to the Lifecycle Controller.
func DropSchemaSQL() string { return kDropSchema }

// DeleteDataSQL exposes kDeleteData to the Lifecycle Controller.
func DeleteDataSQL() string { return kDeleteData }

// InsertInitDataSQL exposes kInsertInitData to the Lifecycle Controller.
func InsertInitDataSQL() string { return kInsertInitData }
