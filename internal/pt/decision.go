// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package pt

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rkhiriev/policytable/internal/policy"
	"github.com/rkhiriev/policytable/internal/store"
)

// PermissionVerdict is the result of CheckPermissions.
type PermissionVerdict struct {
	HmiLevelPermitted bool
	AllowedParams     []policy.Parameter
}

// CheckPermissions binds app_id, hmi_level and rpc into kSelectRpc and
// inspects the result set. Presence of any matching row means the rpc is
// allowed at that hmi level; absence means it is disallowed. All rows'
// non-null parameters are collected into AllowedParams, in the underlying
// rows' order; duplicates are not deduplicated at this layer.
func (t *Table) CheckPermissions(ctx context.Context, appID string, hmiLevel policy.HmiLevel, rpc string) (PermissionVerdict, error) {
	rows, err := t.driver.Query(ctx, store.SelectRpcSQL(), appID, policy.EnumToJsonString(hmiLevel), rpc)
	if err != nil {
		return PermissionVerdict{}, err
	}
	defer rows.Close()

	var verdict PermissionVerdict
	for rows.Next() {
		verdict.HmiLevelPermitted = true
		var param nullableString
		if err = rows.Scan(&param); err != nil {
			return PermissionVerdict{}, err
		}
		if p, ok := param.Value(); ok {
			if parsed, ok := policy.ParameterFromJsonString(p); ok {
				verdict.AllowedParams = append(verdict.AllowedParams, parsed)
			}
		}
	}
	return verdict, rows.Err()
}

// clampIgnition implements IgnitionCyclesBeforeExchange's guard: remaining
// is limit - current, clamped to 0 whenever either input is negative or
// current exceeds limit.
func clampIgnition(limit, current int) int {
	if limit < 0 || current < 0 || current > limit {
		return 0
	}
	return limit - current
}

// clampExchange implements the guard shared by KilometersBeforeExchange and
// DaysBeforeExchange: remaining is limit - (current - last), clamped to 0
// whenever limit, last or current is negative, current is behind last, or
// the consumed span exceeds limit. limit, last and current are checked
// independently, before the subtraction, so a negative raw input clamps to
// 0 even if current-last happens to be positive and within limit.
func clampExchange(limit, last, current int) int {
	if limit < 0 || last < 0 || current < 0 || current < last || limit < (current-last) {
		return 0
	}
	return limit - (current - last)
}

// IgnitionCyclesBeforeExchange returns limit - current.
func (t *Table) IgnitionCyclesBeforeExchange(ctx context.Context) (int, error) {
	cfg, meta, err := t.cadenceInputs(ctx)
	if err != nil {
		return 0, err
	}
	return clampIgnition(cfg.ExchangeAfterXIgnitionCycles, meta.IgnitionCyclesSinceLastExchange), nil
}

// KilometersBeforeExchange returns limit - (current - last), where last is
// the odometer reading at the last exchange.
func (t *Table) KilometersBeforeExchange(ctx context.Context, current int) (int, error) {
	cfg, meta, err := t.cadenceInputs(ctx)
	if err != nil {
		return 0, err
	}
	return clampExchange(cfg.ExchangeAfterXKilometers, meta.PTExchangedAtOdometerX, current), nil
}

// DaysBeforeExchange is identical to KilometersBeforeExchange except that
// last == 0 short-circuits to limit (first-ever exchange).
func (t *Table) DaysBeforeExchange(ctx context.Context, current int) (int, error) {
	cfg, meta, err := t.cadenceInputs(ctx)
	if err != nil {
		return 0, err
	}
	if meta.PTExchangedXDaysAfterEpoch == 0 {
		return cfg.ExchangeAfterXDays, nil
	}
	return clampExchange(cfg.ExchangeAfterXDays, meta.PTExchangedXDaysAfterEpoch, current), nil
}

func (t *Table) cadenceInputs(ctx context.Context) (policy.ModuleConfig, policy.ModuleMeta, error) {
	cfgField, err := t.GatherModuleConfig(ctx)
	if err != nil {
		return policy.ModuleConfig{}, policy.ModuleMeta{}, err
	}
	metaField, err := t.GatherModuleMeta(ctx)
	if err != nil {
		return policy.ModuleConfig{}, policy.ModuleMeta{}, err
	}
	cfg, _ := cfgField.Value()
	meta, _ := metaField.Value()
	return cfg, meta, nil
}

// SetCountersPassedForSuccessfulUpdate writes the two exchange counters
// atomically through a single prepared update.
func (t *Table) SetCountersPassedForSuccessfulUpdate(ctx context.Context, kilometers, daysAfterEpoch int) error {
	_, err := t.driver.Exec(ctx, store.UpdateExchangeCountersSQL(), kilometers, daysAfterEpoch)
	return err
}

// IncrementIgnitionCycles bumps ignition_cycles_since_last_exchange by one.
func (t *Table) IncrementIgnitionCycles(ctx context.Context) error {
	_, err := t.driver.Exec(ctx, store.IncrementIgnitionCyclesSQL())
	return err
}

// ResetIgnitionCycles restores ignition_cycles_since_last_exchange to zero.
func (t *Table) ResetIgnitionCycles(ctx context.Context) error {
	_, err := t.driver.Exec(ctx, store.ResetIgnitionCyclesSQL())
	return err
}

// GetPriority returns the device policy's priority.
func (t *Table) GetPriority(ctx context.Context) (policy.Priority, error) {
	device, err := t.gatherDevicePolicy(ctx)
	if err != nil {
		return policy.PriorityNone, err
	}
	d, _ := device.Value()
	return d.Priority, nil
}

// UpdateURL is one {url, app_id} pair returned by GetUpdateUrls. AppID is
// null-tolerant: an empty string means the row carried no app_id.
type UpdateURL struct {
	URL   string
	AppID string
}

// GetUpdateUrls returns the ordered sequence of {url, app_id} configured
// for service_type.
func (t *Table) GetUpdateUrls(ctx context.Context, serviceType string) ([]UpdateURL, error) {
	rows, err := t.driver.Query(ctx, store.SelectEndpointSQL(), serviceType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []UpdateURL
	for rows.Next() {
		var u UpdateURL
		var appID nullableString
		if err = rows.Scan(&u.URL, &appID); err != nil {
			return nil, err
		}
		u.AppID = appID.ValueOr("")
		out = append(out, u)
	}
	return out, rows.Err()
}

// GetLockScreenIconUrl is a fixed-keyed lookup: service_type
// "lock_screen_icon_url", app_id "default".
func (t *Table) GetLockScreenIconUrl(ctx context.Context) (string, error) {
	row, release, err := t.driver.QueryRow(ctx, store.SelectLockScreenIconURLSQL())
	if err != nil {
		return "", err
	}
	defer release()

	var url string
	if err = row.Scan(&url); err != nil {
		return "", err
	}
	return url, nil
}

// GetNotificationsNumber returns the configured per-minute notification
// limit for priority, or 0 if none is configured.
func (t *Table) GetNotificationsNumber(ctx context.Context, priority policy.Priority) (int, error) {
	row, release, err := t.driver.QueryRow(ctx, store.SelectNotificationsForPrioritySQL(), policy.EnumToJsonString(priority))
	if err != nil {
		return 0, err
	}
	defer release()

	var perMinute int
	if err = row.Scan(&perMinute); err != nil {
		return 0, nil
	}
	return perMinute, nil
}

// TimeoutResponse returns the configured timeout, falling back to the
// hard-coded default of 30 on any failure.
func (t *Table) TimeoutResponse(ctx context.Context) int {
	cfgField, err := t.GatherModuleConfig(ctx)
	if err != nil {
		return 30
	}
	cfg, ok := cfgField.Value()
	if !ok || cfg.TimeoutAfterXSeconds <= 0 {
		return 30
	}
	return cfg.TimeoutAfterXSeconds
}

// SecondsBetweenRetries returns the configured retry backoff schedule.
func (t *Table) SecondsBetweenRetries(ctx context.Context) ([]int, error) {
	return t.gatherSecondsBetweenRetries(ctx)
}

// UpdateRequired reports whether the module meta's flag_update_required is
// set.
func (t *Table) UpdateRequired(ctx context.Context) (bool, error) {
	metaField, err := t.GatherModuleMeta(ctx)
	if err != nil {
		return false, err
	}
	meta, _ := metaField.Value()
	return meta.FlagUpdateRequired, nil
}

// SaveUpdateRequired sets module_meta's flag_update_required directly,
// without rewriting the other four columns SaveModuleMeta touches.
func (t *Table) SaveUpdateRequired(ctx context.Context, required bool) error {
	_, err := t.driver.Exec(ctx, store.SetFlagUpdateRequiredSQL(), required)
	return err
}

// GetPriorityForApp returns appID's stored priority, independent of the
// device priority GetPriority reports.
func (t *Table) GetPriorityForApp(ctx context.Context, appID string) (policy.Priority, error) {
	row, release, err := t.driver.QueryRow(ctx, store.SelectApplicationPrioritySQL(), appID)
	if err != nil {
		return policy.PriorityNone, err
	}
	defer release()

	var token string
	if err = row.Scan(&token); err != nil {
		return policy.PriorityNone, err
	}
	priority, _ := policy.PriorityFromJsonString(token)
	return priority, nil
}

// IsPTPreloaded reports module_config's preloaded_pt flag.
func (t *Table) IsPTPreloaded(ctx context.Context) (bool, error) {
	row, release, err := t.driver.QueryRow(ctx, store.SelectPreloadedPTSQL())
	if err != nil {
		return false, err
	}
	defer release()

	var preloaded bool
	if err = row.Scan(&preloaded); err != nil {
		return false, err
	}
	return preloaded, nil
}

// ApplicationStatus reports the three boolean flags the original's
// IsApplicationRevoked/IsApplicationRepresented/IsDefaultPolicy exposed as
// separate queries; here they are read together since all three come off
// the same row.
type ApplicationStatus struct {
	Represented bool
	Revoked     bool
	IsDefault   bool
}

// GetApplicationStatus reports whether appID has a row at all, and if so
// whether it is revoked or marked default.
func (t *Table) GetApplicationStatus(ctx context.Context, appID string) (ApplicationStatus, error) {
	row, release, err := t.driver.QueryRow(ctx, store.SelectApplicationFlagsSQL(), appID)
	if err != nil {
		return ApplicationStatus{}, err
	}
	defer release()

	var isRevoked, isDefault, isNull bool
	if err = row.Scan(&isRevoked, &isDefault, &isNull); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ApplicationStatus{}, nil
		}
		return ApplicationStatus{}, err
	}
	return ApplicationStatus{Represented: true, Revoked: isRevoked, IsDefault: isDefault}, nil
}

// SaveApplicationCustomData writes appID's revoked/default/null flags
// directly, without re-saving its groups, nicknames or request types.
func (t *Table) SaveApplicationCustomData(ctx context.Context, appID string, isRevoked, isDefault, isNull bool) error {
	_, err := t.driver.Exec(ctx, store.SaveApplicationCustomDataSQL(), isRevoked, isDefault, isNull, appID)
	return err
}

// GetInitialAppData returns appID's nicknames and HMI types together, the
// combined fetch a freshly-registering application needs.
func (t *Table) GetInitialAppData(ctx context.Context, appID string) ([]string, []policy.AppHMIType, error) {
	nicknames, err := t.gatherStrings(ctx, store.SelectNicknamesSQL(), appID)
	if err != nil {
		return nil, nil, err
	}

	tokens, err := t.gatherStrings(ctx, store.SelectAppHMITypesSQL(), appID)
	if err != nil {
		return nil, nil, err
	}
	var hmiTypes []policy.AppHMIType
	for _, token := range tokens {
		if v, ok := policy.AppHMITypeFromJsonString(token); ok {
			hmiTypes = append(hmiTypes, v)
		}
	}
	return nicknames, hmiTypes, nil
}
