// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package pt

import (
	"context"
	"fmt"

	"github.com/rkhiriev/policytable/internal/policy"
	"github.com/rkhiriev/policytable/internal/store"
)

// Save replaces the stored document from doc under a single transaction,
// rolling back on any sub-save failure and committing otherwise. Sub-saves
// run in a fixed order so that referenced rows exist before the rows that
// reference them: SaveFunctionalGroupings, SaveApplicationPoliciesSection,
// SaveModuleConfig, SaveConsumerFriendlyMessages, SaveDeviceData,
// SaveUsageAndErrorCounts, SaveModuleMeta.
func (t *Table) Save(ctx context.Context, doc policy.Document) error {
	tx, err := t.driver.BeginTransaction(ctx)
	if err != nil {
		return err
	}

	if err = t.saveAll(ctx, tx, doc); err != nil {
		if rerr := tx.RollbackTransaction(); rerr != nil {
			t.log.Err(rerr).Str("func", "Save").Msg("rollback also failed")
		}
		return fmt.Errorf("%w: %w", ErrSaveAborted, err)
	}

	return tx.CommitTransaction()
}

func (t *Table) saveAll(ctx context.Context, tx *store.Tx, doc policy.Document) error {
	if groups, ok := doc.FunctionalGroupings.Value(); ok {
		if err := t.SaveFunctionalGroupings(ctx, tx, groups); err != nil {
			return fmt.Errorf("save functional groupings: %w", err)
		}
	}
	if apps, ok := doc.ApplicationPolicies.Value(); ok {
		if err := t.SaveApplicationPoliciesSection(ctx, tx, apps, doc.Device); err != nil {
			return fmt.Errorf("save application policies: %w", err)
		}
	}
	if cfg, ok := doc.ModuleConfig.Value(); ok {
		if err := t.SaveModuleConfig(ctx, tx, cfg); err != nil {
			return fmt.Errorf("save module config: %w", err)
		}
	}
	if err := t.SaveConsumerFriendlyMessages(ctx, tx, doc.ConsumerFriendlyMessages); err != nil {
		return fmt.Errorf("save consumer friendly messages: %w", err)
	}
	if deviceData, ok := doc.DeviceData.Value(); ok {
		if err := t.SaveDeviceData(ctx, tx, deviceData); err != nil {
			return fmt.Errorf("save device data: %w", err)
		}
	}
	if counts, ok := doc.UsageAndErrorCounts.Value(); ok {
		if err := t.SaveUsageAndErrorCounts(ctx, tx, counts); err != nil {
			return fmt.Errorf("save usage and error counts: %w", err)
		}
	}
	if meta, ok := doc.ModuleMeta.Value(); ok {
		if err := t.SaveModuleMeta(ctx, tx, meta); err != nil {
			return fmt.Errorf("save module meta: %w", err)
		}
	}
	return nil
}

// SaveModuleMeta overwrites the module_meta singleton row.
func (t *Table) SaveModuleMeta(ctx context.Context, tx *store.Tx, m policy.ModuleMeta) error {
	_, err := tx.ExecContext(ctx, store.UpdateModuleMetaSQL(),
		m.PTExchangedAtOdometerX, m.PTExchangedXDaysAfterEpoch, m.IgnitionCyclesSinceLastExchange, m.FlagUpdateRequired, m.DBVersion)
	return err
}

// SaveModuleConfig overwrites the module_config singleton row along with its
// retry schedule, notification limits and endpoint table. The three
// sub-tables are variable-arity (their row count depends on the document
// being saved), so each is rendered as a single multi-row INSERT by the
// query builder rather than one Exec per row.
func (t *Table) SaveModuleConfig(ctx context.Context, tx *store.Tx, cfg policy.ModuleConfig) error {
	_, err := tx.ExecContext(ctx, store.UpdateModuleConfigSQL(),
		cfg.PreloadedPT, cfg.ExchangeAfterXIgnitionCycles, cfg.ExchangeAfterXKilometers, cfg.ExchangeAfterXDays, cfg.TimeoutAfterXSeconds,
		fieldToNullString(cfg.VehicleMake), fieldToNullString(cfg.VehicleModel), fieldToNullString(cfg.VehicleYear),
		fieldToNullString(cfg.PreloadedDate), fieldToNullString(cfg.Certificate))
	if err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, store.DeleteSecondsBetweenRetriesSQL()); err != nil {
		return err
	}
	if len(cfg.SecondsBetweenRetries) > 0 {
		query, args, err := store.BuildInsertSecondsBetweenRetries(cfg.SecondsBetweenRetries)
		if err != nil {
			return fmt.Errorf("%w: %w", store.ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	if _, err = tx.ExecContext(ctx, store.DeleteNotificationsPerMinuteSQL()); err != nil {
		return err
	}
	if len(cfg.NotificationsPerMinuteByPriority) > 0 {
		limits := make(map[string]int, len(cfg.NotificationsPerMinuteByPriority))
		for priority, limit := range cfg.NotificationsPerMinuteByPriority {
			limits[policy.EnumToJsonString(priority)] = limit
		}
		query, args, err := store.BuildInsertNotificationsPerMinute(limits)
		if err != nil {
			return fmt.Errorf("%w: %w", store.ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	if _, err = tx.ExecContext(ctx, store.DeleteEndpointsSQL()); err != nil {
		return err
	}
	for serviceType, byApp := range cfg.Endpoints {
		var rows []store.EndpointRow
		for appID, urls := range byApp {
			for ordinal, url := range urls {
				rows = append(rows, store.EndpointRow{AppID: appID, Ordinal: ordinal, URL: url})
			}
		}
		if len(rows) == 0 {
			continue
		}
		query, args, err := store.BuildInsertEndpoints(serviceType, rows)
		if err != nil {
			return fmt.Errorf("%w: %w", store.ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	return nil
}

// SaveFunctionalGroupings deletes all rpcs, deletes all groups, then for
// each group computes its deterministic id as abs(Djb2Hash(name)) and
// writes the group and its rpc permission rows. The id's stability across
// drop+reinsert is load-bearing: other tables hold references that must
// survive a refresh.
func (t *Table) SaveFunctionalGroupings(ctx context.Context, tx *store.Tx, groups map[string]policy.FunctionalGroup) error {
	if _, err := tx.ExecContext(ctx, store.DeleteRpcsSQL()); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, store.DeleteFunctionalGroupsSQL()); err != nil {
		return err
	}

	for name, group := range groups {
		id := policy.AbsDjb2Hash(name)
		if _, err := tx.ExecContext(ctx, store.InsertFunctionalGroupSQL(),
			id, name, fieldToNullString(group.UserConsentPrompt)); err != nil {
			return err
		}

		if err := t.SaveRpcs(ctx, tx, id, group); err != nil {
			return fmt.Errorf("save rpcs for group %q: %w", name, err)
		}
	}

	return nil
}

// SaveRpcs renders one multi-row INSERT for every (rpc, hmi_level) or
// (rpc, hmi_level, parameter) row in the group's permission set, in place
// of one Exec per row: the row count is variable-arity, driven entirely by
// the document being saved.
func (t *Table) SaveRpcs(ctx context.Context, tx *store.Tx, groupID int64, group policy.FunctionalGroup) error {
	rpcs, ok := group.Rpcs.Value()
	if !ok {
		return nil
	}

	var rows []store.RpcRow
	for rpcName, perm := range rpcs {
		for _, level := range perm.HmiLevels {
			levelToken := policy.EnumToJsonString(level)
			if len(perm.Parameters) == 0 {
				rows = append(rows, store.RpcRow{RpcName: rpcName, HmiLevel: levelToken})
				continue
			}
			for _, param := range perm.Parameters {
				paramToken := policy.EnumToJsonString(param)
				rows = append(rows, store.RpcRow{RpcName: rpcName, HmiLevel: levelToken, Parameter: &paramToken})
			}
		}
	}
	if len(rows) == 0 {
		return nil
	}

	query, args, err := store.BuildInsertRpcs(groupID, rows)
	if err != nil {
		return fmt.Errorf("%w: %w", store.ErrBuildingSQLQuery, err)
	}
	_, err = tx.ExecContext(ctx, query, args...)
	return err
}

// SaveApplicationPoliciesSection clears app_group, nickname, app_hmi_type,
// request_type and application, then writes predefined apps first (default, then
// pre_DataConsent), then the device row, then every other app. Ordering
// matters: saving a non-predefined app whose policy is "default" invokes
// SetDefaultPolicy, which copies rows from the default app, so those rows
// must already exist.
func (t *Table) SaveApplicationPoliciesSection(ctx context.Context, tx *store.Tx, apps map[string]policy.ApplicationPolicy, device policy.Field[policy.DevicePolicy]) error {
	if _, err := tx.ExecContext(ctx, store.DeleteAppGroupsSQL()); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, store.DeleteNicknamesSQL()); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, store.DeleteAppHMITypesSQL()); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, store.DeleteRequestTypesSQL()); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, store.DeleteApplicationsSQL()); err != nil {
		return err
	}

	if defaultApp, ok := apps[policy.DefaultID]; ok {
		if err := t.SaveSpecificAppPolicy(ctx, tx, defaultApp); err != nil {
			return fmt.Errorf("save default app: %w", err)
		}
	}
	if predataApp, ok := apps[policy.PreDataConsentID]; ok {
		if err := t.SaveSpecificAppPolicy(ctx, tx, predataApp); err != nil {
			return fmt.Errorf("save pre-data app: %w", err)
		}
	}

	if d, ok := device.Value(); ok {
		if _, err := tx.ExecContext(ctx, "INSERT INTO application (app_id) VALUES (?)", policy.DeviceID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, store.UpdateDevicePrioritySQL(), policy.EnumToJsonString(d.Priority)); err != nil {
			return err
		}
	}

	for appID, app := range apps {
		if appID == policy.DefaultID || appID == policy.PreDataConsentID {
			continue
		}
		if err := t.SaveSpecificAppPolicy(ctx, tx, app); err != nil {
			return fmt.Errorf("save app %q: %w", appID, err)
		}
	}

	return nil
}

// SaveSpecificAppPolicy inserts the application row and, if the policy
// value inherits from a predefined policy, delegates to SetDefaultPolicy
// (for "default") or writes a plain inherits_from marker (for
// "pre_DataConsent") and returns without writing groups/nicknames/types.
// Otherwise it writes groups, nicknames, HMI types and request types.
func (t *Table) SaveSpecificAppPolicy(ctx context.Context, tx *store.Tx, app policy.ApplicationPolicy) error {
	if app.Value.IsRevoked {
		_, err := tx.ExecContext(ctx, "INSERT INTO application (app_id, is_null, is_revoked) VALUES (?, 1, 1)", app.AppID)
		return err
	}

	if app.Value.InheritsFrom == policy.DefaultID {
		if _, err := tx.ExecContext(ctx, "INSERT INTO application (app_id, inherits_from) VALUES (?, ?)", app.AppID, policy.DefaultID); err != nil {
			return err
		}
		return t.SetDefaultPolicy(ctx, tx, app.AppID)
	}

	if app.Value.InheritsFrom != "" {
		_, err := tx.ExecContext(ctx, "INSERT INTO application (app_id, inherits_from) VALUES (?, ?)", app.AppID, app.Value.InheritsFrom)
		return err
	}

	params, ok := app.Value.Params.Value()
	if !ok {
		return nil
	}

	priorityToken := policy.EnumToJsonString(params.Priority)
	if _, err := tx.ExecContext(ctx, store.InsertApplicationSQL(),
		app.AppID, priorityToken, false, params.MemoryKB, params.HeartBeatTimeoutMs, fieldToNullString(params.Certificate),
		params.IsDefault, params.IsPredata, params.IsRevoked, nil); err != nil {
		return err
	}

	for _, group := range params.Groups {
		if _, err := tx.ExecContext(ctx, store.InsertAppGroupSQL(), app.AppID, group); err != nil {
			return err
		}
	}
	for i, nickname := range params.Nicknames {
		if _, err := tx.ExecContext(ctx, store.InsertNicknameSQL(), app.AppID, i, nickname); err != nil {
			return err
		}
	}
	for i, hmiType := range params.AppHMITypes {
		if _, err := tx.ExecContext(ctx, store.InsertAppHMITypeSQL(), app.AppID, i, policy.EnumToJsonString(hmiType)); err != nil {
			return err
		}
	}
	for i, reqType := range params.RequestTypes {
		if _, err := tx.ExecContext(ctx, store.InsertRequestTypeSQL(), app.AppID, i, policy.EnumToJsonString(reqType)); err != nil {
			return err
		}
	}

	return nil
}

// SetDefaultPolicy deletes the app's groups, copies the default app's
// ten-column row onto app_id, turns off preloaded_pt in module_config, and
// re-inserts the default app's group list under app_id, marking is_default.
func (t *Table) SetDefaultPolicy(ctx context.Context, tx *store.Tx, appID string) error {
	if _, err := tx.ExecContext(ctx, store.DeleteAppGroupsForAppSQL(), appID); err != nil {
		return err
	}

	if err := t.CopyApplication(ctx, tx, policy.DefaultID, appID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, store.SetPreloadedPTSQL(), false); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, store.CopyAppGroupsSQL(), appID, policy.DefaultID); err != nil {
		return err
	}

	_, err := tx.ExecContext(ctx, store.SetIsDefaultSQL(), true, appID)
	return err
}

// CopyApplication copies the ten-column application row from src to dst,
// replacing any row dst already has.
func (t *Table) CopyApplication(ctx context.Context, tx *store.Tx, src, dst string) error {
	_, err := tx.ExecContext(ctx, store.CopyApplicationSQL(), dst, src)
	return err
}

// SaveConsumerFriendlyMessages applies the "absent means preserve" rule: if
// messages is Unset, no messages/version writes occur at all. Otherwise it
// updates the version and re-inserts languages and message types. The
// per-string body write is a deliberate no-op: the concrete strings are
// OEM-specific and live elsewhere.
func (t *Table) SaveConsumerFriendlyMessages(ctx context.Context, tx *store.Tx, cfm policy.Field[policy.ConsumerFriendlyMessages]) error {
	value, ok := cfm.Value()
	if !ok {
		return nil
	}
	messages, ok := value.Messages.Value()
	if !ok {
		return nil
	}

	if _, err := tx.ExecContext(ctx, store.UpdateMessagesVersionSQL(), value.Version); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, store.DeleteMessageStringsSQL()); err != nil {
		return err
	}

	for messageType, mt := range messages {
		for language, body := range mt.Languages {
			if err := t.SaveMessageString(ctx, tx, messageType, language, body); err != nil {
				return err
			}
		}
	}
	return nil
}

// SaveMessageString is a deliberate no-op: message bodies are OEM-specific
// and are delivered through a different channel than this component. Only
// the (message_type, language) shape is recorded, with a null body, so that
// a subsequent load reproduces the same structural keys.
func (t *Table) SaveMessageString(ctx context.Context, tx *store.Tx, messageType, language string, _ policy.MessageString) error {
	_, err := tx.ExecContext(ctx, store.InsertMessageStringSQL(), messageType, language, nil)
	return err
}

// SaveDeviceData replaces the full set of paired device identifiers.
func (t *Table) SaveDeviceData(ctx context.Context, tx *store.Tx, data policy.DeviceData) error {
	if _, err := tx.ExecContext(ctx, store.DeleteDeviceDataSQL()); err != nil {
		return err
	}
	for id := range data.DeviceIDs {
		if _, err := tx.ExecContext(ctx, store.InsertDeviceIDSQL(), id); err != nil {
			return err
		}
	}
	return nil
}

// SaveUsageAndErrorCounts replaces every application's usage/error counters.
func (t *Table) SaveUsageAndErrorCounts(ctx context.Context, tx *store.Tx, counts policy.UsageAndErrorCounts) error {
	if _, err := tx.ExecContext(ctx, store.DeleteUsageAndErrorCountsSQL()); err != nil {
		return err
	}
	for appID, a := range counts.AppLevel {
		if _, err := tx.ExecContext(ctx, store.InsertUsageAndErrorCountSQL(),
			appID, a.CountOfTLSErrors, a.MinutesInHMIFull, a.MinutesInHMILimited, a.MinutesInHMIBackground,
			a.CountOfUserSelections, a.CountOfRejectedRPCCalls, a.CountOfRPCsSentInHMINone,
			a.CountOfRemovalsMisbehaving, a.CountOfRunAttemptsWhileRevoked); err != nil {
			return err
		}
	}
	return nil
}

func fieldToNullString(f policy.Field[string]) any {
	v, ok := f.Value()
	if !ok {
		return nil
	}
	return v
}
