// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package pt

import (
	"context"
	"fmt"

	"github.com/rkhiriev/policytable/internal/policy"
	"github.com/rkhiriev/policytable/internal/store"
)

// GenerateSnapshot materialises a fresh policy.Document by calling every
// Gather* method in order. A Gather* call that fails to prepare its select
// logs a warning and leaves its sub-document Unset; load never partially
// aborts and callers must treat Unset fields as absent.
func (t *Table) GenerateSnapshot(ctx context.Context) policy.Document {
	var doc policy.Document

	if meta, err := t.GatherModuleMeta(ctx); err == nil {
		doc.ModuleMeta = meta
	} else {
		t.log.Warn().Err(err).Str("func", "GenerateSnapshot").Str("section", "module_meta").Msg("gather failed")
	}

	if cfg, err := t.GatherModuleConfig(ctx); err == nil {
		doc.ModuleConfig = cfg
	} else {
		t.log.Warn().Err(err).Str("func", "GenerateSnapshot").Str("section", "module_config").Msg("gather failed")
	}

	if counts, err := t.GatherUsageAndErrorCounts(ctx); err == nil {
		doc.UsageAndErrorCounts = counts
	} else {
		t.log.Warn().Err(err).Str("func", "GenerateSnapshot").Str("section", "usage_and_error_counts").Msg("gather failed")
	}

	if deviceData, err := t.GatherDeviceData(ctx); err == nil {
		doc.DeviceData = deviceData
	} else {
		t.log.Warn().Err(err).Str("func", "GenerateSnapshot").Str("section", "device_data").Msg("gather failed")
	}

	if groups, err := t.GatherFunctionalGroupings(ctx); err == nil {
		doc.FunctionalGroupings = groups
	} else {
		t.log.Warn().Err(err).Str("func", "GenerateSnapshot").Str("section", "functional_groupings").Msg("gather failed")
	}

	if messages, err := t.GatherConsumerFriendlyMessages(ctx); err == nil {
		doc.ConsumerFriendlyMessages = messages
	} else {
		t.log.Warn().Err(err).Str("func", "GenerateSnapshot").Str("section", "consumer_friendly_messages").Msg("gather failed")
	}

	apps, device, err := t.GatherApplicationPoliciesSection(ctx)
	if err == nil {
		doc.ApplicationPolicies = apps
		doc.Device = device
	} else {
		t.log.Warn().Err(err).Str("func", "GenerateSnapshot").Str("section", "application_policies").Msg("gather failed")
	}

	return doc
}

// GatherModuleMeta loads the module_meta singleton row.
func (t *Table) GatherModuleMeta(ctx context.Context) (policy.Field[policy.ModuleMeta], error) {
	row, release, err := t.driver.QueryRow(ctx, store.SelectModuleMetaSQL())
	if err != nil {
		return policy.Field[policy.ModuleMeta]{}, err
	}
	defer release()

	var m policy.ModuleMeta
	if err = row.Scan(&m.PTExchangedAtOdometerX, &m.PTExchangedXDaysAfterEpoch, &m.IgnitionCyclesSinceLastExchange, &m.FlagUpdateRequired, &m.DBVersion); err != nil {
		return policy.Field[policy.ModuleMeta]{}, err
	}
	return policy.NewSet(m), nil
}

// GatherModuleConfig loads the module_config singleton row along with its
// retry schedule, notification limits and endpoint table.
func (t *Table) GatherModuleConfig(ctx context.Context) (policy.Field[policy.ModuleConfig], error) {
	row, release, err := t.driver.QueryRow(ctx, store.SelectModuleConfigSQL())
	if err != nil {
		return policy.Field[policy.ModuleConfig]{}, err
	}
	defer release()

	var cfg policy.ModuleConfig
	var make_, model, year, preloadedDate, certificate nullableString
	if err = row.Scan(&cfg.PreloadedPT, &cfg.ExchangeAfterXIgnitionCycles, &cfg.ExchangeAfterXKilometers, &cfg.ExchangeAfterXDays, &cfg.TimeoutAfterXSeconds, &make_, &model, &year, &preloadedDate, &certificate); err != nil {
		return policy.Field[policy.ModuleConfig]{}, err
	}
	cfg.VehicleMake = make_.toField()
	cfg.VehicleModel = model.toField()
	cfg.VehicleYear = year.toField()
	cfg.PreloadedDate = preloadedDate.toField()
	cfg.Certificate = certificate.toField()

	if cfg.SecondsBetweenRetries, err = t.gatherSecondsBetweenRetries(ctx); err != nil {
		return policy.Field[policy.ModuleConfig]{}, err
	}
	if cfg.NotificationsPerMinuteByPriority, err = t.gatherNotificationsPerMinute(ctx); err != nil {
		return policy.Field[policy.ModuleConfig]{}, err
	}
	if cfg.Endpoints, err = t.gatherEndpoints(ctx); err != nil {
		return policy.Field[policy.ModuleConfig]{}, err
	}

	return policy.NewSet(cfg), nil
}

func (t *Table) gatherSecondsBetweenRetries(ctx context.Context) ([]int, error) {
	rows, err := t.driver.Query(ctx, store.SelectSecondsBetweenRetriesSQL())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var seconds int
		if err = rows.Scan(&seconds); err != nil {
			return nil, err
		}
		out = append(out, seconds)
	}
	return out, rows.Err()
}

func (t *Table) gatherNotificationsPerMinute(ctx context.Context) (map[policy.Priority]int, error) {
	rows, err := t.driver.Query(ctx, store.SelectNotificationsPerMinuteSQL())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[policy.Priority]int)
	for rows.Next() {
		var token string
		var perMinute int
		if err = rows.Scan(&token, &perMinute); err != nil {
			return nil, err
		}
		if p, ok := policy.PriorityFromJsonString(token); ok {
			out[p] = perMinute
		}
	}
	return out, rows.Err()
}

func (t *Table) gatherEndpoints(ctx context.Context) (map[string]map[string][]string, error) {
	rows, err := t.driver.Query(ctx, store.SelectAllEndpointsSQL())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]map[string][]string)
	for rows.Next() {
		var serviceType, appID, url string
		var ordinal int
		if err = rows.Scan(&serviceType, &appID, &ordinal, &url); err != nil {
			return nil, err
		}
		if out[serviceType] == nil {
			out[serviceType] = make(map[string][]string)
		}
		out[serviceType][appID] = append(out[serviceType][appID], url)
	}
	return out, rows.Err()
}

// GatherFunctionalGroupings populates a map keyed by group name. For each
// group, a nested select over rpcs fills hmi_levels and parameters,
// deduplicating (insertion-ordered, value-unique) and discarding tokens
// that fail enum conversion. A group with no rpcs at all has its Rpcs field
// explicitly set to null.
func (t *Table) GatherFunctionalGroupings(ctx context.Context) (policy.Field[map[string]policy.FunctionalGroup], error) {
	rows, err := t.driver.Query(ctx, store.SelectFunctionalGroupsSQL())
	if err != nil {
		return policy.Field[map[string]policy.FunctionalGroup]{}, err
	}

	type groupRow struct {
		id     int64
		name   string
		prompt nullableString
	}
	var groupRows []groupRow
	for rows.Next() {
		var g groupRow
		if err = rows.Scan(&g.id, &g.name, &g.prompt); err != nil {
			rows.Close()
			return policy.Field[map[string]policy.FunctionalGroup]{}, err
		}
		groupRows = append(groupRows, g)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return policy.Field[map[string]policy.FunctionalGroup]{}, err
	}

	out := make(map[string]policy.FunctionalGroup, len(groupRows))
	for _, g := range groupRows {
		rpcs, err := t.gatherRpcsForGroup(ctx, g.id)
		if err != nil {
			return policy.Field[map[string]policy.FunctionalGroup]{}, err
		}

		fg := policy.FunctionalGroup{
			ID:                g.id,
			Name:              g.name,
			UserConsentPrompt: g.prompt.toField(),
		}
		if len(rpcs) == 0 {
			fg.Rpcs = policy.NewNull[map[string]policy.RpcPermission]()
		} else {
			fg.Rpcs = policy.NewSet(rpcs)
		}
		out[g.name] = fg
	}

	return policy.NewSet(out), nil
}

func (t *Table) gatherRpcsForGroup(ctx context.Context, groupID int64) (map[string]policy.RpcPermission, error) {
	names, err := t.driver.Query(ctx, store.SelectRpcsForGroupSQL(), groupID)
	if err != nil {
		return nil, err
	}
	var rpcNames []string
	for names.Next() {
		var name string
		if err = names.Scan(&name); err != nil {
			names.Close()
			return nil, err
		}
		rpcNames = append(rpcNames, name)
	}
	names.Close()
	if err = names.Err(); err != nil {
		return nil, err
	}

	out := make(map[string]policy.RpcPermission, len(rpcNames))
	for _, name := range rpcNames {
		detail, err := t.driver.Query(ctx, store.SelectRpcDetailsSQL(), groupID, name)
		if err != nil {
			return nil, err
		}

		perm := policy.RpcPermission{}
		seenLevel := make(map[policy.HmiLevel]bool)
		seenParam := make(map[policy.Parameter]bool)
		for detail.Next() {
			var levelToken string
			var paramToken nullableString
			if err = detail.Scan(&levelToken, &paramToken); err != nil {
				detail.Close()
				return nil, err
			}
			if level, ok := policy.HmiLevelFromJsonString(levelToken); ok && !seenLevel[level] {
				seenLevel[level] = true
				perm.HmiLevels = append(perm.HmiLevels, level)
			}
			if p, ok := paramToken.Value(); ok {
				if param, ok := policy.ParameterFromJsonString(p); ok && !seenParam[param] {
					seenParam[param] = true
					perm.Parameters = append(perm.Parameters, param)
				}
			}
		}
		detail.Close()
		if err = detail.Err(); err != nil {
			return nil, err
		}
		out[name] = perm
	}

	return out, nil
}

// applicationRow is one scanned row of the application table, as rendered
// by store.BuildSelectApplications.
type applicationRow struct {
	appID              string
	priorityToken      string
	isNull             bool
	memoryKB           int
	heartBeatTimeoutMs int64
	certificate        nullableString
	isDefault          bool
	isPredata          bool
	isRevoked          bool
	inheritsFrom       nullableString
}

// GatherApplicationPoliciesSection loads every application row in a single
// query built by store.BuildSelectApplications, then folds the
// device-priority row into the returned device field and every other
// app_id into the returned application-policy map.
func (t *Table) GatherApplicationPoliciesSection(ctx context.Context) (policy.Field[map[string]policy.ApplicationPolicy], policy.Field[policy.DevicePolicy], error) {
	query, args, err := store.BuildSelectApplications(nil)
	if err != nil {
		return policy.Field[map[string]policy.ApplicationPolicy]{}, policy.Field[policy.DevicePolicy]{}, fmt.Errorf("%w: %w", store.ErrBuildingSQLQuery, err)
	}

	rows, err := t.driver.Query(ctx, query, args...)
	if err != nil {
		return policy.Field[map[string]policy.ApplicationPolicy]{}, policy.Field[policy.DevicePolicy]{}, err
	}
	var appRows []applicationRow
	for rows.Next() {
		var r applicationRow
		if err = rows.Scan(&r.appID, &r.priorityToken, &r.isNull, &r.memoryKB, &r.heartBeatTimeoutMs, &r.certificate, &r.isDefault, &r.isPredata, &r.isRevoked, &r.inheritsFrom); err != nil {
			rows.Close()
			return policy.Field[map[string]policy.ApplicationPolicy]{}, policy.Field[policy.DevicePolicy]{}, err
		}
		appRows = append(appRows, r)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return policy.Field[map[string]policy.ApplicationPolicy]{}, policy.Field[policy.DevicePolicy]{}, err
	}

	apps := make(map[string]policy.ApplicationPolicy, len(appRows))
	var device policy.Field[policy.DevicePolicy]

	for _, r := range appRows {
		if r.appID == policy.DeviceID {
			d, err := t.gatherDevicePolicy(ctx)
			if err != nil {
				return policy.Field[map[string]policy.ApplicationPolicy]{}, policy.Field[policy.DevicePolicy]{}, err
			}
			device = d
			continue
		}

		app, err := t.applicationPolicyFromRow(ctx, r)
		if err != nil {
			return policy.Field[map[string]policy.ApplicationPolicy]{}, policy.Field[policy.DevicePolicy]{}, err
		}
		apps[r.appID] = app
	}

	return policy.NewSet(apps), device, nil
}

func (t *Table) gatherDevicePolicy(ctx context.Context) (policy.Field[policy.DevicePolicy], error) {
	row, release, err := t.driver.QueryRow(ctx, store.SelectDevicePrioritySQL())
	if err != nil {
		return policy.Field[policy.DevicePolicy]{}, err
	}
	defer release()

	var token string
	if err = row.Scan(&token); err != nil {
		return policy.Field[policy.DevicePolicy]{}, err
	}
	priority, _ := policy.PriorityFromJsonString(token)
	return policy.NewSet(policy.DevicePolicy{Priority: priority}), nil
}

// applicationPolicyFromRow turns an already-scanned application row into a
// policy.ApplicationPolicy, fetching its groups/nicknames/hmi
// types/request types when the row is a concrete (non-revoked,
// non-inheriting) policy.
func (t *Table) applicationPolicyFromRow(ctx context.Context, r applicationRow) (policy.ApplicationPolicy, error) {
	ap := policy.ApplicationPolicy{AppID: r.appID}

	switch {
	case r.isRevoked || r.isNull:
		ap.Value.IsRevoked = true
		return ap, nil
	case r.isDefault && r.appID != policy.DefaultID:
		ap.Value.InheritsFrom = policy.DefaultID
		return ap, nil
	case r.isPredata && r.appID != policy.PreDataConsentID:
		ap.Value.InheritsFrom = policy.PreDataConsentID
		return ap, nil
	}
	if from, ok := r.inheritsFrom.Value(); ok && from != "" {
		ap.Value.InheritsFrom = from
		return ap, nil
	}

	priority, _ := policy.PriorityFromJsonString(r.priorityToken)
	params := policy.ApplicationParams{
		Priority:           priority,
		MemoryKB:           r.memoryKB,
		HeartBeatTimeoutMs: r.heartBeatTimeoutMs,
		Certificate:        r.certificate.toField(),
		IsDefault:          r.isDefault,
		IsPredata:          r.isPredata,
		IsRevoked:          r.isRevoked,
	}

	var err error
	if params.Groups, err = t.gatherStrings(ctx, store.SelectAppGroupsSQL(), r.appID); err != nil {
		return policy.ApplicationPolicy{}, err
	}
	if params.Nicknames, err = t.gatherStrings(ctx, store.SelectNicknamesSQL(), r.appID); err != nil {
		return policy.ApplicationPolicy{}, err
	}

	hmiTokens, err := t.gatherStrings(ctx, store.SelectAppHMITypesSQL(), r.appID)
	if err != nil {
		return policy.ApplicationPolicy{}, err
	}
	for _, token := range hmiTokens {
		if v, ok := policy.AppHMITypeFromJsonString(token); ok {
			params.AppHMITypes = append(params.AppHMITypes, v)
		}
	}

	requestTokens, err := t.gatherStrings(ctx, store.SelectRequestTypesSQL(), r.appID)
	if err != nil {
		return policy.ApplicationPolicy{}, err
	}
	for _, token := range requestTokens {
		if v, ok := policy.RequestTypeFromJsonString(token); ok {
			params.RequestTypes = append(params.RequestTypes, v)
		}
	}

	ap.Value.Params = policy.NewSet(params)
	return ap, nil
}

func (t *Table) gatherStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := t.driver.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err = rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GatherConsumerFriendlyMessages loads the version singleton and, when any
// message strings are stored, the per-type/per-language message map.
func (t *Table) GatherConsumerFriendlyMessages(ctx context.Context) (policy.Field[policy.ConsumerFriendlyMessages], error) {
	row, release, err := t.driver.QueryRow(ctx, store.SelectConsumerFriendlyMessagesSQL())
	if err != nil {
		return policy.Field[policy.ConsumerFriendlyMessages]{}, err
	}
	var version string
	scanErr := row.Scan(&version)
	release()
	if scanErr != nil {
		return policy.Field[policy.ConsumerFriendlyMessages]{}, scanErr
	}

	rows, err := t.driver.Query(ctx, store.SelectMessageStringsSQL())
	if err != nil {
		return policy.Field[policy.ConsumerFriendlyMessages]{}, err
	}
	defer rows.Close()

	messages := make(map[string]policy.MessageType)
	for rows.Next() {
		var messageType, language string
		var body nullableString
		if err = rows.Scan(&messageType, &language, &body); err != nil {
			return policy.Field[policy.ConsumerFriendlyMessages]{}, err
		}
		mt, ok := messages[messageType]
		if !ok {
			mt = policy.MessageType{Languages: make(map[string]policy.MessageString)}
		}
		mt.Languages[language] = policy.MessageString{Body: body.ValueOr("")}
		messages[messageType] = mt
	}
	if err = rows.Err(); err != nil {
		return policy.Field[policy.ConsumerFriendlyMessages]{}, err
	}

	cfm := policy.ConsumerFriendlyMessages{Version: version}
	if len(messages) > 0 {
		cfm.Messages = policy.NewSet(messages)
	}
	return policy.NewSet(cfm), nil
}

// GatherDeviceData loads the full set of paired device identifiers.
func (t *Table) GatherDeviceData(ctx context.Context) (policy.Field[policy.DeviceData], error) {
	ids, err := t.gatherStrings(ctx, store.SelectDeviceIDsSQL())
	if err != nil {
		return policy.Field[policy.DeviceData]{}, err
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return policy.NewSet(policy.DeviceData{DeviceIDs: set}), nil
}

// GatherUsageAndErrorCounts loads every application's usage/error counters.
func (t *Table) GatherUsageAndErrorCounts(ctx context.Context) (policy.Field[policy.UsageAndErrorCounts], error) {
	rows, err := t.driver.Query(ctx, store.SelectUsageAndErrorCountsSQL())
	if err != nil {
		return policy.Field[policy.UsageAndErrorCounts]{}, err
	}
	defer rows.Close()

	appLevel := make(map[string]policy.AppLevel)
	for rows.Next() {
		var appID string
		var a policy.AppLevel
		if err = rows.Scan(&appID, &a.CountOfTLSErrors, &a.MinutesInHMIFull, &a.MinutesInHMILimited,
			&a.MinutesInHMIBackground, &a.CountOfUserSelections, &a.CountOfRejectedRPCCalls,
			&a.CountOfRPCsSentInHMINone, &a.CountOfRemovalsMisbehaving, &a.CountOfRunAttemptsWhileRevoked); err != nil {
			return policy.Field[policy.UsageAndErrorCounts]{}, err
		}
		appLevel[appID] = a
	}
	if err = rows.Err(); err != nil {
		return policy.Field[policy.UsageAndErrorCounts]{}, err
	}

	return policy.NewSet(policy.UsageAndErrorCounts{AppLevel: appLevel}), nil
}
