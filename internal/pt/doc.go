// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package pt is the Persistence Engine, Decision Engine and Lifecycle
// Controller: it maps between the in-memory policy.Document and the
// relational rows defined by package store, answers permission and
// update-cadence questions, and owns the open/create/refresh/drop lifecycle
// of the policy database file.
package pt
