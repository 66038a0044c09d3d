// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store is the Storage Driver, Schema Catalog and Query Catalog:
// the capability layer over an embedded sqlite3 database, the DDL that
// defines its tables, and the named SQL statements the persistence and
// decision layers bind against. Nothing above internal/policy's types
// leaks in here; store only knows about columns and rows.
package store
