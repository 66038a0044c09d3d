// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package pt

import (
	"database/sql"

	"github.com/rkhiriev/policytable/internal/policy"
)

// nullableString scans a nullable TEXT column, distinguishing SQL NULL
// (policy.Null) from a present value (policy.Set) for every optional string
// column in the schema.
type nullableString struct {
	sql.NullString
}

func (n nullableString) toField() policy.Field[string] {
	if !n.Valid {
		return policy.NewNull[string]()
	}
	return policy.NewSet(n.String)
}

func (n nullableString) Value() (string, bool) {
	return n.String, n.Valid
}

func (n nullableString) ValueOr(fallback string) string {
	if !n.Valid {
		return fallback
	}
	return n.String
}
