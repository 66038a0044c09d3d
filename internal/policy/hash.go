// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package policy

// Djb2Hash computes Dan Bernstein's djb2 string hash. The exact recurrence
// (hash = hash*33 + c, seeded at 5381) must be preserved bit-for-bit: it is
// the source of both the schema version identity (a hash of the DDL text)
// and every functional group's stable surrogate id (abs(Djb2Hash(name))),
// and changing it would silently break on-disk compatibility with existing
// policy files.
func Djb2Hash(s string) int64 {
	var hash int64 = 5381
	for i := 0; i < len(s); i++ {
		hash = ((hash << 5) + hash) + int64(s[i])
	}
	return hash
}

// AbsDjb2Hash returns the absolute value of Djb2Hash(s), matching the
// functional group surrogate-key formula in spec §3/§9: abs(Djb2Hash(name)).
func AbsDjb2Hash(s string) int64 {
	h := Djb2Hash(s)
	if h < 0 {
		return -h
	}
	return h
}
