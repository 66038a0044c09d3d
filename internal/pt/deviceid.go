// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package pt

import "github.com/google/uuid"

// DeviceIDGenerator produces new device identifiers for GatherDeviceData /
// SaveDeviceData consumers that need to register a previously-unseen head
// unit or paired phone.
type DeviceIDGenerator struct{}

// NewDeviceIDGenerator constructs a DeviceIDGenerator.
func NewDeviceIDGenerator() *DeviceIDGenerator {
	return &DeviceIDGenerator{}
}

// Generate returns a new time-ordered (v7) UUID string, falling back to a
// random v4 if uuid.NewV7 returns an error.
func (g *DeviceIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return v7.String()
}
