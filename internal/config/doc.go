// Package config provides configuration loading, merging, and validation
// facilities for the policy table core.
//
// Configuration is assembled from multiple sources, layered so that the
// first source to set a field wins and later sources only fill fields
// still at their zero value:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. built-in defaults, for any field still zero after the above
//
// The entry point is [GetStructuredConfig], which returns a
// [StructuredConfig]. Call [StructuredConfig.PolicySettings] to obtain the
// [PolicySettings] collaborator consumed by the Lifecycle Controller.
package config
