// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package version

// Version is set at build time via -ldflags
var Version = "dev"

// GetVersion returns the current version string
func GetVersion() string {
	return Version
}
