// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides deterministic sources and block patterns for
// tests across the module.
package audiotest
