// SPDX-License-Identifier: Apache-2.0

// Package client implements the interactive client application runtime.
//
// It wires the terminal UI, client services, and background upload workers
// into a single process lifecycle.
package client
