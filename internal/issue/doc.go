// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors and a catalog of Markdown-formatted
// remediation guides.
//
// An ActionableError carries the operation that failed, the resource involved,
// suggestions and an optional catalog Id. The CLI prints the short form by
// default and renders the matching catalog entry with glamour when one is set.
package issue
