// SPDX-License-Identifier: MPL-2.0

// Package container talks to the local container engine (Docker or Podman)
// through its CLI.
//
// Only two questions are ever asked: which containers are running, and can a
// given shell be started inside one of them. DockerEngine and PodmanEngine both
// embed BaseCLIEngine, which builds the arguments and runs the binary through an
// injectable ExecCommandFunc.
//
// NewEngine(EngineType) falls back to the other engine when the preferred one
// is unavailable. Discover turns every failure into "no containers", which the
// rest of the program reads as "Docker unreachable".
package container
