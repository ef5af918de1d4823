// Package services implements the driving port interfaces.
// Services contain the launcher logic: the federated sources, the
// orchestrator that merges them, settings and background refresh.
// They call out to the platform only through driven ports.
//
// Services are pure Go with no CGO or platform dependencies.
package services
