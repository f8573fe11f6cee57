// Package model provides the data structures shared by the stepflow package and its hooks.
// It defines the step descriptions passed to hooks, the outcome of a step,
// and the hook interface used by measure and drawer.
package model
