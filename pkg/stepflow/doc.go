// Package stepflow provides a sequential runner for validated multi-step workflows.
//
// A pipeline is an ordered list of named steps. Each step is either a validation or an action and receives the
// workflow configuration owned by the run. A step may return an updated configuration, which replaces the current one
// before the next step starts, so derived values produced by an early step (a saved file path for instance) are
// visible to the later ones.
//
// Steps never run concurrently. Before each step the runner reports the fraction of the work already done, computed
// from the step weights. The first step returning a ValidationError or an ExecutionError stops the run, and the run
// result carries the name of that step and its reason. Any other error, or a panic, is an unexpected fault: it is
// handed back to the caller untouched by the result type.
//
// Whatever the outcome, the cleanup callback given to Run is invoked exactly once, before Run returns or the panic
// resumes.
package stepflow
