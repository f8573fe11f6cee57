package stepflow

// ProgressFunc receives the name of the step about to run and the fraction of the work already done.
type ProgressFunc func(message string, fraction float64)

// StepOption configures a step when it is added to a pipeline.
type StepOption[C any] func(s *Step[C])

// StepWeight sets the share of the progress bar owned by the step.
// Weights are normalised at run time; when every weight is zero the steps share the bar evenly.
func StepWeight[C any](weight float64) StepOption[C] {
	return func(s *Step[C]) {
		s.Weight = weight
	}
}
