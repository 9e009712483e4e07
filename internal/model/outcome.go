package model

// Outcome records the result of executing one Job. OutputPath is set only on
// success; Err is set only on failure. Converted reports whether a download
// was re-encoded into the requested target format during post-processing.
type Outcome struct {
	JobID      string
	Index      int
	Input      string
	Title      string
	Success    bool
	OutputPath string
	Converted  bool
	Err        string
}

// Succeeded creates a successful outcome for the job.
func Succeeded(job Job, outputPath string) Outcome {
	return Outcome{
		JobID:      job.ID,
		Index:      job.Index,
		Input:      job.Input,
		Title:      job.Title,
		Success:    true,
		OutputPath: outputPath,
	}
}

// Failed creates a failed outcome for the job.
func Failed(job Job, err error) Outcome {
	o := Outcome{
		JobID:   job.ID,
		Index:   job.Index,
		Input:   job.Input,
		Title:   job.Title,
		Success: false,
	}
	if err != nil {
		o.Err = err.Error()
	}
	return o
}

// WithOutput derives a new outcome whose final file moved during
// post-processing. The original job/outcome pairing is preserved.
func (o Outcome) WithOutput(outputPath string, converted bool) Outcome {
	out := o
	out.OutputPath = outputPath
	out.Converted = converted
	return out
}

// DisplayName returns the title when known, otherwise the input identity.
func (o Outcome) DisplayName() string {
	if o.Title != "" {
		return o.Title
	}
	return o.Input
}

// BatchResult is an ordered collection of outcomes, one per input job, in the
// same order as the input list.
type BatchResult []Outcome

// Failures returns the outcomes that did not succeed, preserving order.
func (br BatchResult) Failures() []Outcome {
	var failed []Outcome
	for _, o := range br {
		if !o.Success {
			failed = append(failed, o)
		}
	}
	return failed
}

// SuccessPaths returns the output paths of successful outcomes, preserving order.
func (br BatchResult) SuccessPaths() []string {
	var paths []string
	for _, o := range br {
		if o.Success && o.OutputPath != "" {
			paths = append(paths, o.OutputPath)
		}
	}
	return paths
}
