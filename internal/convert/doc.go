package convert

// Package convert executes file conversions: one file per job through the
// external encoder, batches of files through the orchestrator. A job's
// failure is captured into its outcome and never escapes to the caller.
