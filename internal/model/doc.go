package model

// Package model defines domain data structures shared across the tool: jobs,
// per-job outcomes, batch results, and media type enums. An Outcome is created
// exactly once per job and treated as immutable; post-processing derives a new
// outcome rather than rewriting the recorded one.
