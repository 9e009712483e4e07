package batch

// Package batch runs a list of jobs through a single-item executor under a
// bounded concurrency cap. One item's failure never aborts the others, and
// results always come back in input order regardless of completion order.
