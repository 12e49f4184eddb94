// Package tui renders a live view of a running cracking job.
// It implements a driving adapter following hexagonal architecture principles:
// the model only consumes a driving.Job and never touches the core directly.
package tui
