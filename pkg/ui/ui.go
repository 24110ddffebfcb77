// Package ui renders the user-facing notices and traces of a setup run.
//
// Notices are not logs: they go to the reporter's writer (normally stdout)
// and must read the same whether or not the run is a dry run.
package ui
