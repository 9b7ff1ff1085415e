// Package services holds error classification helpers and context plumbing
// shared by the evidence producers and their backing clients.
package services
