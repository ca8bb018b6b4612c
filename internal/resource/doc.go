// Package resource bounds the memory, concurrency and read bandwidth used
// while digesting blobs.
//
// A nil *Controller is valid and imposes no limits.
package resource
