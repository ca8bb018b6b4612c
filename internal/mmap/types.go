package mmap

import "errors"

// AccessPattern is a kernel hint about how mapped memory will be read.
type AccessPattern int

const (
	// AccessDefault gives no specific advice.
	AccessDefault AccessPattern = iota
	// AccessSequential expects a front-to-back scan, which is what hashing does.
	AccessSequential
	// AccessRandom expects scattered reads.
	AccessRandom
	// AccessWillNeed asks the kernel to start paging the range in.
	AccessWillNeed
	// AccessDontNeed tells the kernel the range can be dropped.
	AccessDontNeed
)

var (
	// ErrClosed is returned when using a closed mapping.
	ErrClosed = errors.New("mmap: mapping is closed")
	// ErrInvalidSize is returned for negative or unmappable sizes.
	ErrInvalidSize = errors.New("mmap: invalid size")
)
