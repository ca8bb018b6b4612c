// Package platform validates the memory-layout assumptions that raw address
// arithmetic relies on and provides the unchecked little-endian reads used by
// off-heap regions.
//
// # Validation
//
// Validate runs once per process. It checks that consecutive elements of
// primitive arrays are exactly as far apart as their nominal width. Every
// hashing entry point calls Validate and refuses to run while it reports an
// error.
//
// # Raw Reads
//
// ReadU8, ReadU16, ReadU32 and ReadU64 read at an absolute address without any
// bounds check. Callers must have checked the address against a live region
// first and must pass the region owner so it stays reachable for the read.
// Until Validate succeeds they decode byte by byte; afterwards, on
// little-endian hosts that allow unaligned loads, they load whole words.
package platform
