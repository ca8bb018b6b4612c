//go:build amd64 || arm64 || 386 || ppc64le

package platform

// unalignedLoads reports whether the architecture loads words from any
// address without faulting.
const unalignedLoads = true
