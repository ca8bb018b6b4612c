//go:build !(amd64 || arm64 || 386 || ppc64le)

package platform

const unalignedLoads = false
