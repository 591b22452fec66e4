//go:build !evict_debug

package evict

const debugging = false

func assert(bool, string) {}
