//go:build evict_debug

package evict

const debugging = true

func assert(cond bool, message string) {
	if !cond {
		panic(message)
	}
}
