package evict

import "fmt"

type constError string

const (
	// ErrInvalidCapacity may be returned from [New] and [NewSharded].
	ErrInvalidCapacity = constError("invalid capacity")
	// ErrInvalidHistoryDepth may be returned from [New] with [LRUK].
	ErrInvalidHistoryDepth = constError("invalid history depth")
	// ErrInvalidRatio may be returned from [New] with [TwoQueue].
	ErrInvalidRatio = constError("invalid probationary ratio")
	// ErrInvalidPolicy may be returned from [New] when passed
	// a [PolicyConfig] type it does not recognize.
	ErrInvalidPolicy = constError("invalid policy")
	// ErrInvalidShardCount may be returned from [NewSharded].
	ErrInvalidShardCount = constError("invalid shard count")
)

func (errStr constError) Error() string { return string(errStr) }

func minCapacityError(capacity int) error {
	return fmt.Errorf(
		"%w: must be >=%d but %d was requested",
		ErrInvalidCapacity, MinimumCapacity, capacity)
}

func historyDepthError(k int) error {
	return fmt.Errorf(
		"%w: must be >=1 but %d was requested",
		ErrInvalidHistoryDepth, k)
}

func ratioError(ratio float64) error {
	return fmt.Errorf(
		"%w: must be within (0,1) but %v was requested",
		ErrInvalidRatio, ratio)
}

func shardCountError(shards, capacity int) error {
	return fmt.Errorf(
		"%w: must be within [1,capacity=%d] but %d was requested",
		ErrInvalidShardCount, capacity, shards)
}
