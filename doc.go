// Package evict implements a [Cache] with pluggable replacement policies:
// LRU, LRU-K, 2Q, and ARC, selected by [PolicyConfig].
//
// All four policies share one storage discipline: entries live in a
// handle-addressed arena (never raw pointer graphs), the key index maps
// to handles, and every ordering structure links handles. The policies
// differ only in which orderings they keep and how they pick a victim.
// Policy behaviour is derived from the [LRU-K paper], the [2Q paper],
// and the [ARC paper].
//
// Glossary and invariants:
//
//   - Entry
//
//     One cached key/value pair plus bookkeeping. Owned solely by the
//     entry store; referenced everywhere else by handle.
//
//   - Handle
//
//     Opaque index into the entry arena. Stable while the entry is
//     resident; invalidated atomically with the entry on removal.
//
//   - Resident set
//
//     Entries currently holding a value. Never exceeds capacity;
//     every put of a new key at capacity evicts exactly one entry
//     before returning.
//
//   - K-th reference (LRU-K)
//
//     The timestamp of the K-th most recent access to an entry, used
//     as its eviction rank. Entries with fewer than K recorded
//     accesses always rank below (evict before) entries with a full
//     history, tie-broken by insertion order.
//
//   - Probationary queue A1 / main queue Am (2Q)
//
//     A1 is a FIFO filter for first-touch keys; a repeat reference
//     while still in A1 promotes to Am. A key can never enter Am on
//     first touch. A1 overflow is a pure FIFO drop that never
//     displaces an Am resident, which is the scan-resistance property
//     2Q exists to provide.
//
//   - T1 / T2 / B1 / B2 (ARC)
//
//     T1 holds keys seen once recently, T2 keys seen at least twice.
//     B1 and B2 are their ghost lists: keys of evicted entries, no
//     values, each independently capped at capacity.
//
//   - Ghost list
//
//     Short-term memory of evicted keys used purely to detect
//     mis-eviction; dropping a ghost past its bound is pure
//     forgetting and carries no adaptation signal.
//
//   - Adaptation parameter p (ARC)
//
//     The learned target size of T1, within [0, capacity]. A ghost
//     hit in B1 ("evicted from T1 too early") raises p; a ghost hit
//     in B2 lowers it. p is per cache instance, never shared.
//
// Operations are synchronous and non-blocking; a single [Cache] must
// be guarded by the caller. [Sharded] partitions the key space over
// independent locked instances for concurrent workloads; the policies
// keep no cross-shard state, so capacity, p, and ghost lists are all
// per shard.
//
// [LRU-K paper]: https://dl.acm.org/doi/10.1145/170036.170081
// [2Q paper]: https://www.vldb.org/conf/1994/P439.PDF
// [ARC paper]: https://www.usenix.org/conference/fast-03/arc-self-tuning-low-overhead-replacement-cache
package evict
