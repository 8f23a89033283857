/*
Package dset provides a uniform key-value view (a “dataset”) over
heterogeneous backing stores: plain in-memory maps, on-demand computed
values, and files in several formats, plus combinators that build new
datasets out of existing ones without copying their data.

We implement:

1. The mapping contract: Dataset (Get, Contains, Keys) and MutableDataset
(adds Set, Delete). Read-only constructors return Dataset, writable ones
return MutableDataset, so the capability tier is fixed at construction.

2. A scoped lifecycle: Open/Close on every dataset, a no-op for variants
that own no resource, and real acquisition/release for file-backed ones.
Use Using to run a function with the scope held and release guaranteed.

3. Combinators: MapValues/MapValuesInv (transform values, optionally with an
inverse for write-through), MapKeys/MapKeysMutable (translate the key space
through a bijection), Zip/Zip2/Zip3/Compound (combine sources over their key
intersection), Union (first-match overlay), Subset, FilterKeys, Grouped
(two-level keys over named sub-datasets), and AutoSaving (read-through
persistence).

4. File-backed datasets behind a narrow Codec boundary. A codec either
decodes the whole mapping on open and re-encodes it on close (JSONCodec,
YAMLCodec, ArchiveCodec), or touches the backing store per call
(BoltCodec). New formats plug in without touching the combinator layer.

# Technical Details

**Composition.**
Wrappers hold references to their sources, never copies; a source may be
shared by any number of wrappers, and its lifetime belongs to the caller.
Wrapper lifecycles forward to the sources: a combinator over N sources
acquires them in order (rolling back on partial failure) and releases them
in reverse order, aggregating release errors.

**Key enumeration.**
Keys returns a finite, restartable iterator. Combinators whose membership
checks can fail compute the key set when Keys is called; value data is
never copied. A dataset never reports the same key twice, Contains(k) holds
exactly when k appears in Keys, and Get succeeds for every enumerated key.

**Concurrency.**
Operations are synchronous and single-threaded. A file-backed dataset
instance must not be shared across goroutines without external locking;
SyncMapDataset is the one variant that is safe for concurrent use.

**Errors.**
ErrKeyNotFound, ErrUnsupported and ErrNotOpen are sentinels usable with
errors.Is; KeyError, LifecycleError, ResourceError and BackendError carry
the context and unwrap to the cause. Nothing is swallowed: multi-source
release failures and body/close error pairs are joined with errors.Join.
*/
package dset
