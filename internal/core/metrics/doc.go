// Package metrics implements the pure text similarity functions: edit
// distance, Jaccard and cosine token similarity, their weighted blend, and
// line/word match detail.
//
// Every function is deterministic and free of side effects, so it may be
// called concurrently without synchronization. Edit distance costs
// O(len(a)*len(b)) time; callers comparing long documents should cap the
// input length before calling in.
package metrics
