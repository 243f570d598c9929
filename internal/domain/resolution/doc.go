// Package resolution implements the cross-channel product identity
// resolution and unit-conversion engine.
//
// Given a raw channel-specific SKU/name and a sold quantity, the engine
// deterministically resolves the record to a canonical product
// identity, computes the true base-unit quantity sold, assigns a
// confidence score, and emits an auditable step-by-step trace.
//
// The engine is a pure computation library: all reference data is
// supplied up front as an immutable Snapshot, strategies never perform
// I/O, and re-running resolution on an identical snapshot produces an
// identical result and trace.
package resolution
