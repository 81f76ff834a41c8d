// Package state defines persistence-facing contracts for loading and saving
// header lists, plus a resolver that layers an extension header over its
// primary header.
//
// Responsibilities:
//   - Store only loads/saves a single list for a single Ref.
//   - Resolver loads the lists of one dataset and merges them through
//     layering.Stack, strongest first.
//   - The props package stays persistence-agnostic; all storage logic lives
//     behind Store implementations supplied by consumers.
//
// Data flow:
//
//	Store -> Resolver -> layering.NewStack(...).Merge(...) -> *props.List
//
// Provenance:
//
//	Meta.SnapshotID is carried onto layering.Layer.SnapshotID, which is then
//	observable through Resolution.Trace.
package state
