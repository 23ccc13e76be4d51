// Package deps models Python requirement strings and computes new
// dependency lists for add and remove operations.
//
// The merge logic is deterministic: the only non-deterministic step, looking
// up the latest published version of a package, goes through the Resolver
// interface.
package deps
