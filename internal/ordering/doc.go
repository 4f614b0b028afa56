// Package ordering maintains the manual priority order of focused tasks.
//
// A task is focused when it carries the focus tag. Its position is the
// numeric sortOrder attribute, lower first, with a missing value read as 0.
// Promote and Demote move one task to the front or back by writing a single
// key; GarbageCollect and Compact renumber focused keys to 1..n and remove
// keys from tasks that are no longer focused.
//
// Every operation reads a fresh snapshot through a store.Gateway, plans its
// writes in memory and then applies them one by one. Nothing is kept between
// calls.
package ordering
