// Package progress implements the progress ledger: experience points, the
// daily learning streak and the append-only sets of read notes, completed
// skills and unlocked achievements. The level is always derived from XP and
// never stored.
//
// Every insert-then-grant operation is idempotent: the set membership test
// runs before the insert, so replaying an event never grants XP twice.
package progress
