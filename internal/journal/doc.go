// Package journal is the single place journal state changes. It owns the
// progress ledger, the skill tree, the flashcard deck and the trade ledger,
// runs every command under one lock, and after each command settles the
// derived state: skills are reconciled and achievements evaluated, and the
// resulting command objects (unlock an achievement, grant XP) are applied
// until nothing new qualifies.
//
// Events describing each change are emitted after the lock is released.
package journal
