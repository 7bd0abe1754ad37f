// Package domain contains the core entities of the journal: flashcards, skill
// nodes, achievements, the progress snapshot, trades and notes. It has no
// knowledge of storage, transport or time sources.
package domain
