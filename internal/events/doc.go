// Package events carries journal domain events from the component that
// changed state to whoever needs to react: the snapshot persister, the
// audit log, the reminder scheduler.
//
// The primary components are:
// - Event: something that happened in the journal, with a JSON payload
// - EventHandler: reacts to events
// - EventEmitter: fans an event out to handlers
package events
