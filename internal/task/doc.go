// Package task implements durable background work: tasks are persisted
// before being queued in memory, workers process them from a channel, and
// unfinished tasks are recovered on startup so a crash never silently
// drops work. Resume analysis is the one task type today.
package task
