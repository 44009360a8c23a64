// Package journal persists controller amplifier events to SQLite.
//
// Every PCM action and platform notification the controller dispatches
// lands as one row in the amp_events table, with a JSON detail column
// carrying the event-kind specific fields. The journal is diagnostic
// data: reads happen from operator tooling, writes from the audio
// dispatch path, so inserts stay small and single-row.
package journal
