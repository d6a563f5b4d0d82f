// Package core centralizes the domain contracts of the bot: the typed event
// records delivered by the platform's NDJSON streams, the Engine interface an
// external move-selection engine must satisfy, the Gateway interface for
// outbound platform calls, the StreamProvider interface for inbound streams,
// and the Session lifecycle state machine.
//
// Keeping the contracts here prevents higher level packages (runner, lichess,
// registry) from depending on each other's concrete types — implementations
// live in sibling packages and only the wiring layer decides which ones to
// instantiate.
package core
