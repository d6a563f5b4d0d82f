// Package extproc adapts an external engine process to the core.Engine
// interface. The engine runs as a subprocess and speaks newline-delimited
// JSON: the bot writes setup and state messages to its stdin, the engine
// writes move messages to its stdout whenever it decides to play. The
// engine's search, evaluation and board representation stay entirely on the
// other side of the pipe.
//
// Inbound (bot → engine):
//
//	{"op":"setup","color":"white","initial":300000,"increment":0,"variant":"standard"}
//	{"op":"state","moves":"e2e4 e7e5","wtime":295000,"btime":298000,"winc":0,"binc":0,"status":"started"}
//	{"op":"quit"}
//
// Outbound (engine → bot):
//
//	{"move":"g1f3"}
package extproc
