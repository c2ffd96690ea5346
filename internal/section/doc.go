// Package section implements the settings controllers of the configuration
// wizard.
//
// Each section (location, hardware, database, ntpclient, server, logger) is a
// small state machine that owns one draft:
//
//	Uninitialized --Activate--> Seeded --Edit/list op--> Active
//
// Activate builds the draft from defaults, derives computed fields and
// publishes exactly one EventCreate. Every committed edit re-derives and
// publishes an EventUpdate carrying a full copy of the draft. Rejected edits
// report through the notifier and publish nothing.
//
// # Derived fields
//
// Connection strings are computed from constituent fields that live on the
// controller rather than in the draft:
//
//	hardware.endpoint  <- transport, serial_port, baudrate, tcp_host, tcp_port
//	database.endpoint  <- engine, host, port
//	ntpclient.pool     <- servers.<i>.address, servers.<i>.port
//	server.listen      <- host, port
//
// # Registry
//
// Registry fixes the set and order of sections. NewAll builds one controller
// per entry.
package section
