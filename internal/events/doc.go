// Package events renders deployment events and logs received from the
// manager.
//
// An Event is an opaque JSON object. A Selector returns the Renderer chosen
// by the verbosity flag: verbose mode dumps every event as indented JSON,
// the default mode prints a one-line message built by a PrefixFunc. The
// Formatter strategy decides whether that line is coloured.
package events
