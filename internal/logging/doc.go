// Package logging provides structured logging for the messaging runtime.
// It wraps Go's log/slog package to produce JSON-formatted logs with
// persistent attributes (mailbox, context, topic) so the activity of many
// script contexts can be separated in a single log stream.
//
// Loggers are cheap to derive: WithMailbox, WithContext and WithTopic return
// child loggers that stamp every entry. The runtime log can optionally be
// size-rotated via RotatingWriter.
package logging
