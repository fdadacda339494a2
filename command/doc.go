// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package command models application commands and serializes their
// invocations.
//
// [New] builds one of five variants from a raw command payload:
// [*SlashCommand] (chat input), [*UserCommand] and [*MessageCommand]
// (context menu commands that act on a target), [*BaseCommand] for
// types this package does not model, and, inside slash commands, a
// tree of [*SubCommand] nodes. A SubCommand forwards every
// command-wide property (ID, version, application, permissions,
// target channel) to its root SlashCommand.
//
// Invoking a slash command or subcommand filters the supplied
// [Arguments] to the options the command declares, coerces each value
// to its option's type (choice names become choice values, mentions
// become ID strings, attachments become file indexes), wraps the
// result in one option group per subcommand level, and hands the
// payload to an [interaction.Engine]. [SlashCommand.Build] and
// [SubCommand.Build] return the same payload without sending it.
package command
