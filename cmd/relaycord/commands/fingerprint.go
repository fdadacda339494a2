// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/relaycord/cmd/relaycord/cli"
)

type fingerprintParams struct {
	configFlags
	cli.JSONOutput
	Expect string `flag:"expect" desc:"exit with status 1 unless the fingerprint equals this hex value"`
}

func fingerprintCommand() *cli.Command {
	var params fingerprintParams
	return &cli.Command{
		Name:    "fingerprint",
		Summary: "Print the version fingerprint of an index",
		Description: `Print a keyed BLAKE3 digest over the ID and version of every command
in the index. The digest ignores command order and descriptions, so it
changes only when a command is added, removed or re-registered. Use
--expect in scripts to detect a stale cached index.`,
		Usage: "relaycord fingerprint [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("fingerprint", &params)
		},
		Run: func(_ context.Context, _ []string, logger *slog.Logger) error {
			cat, err := params.openCatalog(nil)
			if err != nil {
				return err
			}
			fingerprint, err := cat.Fingerprint()
			if err != nil {
				return err
			}

			result := struct {
				Fingerprint string `json:"fingerprint"`
				Commands    int    `json:"commands"`
			}{fingerprint.String(), cat.Len()}
			if done, err := params.EmitJSON(stdout, result); !done {
				fmt.Fprintln(stdout, result.Fingerprint)
			} else if err != nil {
				return err
			}

			if params.Expect != "" && !strings.EqualFold(params.Expect, result.Fingerprint) {
				logger.Warn("index fingerprint changed", "expected", params.Expect, "actual", result.Fingerprint)
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}
