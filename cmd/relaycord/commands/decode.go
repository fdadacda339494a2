// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/relaycord/cmd/relaycord/cli"
	"github.com/bureau-foundation/relaycord/gateway"
)

type decodeParams struct {
	configFlags
	displayFlags
	cli.JSONOutput
	Compression string   `flag:"compression" desc:"transport compression: none, zlib-stream or zstd-stream (default: gateway.compression)"`
	Events      []string `flag:"event" desc:"only print dispatches with this name (repeatable)"`
}

// decodedEvent is one line of --json output.
type decodedEvent struct {
	Sequence int64           `json:"sequence"`
	Name     string          `json:"name"`
	Data     json.RawMessage `json:"data"`
}

func decodeCommand() *cli.Command {
	var params decodeParams
	return &cli.Command{
		Name:    "decode",
		Summary: "Decode captured gateway traffic",
		Description: `Decode a file of captured gateway transport bytes (the raw messages
concatenated in arrival order) and print every dispatch event. The
capture may itself be LZ4-framed. With --json, each event is printed as
one JSON object per line.`,
		Usage: "relaycord decode <capture> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("decode", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Usage("decode requires exactly one capture file")
			}
			compressionName := params.Compression
			if compressionName == "" {
				cfg, err := params.loadConfig()
				if err != nil {
					return err
				}
				compressionName = cfg.Gateway.Compression
			}
			compression, err := gateway.ParseCompression(compressionName)
			if err != nil {
				return cli.Usage("--compression: %v", err)
			}

			capture, err := gateway.OpenCapture(args[0])
			if err != nil {
				return err
			}
			defer capture.Close()

			stream, err := gateway.NewStream(compression, logger)
			if err != nil {
				return err
			}
			copied := make(chan error, 1)
			go func() {
				_, err := io.Copy(stream, capture)
				stream.Close()
				copied <- err
			}()

			styles, err := params.palette(stdout)
			if err != nil {
				return err
			}
			encoder := json.NewEncoder(stdout)
			printed, total := 0, 0
			var writeErr error
			runErr := stream.Run(ctx, func(event gateway.Event) {
				total++
				if len(params.Events) > 0 && !slices.Contains(params.Events, event.Name) {
					return
				}
				printed++
				if writeErr != nil {
					return
				}
				if params.OutputJSON {
					writeErr = encoder.Encode(decodedEvent{event.Sequence, event.Name, event.Data})
					return
				}
				styles.line(stdout, fmt.Sprintf("%s  %s  %s",
					styles.score.Render(fmt.Sprintf("%6d", event.Sequence)),
					styles.name.Render(fmt.Sprintf("%-28s", event.Name)),
					styles.faint.Render(string(event.Data))))
			})
			copyErr := <-copied

			logger.Info("decoded capture", "path", args[0], "dispatches", total, "printed", printed)
			if runErr != nil {
				return fmt.Errorf("decoding %s: %w", args[0], runErr)
			}
			if copyErr != nil && !errors.Is(copyErr, io.ErrClosedPipe) {
				return fmt.Errorf("reading %s: %w", args[0], copyErr)
			}
			return writeErr
		},
	}
}
