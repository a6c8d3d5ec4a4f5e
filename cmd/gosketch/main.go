/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"gopkg.in/yaml.v3"

	"gosketch/internal/config"
	"gosketch/internal/crash"
	"gosketch/internal/interaction"
	applog "gosketch/internal/log"
	"gosketch/internal/render"
	"gosketch/internal/script"
	"gosketch/internal/ui"
	"gosketch/internal/version"
)

// errUsage marks bad command lines; main exits with 2 for them.
var errUsage = errors.New("usage")

func usage(w io.Writer) {
	fmt.Fprintln(w, "gosketch: a small sketching canvas")
	fmt.Fprintf(w, "Version: %s\n\n", version.String())
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  gosketch version|-v|--version                 Show version")
	fmt.Fprintln(w, "  gosketch replay [flags] <script.yaml>         Replay a gesture script and render a PNG")
	fmt.Fprintln(w, "      -o <file.png>      output image (default sketch.png)")
	fmt.Fprintln(w, "      -thumb <file.png>  also write a thumbnail")
	fmt.Fprintln(w, "      -thumb-size <n>    thumbnail bounding box (default 160)")
	fmt.Fprintln(w, "  gosketch config                               Print the effective configuration")
	fmt.Fprintln(w, "  gosketch ui [<script.yaml>]                   Launch desktop UI (build with -tags fyne)")
}

func main() {
	cfg, cfgErr := config.Load()
	applog.Init(applog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	})
	defer func() { _ = applog.Close() }()
	defer crash.Recover(nil)
	l := applog.WithComponent("cli")
	render.SetLogger(applog.WithComponent("gg"))
	if cfgErr != nil {
		// defaults plus env overrides are still usable
		l.Warn("config", slog.Any("err", cfgErr))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(ctx, cfg, os.Args[1:], os.Stdout)
	switch {
	case err == nil:
	case errors.Is(err, errUsage):
		fmt.Fprintln(os.Stderr, "Error:", err)
		usage(os.Stderr)
		os.Exit(2)
	default:
		l.Error("command failed", slog.Any("err", err))
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.AppConfig, args []string, out io.Writer) error {
	if len(args) == 0 {
		usage(out)
		return nil
	}
	switch args[0] {
	case "version", "--version", "-v":
		fmt.Fprintln(out, version.String())
		return nil
	case "replay":
		return replay(ctx, cfg, args[1:], out)
	case "config":
		return printConfig(cfg, out)
	case "ui":
		opts := ui.Options{Config: cfg}
		if len(args) > 1 {
			opts.Script = args[1]
		}
		return ui.Run(opts)
	case "help", "-h", "--help":
		usage(out)
		return nil
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
}

func replay(ctx context.Context, cfg config.AppConfig, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	outPath := fs.String("o", "sketch.png", "output PNG")
	thumbPath := fs.String("thumb", "", "thumbnail PNG")
	thumbSize := fs.Int("thumb-size", 160, "thumbnail bounding box")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: replay requires exactly one script", errUsage)
	}
	l := applog.WithOperation(applog.WithComponent("cli"), "replay")

	sc, err := script.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	so, err := ui.SessionOptions(cfg)
	if err != nil {
		return fmt.Errorf("session options: %w", err)
	}
	so.Logger = l
	sess := interaction.New(so)
	defer crash.Recover(&crash.Info{Session: sess.ID(), State: sess.Summary})

	sf, err := render.NewSurface(cfg.Canvas.Width, cfg.Canvas.Height)
	if err != nil {
		return err
	}
	defer func() { _ = sf.Close() }()
	if err := sess.Attach(sf); err != nil {
		return err
	}
	n, err := script.Replay(ctx, sess, sc)
	if err != nil {
		return fmt.Errorf("replay %s: %w", fs.Arg(0), err)
	}
	if err := sess.Render(sf); err != nil {
		return err
	}
	if err := sf.SavePNG(*outPath); err != nil {
		return err
	}
	if *thumbPath != "" {
		if err := writeThumb(sf, *thumbPath, *thumbSize); err != nil {
			return err
		}
	}
	l.Info("replayed", slog.Int("events", n), slog.String("out", *outPath), slog.String("summary", sess.Summary()))
	fmt.Fprintf(out, "%d events, %d elements -> %s\n", n, len(sess.Elements()), *outPath)
	return nil
}

func writeThumb(sf *render.Surface, path string, size int) error {
	img, err := sf.Thumbnail(size, size)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create thumbnail: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode thumbnail: %w", err)
	}
	return f.Close()
}

func printConfig(cfg config.AppConfig, out io.Writer) error {
	if p, err := config.ConfigPath(); err == nil {
		fmt.Fprintf(out, "# file: %s\n", p)
	}
	for _, key := range config.OverrideKeys() {
		if env, ok := config.EnvOverrideFor(key); ok {
			fmt.Fprintf(out, "# %s overridden by %s\n", key, env)
		}
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}
