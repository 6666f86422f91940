/*
Copyright 2025 Trident Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Command gentlds downloads the IANA list of top-level domains, checks that
// it parses, and writes it where the search package embeds it.
//
// Usage:
//
//	gentlds [-url URL] [-o FILE] [-timeout DURATION] [-dev]
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"braces.dev/errtrace"

	"github.com/jplu/urikit/internal/log"
	"github.com/jplu/urikit/search"
)

const defaultURL = "https://data.iana.org/TLD/tlds-alpha-by-domain.txt"

func main() {
	src := flag.String("url", defaultURL, "`URL` of the TLD list")
	out := flag.String("o", "tlds-alpha-by-domain.txt", "output `file`")
	timeout := flag.Duration("timeout", 30*time.Second, "download timeout")
	dev := flag.Bool("dev", false, "verbose developer logging")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: gentlds [flags]\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 0 {
		flag.Usage()
		os.Exit(2)
	}

	logger := log.Def
	if *dev {
		logger = log.Dev
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	if err := run(ctx, logger, *src, *out); err != nil {
		logger.Error("cannot update the TLD list", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, src, out string) error {
	logger.Debug("downloading the TLD list", slog.String("url", src))
	data, err := fetch(ctx, src)
	if err != nil {
		return errtrace.Wrap(err)
	}
	set, err := search.ParseTLDs(bytes.NewReader(data))
	if err != nil {
		return errtrace.Wrap(fmt.Errorf("%s: %w", src, err))
	}
	if err := os.WriteFile(out, data, 0o644); err != nil { //nolint:gosec // The list is public data.
		return errtrace.Wrap(err)
	}
	logger.Info("TLD list updated",
		slog.String("file", out),
		slog.String("version", set.Version()),
		slog.Int("entries", set.Len()),
	)
	return nil
}

func fetch(ctx context.Context, src string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errtrace.Wrap(fmt.Errorf("GET %s: %s", src, resp.Status))
	}
	return errtrace.Wrap2(io.ReadAll(resp.Body))
}
