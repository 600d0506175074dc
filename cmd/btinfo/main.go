package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"torrentmeta/bittorrent"
	"torrentmeta/config"

	"github.com/sirupsen/logrus"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "config file path")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	paths := flag.Args()
	if len(paths) == 0 {
		fmt.Fprintf(os.Stderr, "usage: %s [-config config.yaml] [-v] <file-or-dir>...\n", os.Args[0])
		os.Exit(2)
	}

	cfg, err := config.ReadConfigFromFile(*cfgPath)
	if err != nil {
		logrus.Debugf("No usable config file, using defaults. %v", err)
		cfg = config.Default()
	}

	s := NewScanner(context.Background(), cfg)
	s.AddTorrentHandler(&printHandler{})
	if cfg.BloomPath != "" {
		if err := s.LoadSeen(cfg.BloomPath); err != nil {
			logrus.Warnf("Failed to load seen filter. %v", err)
		}
	}

	s.Scan(paths)

	if cfg.BloomPath != "" {
		if err := s.SaveSeen(cfg.BloomPath); err != nil {
			logrus.Warnf("Failed to save seen filter. %v", err)
		}
	}
}

var _ bittorrent.TorrentHandler = (*printHandler)(nil)

type printHandler struct{}

func (h *printHandler) HandleTorrent(t *bittorrent.Torrent) {
	fmt.Printf("%s  %s\n", t.InfoHash.Hex(), t.Name)
	fmt.Printf("  announce: %s\n", t.Announce)
	fmt.Printf("  pieces:   %d x %d bytes\n", t.PieceCount(), t.PieceLength)
	if t.HasFiles() {
		fmt.Printf("  files:    %d, %d bytes total\n", len(t.Files), t.TotalLength())
		for _, f := range t.Files {
			fmt.Printf("    %12d  %s\n", f.Length, strings.Join(f.Path, "/"))
		}
	} else {
		fmt.Printf("  length:   %d bytes\n", t.Length)
	}
}
