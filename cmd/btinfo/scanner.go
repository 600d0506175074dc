package main

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"torrentmeta/bittorrent"
	"torrentmeta/config"
	"torrentmeta/executor"
	"torrentmeta/util"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Scanner walks paths for .torrent files, extracts their metadata in
// parallel and hands each torrent seen for the first time to the
// registered handlers. Duplicate info hashes are dropped via a bloom
// filter, which can be persisted across runs.
type Scanner struct {
	cache    *bittorrent.TorrentCache
	seen     *util.BloomFilter
	pool     *executor.Executor[string]
	handlers []bittorrent.TorrentHandler
}

func NewScanner(ctx context.Context, cfg *config.Config) *Scanner {
	s := &Scanner{
		cache: bittorrent.NewTorrentCache(ctx, time.Duration(cfg.CacheTTL)*time.Second, cfg.CacheSize, cfg.DecodeOptions()),
		seen:  util.NewBloomFilter(cfg.BloomBits),
	}
	s.pool = executor.NewExecutor(ctx, cfg.Workers, cfg.QueueSize, s.scanFile)
	return s
}

func (s *Scanner) AddTorrentHandler(handler bittorrent.TorrentHandler) {
	s.handlers = append(s.handlers, handler)
}

// LoadSeen restores the dedupe filter from path if it exists.
func (s *Scanner) LoadSeen(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.WithStack(err)
	}
	defer f.Close()
	filter, err := util.LoadBloomFilter(f)
	if err != nil {
		return errors.WithStack(err)
	}
	s.seen = filter
	return nil
}

func (s *Scanner) SaveSeen(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()
	return s.seen.Save(f)
}

// Scan walks every path, queues each .torrent file and blocks until all
// of them have been processed.
func (s *Scanner) Scan(paths []string) {
	s.pool.Start()
	for _, path := range paths {
		err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if strings.HasSuffix(p, ".torrent") {
				s.pool.Commit(p)
			}
			return nil
		})
		if err != nil {
			logrus.Warnf("Failed to walk %s. %v", path, err)
		}
	}
	s.pool.Wait()
	s.cache.Close()
}

func (s *Scanner) scanFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Warnf("Failed to read %s. %v", path, err)
		return
	}
	torrent, err := s.cache.FromBytes(data)
	if err != nil {
		logrus.Warnf("Failed to parse %s. %v", path, err)
		return
	}
	if s.seen.Exists(torrent.InfoHash[:]) {
		logrus.Debugf("Skip duplicated torrent %s from %s", torrent.InfoHash.Hex(), path)
		return
	}
	s.seen.Add(torrent.InfoHash[:])
	for _, handler := range s.handlers {
		handler.HandleTorrent(torrent)
	}
}
