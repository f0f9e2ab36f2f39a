// Package scan walks a whisper storage tree and decodes every series file
// under it.
//
// A graphite storage root holds one whisper file per series, laid out as
// nested directories whose path encodes the dotted series name. Scan finds
// every file with a whisper extension (optionally compressed), decodes each
// one independently, and reports per-file results: a corrupt or truncated
// file yields a Result carrying the error, never an aborted scan.
package scan

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/arloliu/whisper/internal/hash"
	"github.com/arloliu/whisper/internal/logging"
	"github.com/arloliu/whisper/internal/options"
	"github.com/arloliu/whisper/source"
	"github.com/arloliu/whisper/wsp"
)

// Result holds the outcome of decoding one file under the root.
//
// Path is relative to the scan root. File is nil when Err is set; decode
// failures are reported here instead of failing the whole scan.
type Result struct {
	Path       string
	SeriesName string
	SeriesID   uint64
	File       *wsp.File
	Err        error
}

// Scanner decodes all whisper files under a storage root.
type Scanner struct {
	root        string
	concurrency int
	decodeOpts  []wsp.DecoderOption
	log         *slog.Logger
}

// Option configures a Scanner.
type Option = options.Option[*Scanner]

// WithConcurrency limits how many files are decoded in parallel.
// Values below one fall back to the default (GOMAXPROCS).
func WithConcurrency(n int) Option {
	return options.New(func(s *Scanner) error {
		if n < 1 {
			return fmt.Errorf("concurrency must be at least 1, got %d", n)
		}
		s.concurrency = n

		return nil
	})
}

// WithDecoderOptions forwards options to every per-file decoder.
func WithDecoderOptions(opts ...wsp.DecoderOption) Option {
	return options.NoError(func(s *Scanner) {
		s.decodeOpts = append(s.decodeOpts, opts...)
	})
}

// New creates a Scanner rooted at root.
func New(root string, opts ...Option) (*Scanner, error) {
	s := &Scanner{
		root:        root,
		concurrency: runtime.GOMAXPROCS(0),
		log:         logging.Component("scan"),
	}

	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}

	return s, nil
}

// whisperExtensions are the file suffixes treated as series files. The
// compressed variants are sniffed by content on read; the suffix only
// selects which files enter the scan.
var whisperExtensions = []string{".wsp", ".wsp.gz", ".wsp.zst", ".wsp.lz4", ".wsp.sz"}

func isWhisperPath(name string) bool {
	for _, ext := range whisperExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}

	return false
}

// Scan walks the root and decodes every whisper file found.
//
// Results are ordered by the walk order of the underlying filesystem
// (lexical within each directory). Scan returns an error only when the walk
// itself fails or ctx is canceled; per-file decode errors are carried in the
// corresponding Result.
func (s *Scanner) Scan(ctx context.Context) ([]Result, error) {
	paths, err := s.collect()
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, relPath := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			results[i] = s.decodeOne(relPath)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// collect gathers the relative paths of all series files under the root.
func (s *Scanner) collect() ([]string, error) {
	var paths []string

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isWhisperPath(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		paths = append(paths, rel)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", s.root, err)
	}

	return paths, nil
}

func (s *Scanner) decodeOne(relPath string) Result {
	result := Result{
		Path:       relPath,
		SeriesName: hash.SeriesName(relPath),
		SeriesID:   hash.SeriesID(relPath),
	}

	data, err := source.ReadFile(filepath.Join(s.root, relPath))
	if err != nil {
		s.log.Warn("read failed", "path", relPath, "error", err)
		result.Err = err

		return result
	}

	file, err := wsp.Decode(data, s.decodeOpts...)
	if err != nil {
		s.log.Warn("decode failed", "path", relPath, "error", err)
		result.Err = err

		return result
	}

	s.log.Debug("decoded", "path", relPath, "series", result.SeriesName,
		"archives", len(file.Archives), "anomalies", len(file.Anomalies()))

	result.File = &file

	return result
}
