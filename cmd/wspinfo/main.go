// wspinfo inspects whisper database files.
//
// Given a file it prints the header summary, flags size mismatches, and can
// dump a single archive or export all points to Parquet. Given a storage
// root with -scan it decodes every series file under it and reports per-file
// status.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/arloliu/whisper/internal/hash"
	"github.com/arloliu/whisper/internal/logging"
	"github.com/arloliu/whisper/parquet"
	"github.com/arloliu/whisper/scan"
	"github.com/arloliu/whisper/source"
	"github.com/arloliu/whisper/wsp"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	archiveID := flag.Int("archive", -1, "dump points of the given archive (0 = highest resolution)")
	parquetOut := flag.String("parquet", "", "export all written points to the given Parquet file")
	compression := flag.String("compression", "zstd", "Parquet compression: none, snappy, zstd, lz4, gzip")
	scanRoot := flag.Bool("scan", false, "treat the path as a storage root and decode every series under it")
	concurrency := flag.Int("concurrency", runtime.GOMAXPROCS(0), "parallel decodes in scan mode")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	jsonLog := flag.Bool("json", false, "log in JSON format")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: wspinfo [flags] <path>\n")
		flag.PrintDefaults()
		os.Exit(2)
	}
	path := flag.Arg(0)

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logging.Init(level, *jsonLog)
	log := logging.Component("wspinfo")
	log.Debug("starting", "version", Version)

	if *scanRoot {
		if err := runScan(os.Stdout, path, *concurrency); err != nil {
			log.Error("scan failed", "root", path, "error", err)
			os.Exit(1)
		}

		return
	}

	data, err := source.ReadFile(path)
	if err != nil {
		log.Error("read failed", "path", path, "error", err)
		os.Exit(1)
	}

	file, err := wsp.Decode(data)
	if err != nil {
		log.Error("decode failed", "path", path, "error", err)
		os.Exit(1)
	}

	printInfo(os.Stdout, path, file, len(data))

	if *archiveID >= 0 {
		if err := dumpArchive(os.Stdout, file, *archiveID); err != nil {
			log.Error("dump failed", "path", path, "archive", *archiveID, "error", err)
			os.Exit(1)
		}
	}

	if *parquetOut != "" {
		series := hash.SeriesName(path)
		opts := parquet.DefaultOptions()
		opts.Compression = parquet.ParseCompressionType(*compression)

		rows, err := parquet.Export(*parquetOut, series, hash.ID(series), &file, opts)
		if err != nil {
			log.Error("export failed", "path", path, "out", *parquetOut, "error", err)
			os.Exit(1)
		}
		log.Info("exported", "out", *parquetOut, "rows", rows)
	}
}

// printInfo writes the header summary, flagging a size mismatch first.
func printInfo(w io.Writer, path string, file wsp.File, actualSize int) {
	fmt.Fprintf(w, "\npath: %s\n\n", path)

	if expected := file.ExpectedSize(); actualSize != expected {
		fmt.Fprintln(w, "FILE IS CORRUPT!")
		fmt.Fprintf(w, " actual size: %d\n", actualSize)
		fmt.Fprintf(w, " expected size: %d\n", expected)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "aggregationMethod: %s\n", file.Metadata.Aggregation)
	fmt.Fprintf(w, "maxRetention: %d\n", file.MaxRetention)
	fmt.Fprintf(w, "xFilesFactor: %g\n", file.Metadata.XFilesFactor)
	fmt.Fprintf(w, "fileSize: %d\n", actualSize)
	fmt.Fprintln(w)

	for _, a := range file.Archives {
		fmt.Fprintf(w, "archive %d: secondsPerPoint=%d points=%d retention=%d written=%d\n",
			a.Info.Index, a.Info.SecondsPerPoint, a.Info.Points, a.Info.Retention(), a.WrittenCount())
	}

	if anomalies := file.Anomalies(); len(anomalies) > 0 {
		fmt.Fprintln(w)
		for _, a := range anomalies {
			fmt.Fprintf(w, "anomaly: %s\n", a.Error())
		}
	}
}

// dumpArchive prints the written points of one archive, one "timestamp value"
// pair per line.
func dumpArchive(w io.Writer, file wsp.File, index int) error {
	if index >= len(file.Archives) {
		return fmt.Errorf("invalid archive index %d, file has %d archives", index, len(file.Archives))
	}

	for ts, val := range file.Archives[index].All() {
		fmt.Fprintf(w, "%d %g\n", ts, val)
	}

	return nil
}

// runScan decodes every series under root and prints one status line each.
func runScan(w io.Writer, root string, concurrency int) error {
	s, err := scan.New(root, scan.WithConcurrency(concurrency))
	if err != nil {
		return err
	}

	results, err := s.Scan(context.Background())
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(w, "FAIL %s: %v\n", r.Path, r.Err)

			continue
		}

		written := 0
		for _, a := range r.File.Archives {
			written += a.WrittenCount()
		}
		fmt.Fprintf(w, "OK   %s series=%s archives=%d points=%d anomalies=%d\n",
			r.Path, r.SeriesName, len(r.File.Archives), written, len(r.File.Anomalies()))
	}

	fmt.Fprintf(w, "\n%d files, %d failed\n", len(results), failed)

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to decode", failed, len(results))
	}

	return nil
}
