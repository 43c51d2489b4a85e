package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.dedis.ch/benc"
	"go.dedis.ch/benc/archive"
	"go.dedis.ch/benc/cli"
	"go.dedis.ch/benc/document"
	"go.dedis.ch/benc/encoding"
	"go.dedis.ch/benc/proxy"
	"go.dedis.ch/benc/proxy/http"
	"go.dedis.ch/benc/serde"
	"go.dedis.ch/benc/store/kv"
	"golang.org/x/xerrors"
)

const stdio = "-"

var (
	proxyFac func(string) proxy.Proxy = func(addr string) proxy.Proxy {
		return http.NewHTTP(addr)
	}

	startRetry = 100
	startDelay = 20 * time.Millisecond
)

// encodeAction converts a document from one format to another.
type encodeAction struct {
	cfg config
}

// Execute implements cli.Action.
func (a encodeAction) Execute(flags cli.Flags) error {
	path := flags.String("in")

	from, err := inputFormat(flags.String("from"), path)
	if err != nil {
		return err
	}

	to, err := document.ParseFormat(flags.String("to"))
	if err != nil {
		return err
	}

	data, err := readInput(path, a.cfg.Reader)
	if err != nil {
		return err
	}

	out, err := document.Convert(data, from, to, encoding.WithMaxDepth(flags.Int("maxdepth")))
	if err != nil {
		return xerrors.Errorf("couldn't convert: %v", err)
	}

	if flags.Bool("hex") {
		out = []byte(hex.EncodeToString(out) + "\n")
	}

	return writeOutput(flags.String("out"), a.cfg.Writer, out)
}

// serveAction starts the HTTP service and waits for a signal to stop it.
type serveAction struct {
	cfg config
}

// Execute implements cli.Action.
func (a serveAction) Execute(flags cli.Flags) error {
	srv := proxyFac(flags.String("listen"))

	logger := benc.Logger.With().Str("role", "encode handler").Logger()
	srv.RegisterHandler("/encode",
		http.EncodeHandler(logger, encoding.WithMaxDepth(flags.Int("maxdepth"))))

	path := flags.String("metrics")
	if path != "" {
		collectors := append([]prometheus.Collector{prometheus.NewGoCollector()},
			benc.PromCollectors...)

		handler, err := http.NewMetricsHandler(collectors...)
		if err != nil {
			return xerrors.Errorf("couldn't create metrics handler: %v", err)
		}

		srv.RegisterHandler(path, handler.ServeHTTP)
	}

	errs := make(chan error, 1)

	go func() {
		errs <- srv.Listen()
	}()

	for i := 0; i < startRetry && srv.GetAddr() == nil; i++ {
		select {
		case err := <-errs:
			return xerrors.Errorf("failed to start the server: %v", err)
		case <-time.After(startDelay):
		}
	}

	addr := srv.GetAddr()
	if addr == nil {
		srv.Stop()
		return xerrors.New("failed to start the server")
	}

	fmt.Fprintf(a.cfg.Writer, "listening on http://%s\n", addr)

	<-a.cfg.Channel

	srv.Stop()

	err := <-errs
	if err != nil {
		return xerrors.Errorf("server failed: %v", err)
	}

	return nil
}

// archivePutAction encodes a document and stores it in the archive.
type archivePutAction struct {
	cfg config
}

// Execute implements cli.Action.
func (a archivePutAction) Execute(flags cli.Flags) error {
	path := flags.String("in")

	from, err := inputFormat(flags.String("from"), path)
	if err != nil {
		return err
	}

	data, err := readInput(path, a.cfg.Reader)
	if err != nil {
		return err
	}

	out, err := document.Convert(data, from, serde.FormatBencode,
		encoding.WithMaxDepth(flags.Int("maxdepth")))
	if err != nil {
		return xerrors.Errorf("couldn't convert: %v", err)
	}

	return withArchive(flags, func(arch *archive.Archive) error {
		key, err := arch.PutRaw(flags.String("key"), out)
		if err != nil {
			return err
		}

		fmt.Fprintln(a.cfg.Writer, key)

		return nil
	})
}

// archiveGetAction writes a document of the archive.
type archiveGetAction struct {
	cfg config
}

// Execute implements cli.Action.
func (a archiveGetAction) Execute(flags cli.Flags) error {
	return withArchive(flags, func(arch *archive.Archive) error {
		data, err := arch.Get(flags.String("key"))
		if err != nil {
			return err
		}

		if flags.Bool("hex") {
			data = []byte(hex.EncodeToString(data) + "\n")
		}

		_, err = a.cfg.Writer.Write(data)

		return err
	})
}

// archiveListAction writes the keys of the archive and the size of their
// document.
type archiveListAction struct {
	cfg config
}

// Execute implements cli.Action.
func (a archiveListAction) Execute(flags cli.Flags) error {
	return withArchive(flags, func(arch *archive.Archive) error {
		entries, err := arch.List(flags.String("prefix"))
		if err != nil {
			return err
		}

		for _, entry := range entries {
			fmt.Fprintf(a.cfg.Writer, "%s\t%d\n", entry.Key, len(entry.Value))
		}

		return nil
	})
}

// archiveDeleteAction removes a document from the archive.
type archiveDeleteAction struct {
	cfg config
}

// Execute implements cli.Action.
func (a archiveDeleteAction) Execute(flags cli.Flags) error {
	return withArchive(flags, func(arch *archive.Archive) error {
		return arch.Delete(flags.String("key"))
	})
}

func withArchive(flags cli.Flags, fn func(*archive.Archive) error) error {
	db, err := kv.New(flags.String("db"))
	if err != nil {
		return xerrors.Errorf("couldn't open archive: %v", err)
	}

	defer db.Close()

	return fn(archive.NewArchive(db))
}

// inputFormat returns the format given by the user, otherwise the one of the
// file extension. JSON is the default.
func inputFormat(from, path string) (serde.Format, error) {
	if from != "" {
		return document.ParseFormat(from)
	}

	ext := filepath.Ext(path)
	if ext != "" {
		format, err := document.ParseFormat(ext)
		if err == nil {
			return format, nil
		}
	}

	return serde.FormatJSON, nil
}

func readInput(path string, r io.Reader) ([]byte, error) {
	var data []byte
	var err error

	if path == "" || path == stdio {
		data, err = io.ReadAll(r)
	} else {
		data, err = os.ReadFile(path)
	}

	if err != nil {
		return nil, xerrors.Errorf("couldn't read input: %v", err)
	}

	return data, nil
}

func writeOutput(path string, w io.Writer, data []byte) error {
	var err error

	if path == "" || path == stdio {
		_, err = w.Write(data)
	} else {
		err = os.WriteFile(path, data, 0644)
	}

	if err != nil {
		return xerrors.Errorf("couldn't write output: %v", err)
	}

	return nil
}
