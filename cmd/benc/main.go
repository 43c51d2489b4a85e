// Package main implements the benc command line tool. It converts documents
// into bencode, serves the conversion over HTTP and keeps encoded documents in
// an archive.
//
//  benc encode --in doc.json --hex
//  benc encode --in doc.yaml --out doc.benc
//  benc serve --listen 127.0.0.1:8080 --metrics /metrics
//  benc archive put --db benc.db --in doc.toml --key doc:1
//  benc archive get --db benc.db --key doc:1
//  benc archive list --db benc.db --prefix doc:
//  benc archive delete --db benc.db --key doc:1
package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.dedis.ch/benc"
	"go.dedis.ch/benc/cli"
	"go.dedis.ch/benc/cli/ucli"
	"go.dedis.ch/benc/encoding"
	"golang.org/x/xerrors"
)

type config struct {
	Channel chan os.Signal
	Writer  io.Writer
	Reader  io.Reader
}

func main() {
	err := run(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	cfg := config{
		Channel: sigs,
		Writer:  os.Stdout,
		Reader:  os.Stdin,
	}

	return runWithCfg(args, cfg)
}

func runWithCfg(args []string, cfg config) error {
	return buildApp(cfg).Run(args)
}

func buildApp(cfg config) cli.Application {
	builder := ucli.NewBuilder("benc", nil, cli.StringFlag{
		Name:  "loglevel",
		Usage: "level of the logs (trace, debug, info, warn, error)",
		Value: "info",
	})

	app := builder.(*ucli.Builder)
	app.SetUsage("encode documents into bencode")
	app.SetWriter(cfg.Writer)

	maxDepth := cli.IntFlag{
		Name:  "maxdepth",
		Usage: "maximum nesting of lists and dictionaries",
		Value: encoding.DefaultMaxDepth,
	}

	cmd := builder.SetCommand("encode")
	cmd.SetDescription("convert a document into bencode or another format")
	cmd.SetFlags(
		cli.StringFlag{
			Name:  "in",
			Usage: "path to the input document, - for the standard input",
			Value: "-",
		},
		cli.StringFlag{
			Name:  "out",
			Usage: "path to the output, - for the standard output",
			Value: "-",
		},
		cli.StringFlag{
			Name:  "from",
			Usage: "format of the input (json, yaml, toml, msgpack), guessed from the extension",
		},
		cli.StringFlag{
			Name:  "to",
			Usage: "format of the output",
			Value: "bencode",
		},
		cli.BoolFlag{
			Name:  "hex",
			Usage: "write the output in hexadecimal",
		},
		maxDepth,
	)
	cmd.SetAction(withLogLevel(encodeAction{cfg: cfg}.Execute))

	cmd = builder.SetCommand("serve")
	cmd.SetDescription("start the HTTP encoding service")
	cmd.SetFlags(
		cli.StringFlag{
			Name:  "listen",
			Usage: "address of the server",
			Value: "127.0.0.1:8080",
		},
		cli.StringFlag{
			Name:  "metrics",
			Usage: "path of the Prometheus metrics, empty to disable",
			Value: "/metrics",
		},
		maxDepth,
	)
	cmd.SetAction(withLogLevel(serveAction{cfg: cfg}.Execute))

	dbFlag := cli.StringFlag{
		Name:  "db",
		Usage: "path to the archive database",
		Value: "benc.db",
	}

	archiveCmd := builder.SetCommand("archive")
	archiveCmd.SetDescription("manage the archive of encoded documents")

	sub := archiveCmd.SetSubCommand("put")
	sub.SetDescription("encode a document and store it")
	sub.SetFlags(
		dbFlag,
		cli.StringFlag{
			Name:  "key",
			Usage: "key of the document, generated if empty",
		},
		cli.StringFlag{
			Name:  "in",
			Usage: "path to the input document, - for the standard input",
			Value: "-",
		},
		cli.StringFlag{
			Name:  "from",
			Usage: "format of the input, guessed from the extension",
		},
		maxDepth,
	)
	sub.SetAction(withLogLevel(archivePutAction{cfg: cfg}.Execute))

	sub = archiveCmd.SetSubCommand("get")
	sub.SetDescription("write a document of the archive")
	sub.SetFlags(
		dbFlag,
		cli.StringFlag{
			Name:     "key",
			Usage:    "key of the document",
			Required: true,
		},
		cli.BoolFlag{
			Name:  "hex",
			Usage: "write the output in hexadecimal",
		},
	)
	sub.SetAction(withLogLevel(archiveGetAction{cfg: cfg}.Execute))

	sub = archiveCmd.SetSubCommand("list")
	sub.SetDescription("list the documents of the archive")
	sub.SetFlags(
		dbFlag,
		cli.StringFlag{
			Name:  "prefix",
			Usage: "only list the keys with the prefix",
		},
	)
	sub.SetAction(withLogLevel(archiveListAction{cfg: cfg}.Execute))

	sub = archiveCmd.SetSubCommand("delete")
	sub.SetDescription("remove a document from the archive")
	sub.SetFlags(
		dbFlag,
		cli.StringFlag{
			Name:     "key",
			Usage:    "key of the document",
			Required: true,
		},
	)
	sub.SetAction(withLogLevel(archiveDeleteAction{cfg: cfg}.Execute))

	return builder.Build()
}

// withLogLevel applies the global log level before the action.
func withLogLevel(action cli.Action) cli.Action {
	return func(flags cli.Flags) error {
		level := flags.String("loglevel")
		if level != "" {
			err := benc.SetLogLevel(level)
			if err != nil {
				return xerrors.Errorf("invalid log level: %v", err)
			}
		}

		return action(flags)
	}
}
