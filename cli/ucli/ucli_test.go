package ucli

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	urfave "github.com/urfave/cli/v2"
	"go.dedis.ch/benc/cli"
)

func TestBuild(t *testing.T) {
	builder := NewBuilder("test", nil)
	app := builder.Build().(*urfave.App)

	app.Writer = io.Discard

	require.Equal(t, "test", app.Name)

	err := app.Run([]string{"test"})
	require.NoError(t, err)
}

func TestBuilder_SetWriter(t *testing.T) {
	out := new(bytes.Buffer)

	builder := NewBuilder("test", nil).(*Builder)
	builder.SetUsage("test application")
	builder.SetWriter(out)

	err := builder.Build().Run([]string{"test", "--help"})
	require.NoError(t, err)
	require.Contains(t, out.String(), "test application")
}

func TestSetCommand(t *testing.T) {
	builder := NewBuilder("test", nil)

	builder.SetCommand("first")
	builder.SetCommand("second")

	app := builder.Build().(*urfave.App)

	require.Len(t, app.Commands, 3)

	require.Equal(t, "first", app.Commands[0].Name)
	require.Equal(t, "second", app.Commands[1].Name)
	require.Equal(t, "help", app.Commands[2].Name)
}

func TestCommandBuilder(t *testing.T) {
	builder := NewBuilder("test", nil).(*Builder)
	cmd := builder.SetCommand("first")

	fakeAction := func(flags cli.Flags) error {
		return nil
	}

	cmd.SetAction(fakeAction)
	cmd.SetDescription("first action")
	cmd.SetFlags(cli.StringFlag{
		Name:     "arg",
		Usage:    "this is a test arg",
		Required: true,
		Value:    "default",
	})
	cmd.SetSubCommand("second")

	require.Len(t, builder.commands, 1)
	require.Len(t, builder.flags, 0)

	cmd2 := builder.commands[0]
	require.Len(t, cmd2.flags, 1)
	require.Len(t, cmd2.subcommands, 1)
}

func TestRun_Flags(t *testing.T) {
	var name string
	var count int
	var verbose bool

	builder := NewBuilder("test", nil, cli.StringFlag{Name: "global", Value: "g"})

	cmd := builder.SetCommand("first")
	sub := cmd.SetSubCommand("second")
	sub.SetFlags(
		cli.StringFlag{Name: "name"},
		cli.IntFlag{Name: "count", Value: 1},
		cli.BoolFlag{Name: "verbose"},
	)
	sub.SetAction(func(flags cli.Flags) error {
		name = flags.String("name") + flags.String("global")
		count = flags.Int("count")
		verbose = flags.Bool("verbose")
		return nil
	})

	err := builder.Build().Run([]string{"test", "--global", "x", "first", "second",
		"--name", "abc", "--count", "3", "--verbose"})
	require.NoError(t, err)

	require.Equal(t, "abcx", name)
	require.Equal(t, 3, count)
	require.True(t, verbose)
}

func TestBuildFlags(t *testing.T) {
	in := []cli.Flag{
		cli.StringFlag{
			Name:     "name1",
			Usage:    "usage1",
			Required: true,
			Value:    "value1",
		},
		cli.IntFlag{
			Name:     "name2",
			Usage:    "usage2",
			Required: true,
			Value:    1,
		},
		cli.BoolFlag{
			Name:     "name3",
			Usage:    "usage3",
			Required: true,
			Value:    true,
		},
	}

	out := buildFlags(in)
	require.Len(t, out, 3)

	require.Equal(t, "name1", out[0].Names()[0])
	require.Equal(t, "name2", out[1].Names()[0])
	require.Equal(t, "name3", out[2].Names()[0])
}

func TestBuildFlags_Panic(t *testing.T) {
	defer func() {
		r := recover()
		require.Equal(t, "flag type '<nil>' not supported", r)
	}()

	buildFlags([]cli.Flag{nil})
}

func TestMakeAction(t *testing.T) {
	res := makeAction(nil)
	require.Nil(t, res)

	isCalled := false
	fakeAction := func(flags cli.Flags) error {
		require.Nil(t, flags)
		isCalled = true
		return nil
	}

	res = makeAction(fakeAction)
	require.NotNil(t, res)

	out := res(nil)
	require.NoError(t, out)
	require.True(t, isCalled)
}
