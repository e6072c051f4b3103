// Command synacorvm is the thin external driver described in spec.md §6:
// it reads a program binary from disk, instantiates the VM, and wires it
// to a real I/O endpoint. It is deliberately outside the core synacorvm
// package — none of its logic (flag parsing, file I/O, exit codes, input
// echoing) is part of the VM's contract.
package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"gopkg.in/urfave/cli.v1"

	"synacorvm/synacorvm"
)

var verboseFlag = cli.BoolFlag{
	Name:  "verbose, v",
	Usage: "trace each executed instruction to stderr",
}

func main() {
	app := cli.NewApp()
	app.Name = "synacorvm"
	app.Usage = "Synacor-architecture virtual machine"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{verboseFlag}
	app.Commands = []cli.Command{
		runCommand,
		disasmCommand,
		snapshotCommand,
	}

	if err := app.Run(os.Args); err != nil {
		cli.HandleExitCoder(err)
		log.Fatalf("synacorvm: %v", err)
	}
}

var runCommand = cli.Command{
	Name:      "run",
	Usage:     "load and execute a program binary against stdin/stdout (out of a value above 255 is an error, not masked)",
	ArgsUsage: "<binary>",
	Action:    runAction,
}

func runAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.NewExitError("usage: synacorvm run <binary>", 2)
	}

	m, err := loadMachine(ctx.Args().First())
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	verbose := ctx.GlobalBool("verbose")
	if verbose {
		tracer := log.New(os.Stderr, "", 0)
		m.SetTrace(func(ip synacorvm.Word, instr synacorvm.Instruction) {
			tracer.Printf("%5d: %s", ip, instr.Op)
		})
	}
	in := newEchoingInput(os.Stdin, os.Stderr, verbose)

	reason, err := m.Run(in, os.Stdout)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("synacorvm: %v", err), 1)
	}
	if reason == synacorvm.Halted {
		return nil
	}
	// reason == NoMoreInput: stdin is exhausted. Against a live terminal
	// this only happens at real EOF, so the driver stops rather than
	// spin; a client that wants to resume should call Run again with a
	// fresh reader once more input is available (spec.md §4.4).
	return cli.NewExitError("synacorvm: input exhausted before halt", 3)
}

func loadMachine(path string) (*synacorvm.Machine, error) {
	bin, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't open %q: %w", path, err)
	}

	words, err := synacorvm.BytesToWords(bin)
	if err != nil {
		return nil, err
	}

	m := synacorvm.New()
	if err := m.LoadProgram(words); err != nil {
		return nil, err
	}
	return m, nil
}
