package main

import (
	"fmt"
	"io/ioutil"

	"gopkg.in/urfave/cli.v1"

	"synacorvm/synacorvm"
)

var disasmCommand = cli.Command{
	Name:      "disasm",
	Usage:     "decode and print every instruction in a program binary",
	ArgsUsage: "<binary>",
	Action:    disasmAction,
}

// disasmAction demonstrates that decoding is a pure function of the word
// stream alone: it never constructs a Machine, only synacorvm.Decode.
func disasmAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.NewExitError("usage: synacorvm disasm <binary>", 2)
	}

	bin, err := ioutil.ReadFile(ctx.Args().First())
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	words, err := synacorvm.BytesToWords(bin)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	ip := 0
	for ip < len(words) {
		instr, n, err := synacorvm.Decode(words[ip:])
		if err != nil {
			fmt.Printf("%5d: <decode error: %v>\n", ip, err)
			return cli.NewExitError(err.Error(), 1)
		}

		fmt.Printf("%5d: %-5s %s\n", ip, instr.Op, formatArgs(instr))
		ip += n
	}
	return nil
}

func formatArgs(instr synacorvm.Instruction) string {
	n := instr.NumWords() - 1
	out := ""
	for i := 0; i < n; i++ {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%d", instr.Args[i])
	}
	return out
}
