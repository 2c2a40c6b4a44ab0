// Command hellocore 演示手工装配与容器装配的区别。
//
//	hellocore [-config path] member|order|manual|beans|lifecycle|serve
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
)

const defaultConfigPath = "configs/hellocore.yaml"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("hellocore", flag.ContinueOnError)
	fs.SetOutput(stdout)
	configPath := fs.String("config", defaultConfigPath, "path to YAML config (missing file uses defaults)")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: hellocore [-config path] <command>")
		fmt.Fprintln(fs.Output(), "commands: member, order, manual, beans, lifecycle, serve")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("exactly one command is required")
	}

	cmd, ok := commands[fs.Arg(0)]
	if !ok {
		fs.Usage()
		return fmt.Errorf("unknown command %q", fs.Arg(0))
	}

	env, err := newEnvironment(*configPath, stdout)
	if err != nil {
		return err
	}
	defer env.sync()

	return cmd(env)
}
