// Command lambda runs Lambda scripts: `lambda <path>` loads <path> as
// the main module, links and runs it, and prints the result; with no
// arguments it enters an interactive loop that reads one line at a time
// and runs each as an ad hoc main module. Grounded on the teacher's
// cmd/funxy/main.go flag-handling and exit-code conventions.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/lambda-lang/lambda/internal/item"
	"github.com/lambda-lang/lambda/internal/jit"
	"github.com/lambda-lang/lambda/internal/link"
	"github.com/lambda-lang/lambda/internal/runtime"
	"github.com/lambda-lang/lambda/internal/script"
)

func main() {
	dumpBytecode := flag.Bool("dump-bytecode", false, "print the compiled chunk for the main script instead of running it")
	traceLinks := flag.Bool("trace-links", false, "log each import alias of the main script before its imports are initialized")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		runInteractive(*traceLinks)
		return
	}

	os.Exit(runFile(args[0], *dumpBytecode, *traceLinks, runtime.New()))
}

// runFile implements the CLI exit-code contract of SPEC_FULL.md §6:
// 0 success, 1 load/compile failure, 2 a runtime ERROR Item propagated
// to the top level. rc is the process-wide runtime.Context (spec.md
// §3.4) every script loaded for this run compiles against, so imports
// share one heap, number stack, and type registry with the main module.
func runFile(path string, dumpBytecode, traceLinks bool, rc *runtime.Context) int {
	loader := script.NewLoader(jit.CompileWith(rc))
	main, err := loader.Load(path, true)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, ok := main.JIT.(*jit.Context)
	if !ok {
		fmt.Fprintln(os.Stderr, "lambda: main script has no compiled JIT context")
		return 1
	}

	if dumpBytecode {
		mainProto := ctx.Protos["main"]
		data, serr := mainProto.Chunk.Serialize()
		if serr != nil {
			fmt.Fprintln(os.Stderr, serr)
			return 1
		}
		os.Stdout.Write(data)
		return 0
	}

	linker, err := link.NewLinker(main)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	ctx.VM.Imports = linker

	if traceLinks {
		for _, alias := range main.ImportAliases {
			fmt.Fprintf(os.Stderr, "lambda: linking %s\n", alias)
		}
	}
	if err := linker.InitAll(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	result, err := ctx.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "lambda: runtime error:", err)
		return 2
	}
	if result.IsError() {
		fmt.Fprintln(os.Stderr, "lambda: runtime error item propagated to top level")
		return 2
	}
	switch result.Tag() {
	case item.Int:
		fmt.Println(result.IntValue())
	case item.Float:
		fmt.Println(rc.Numbers.UnboxFloat(result))
	case item.Bool:
		fmt.Println(result.BoolValue())
	case item.String:
		if idx := int(result.Payload()); idx < len(ctx.VM.Strings) {
			fmt.Println(ctx.VM.Strings[idx])
		}
	default:
		fmt.Println(result.Tag())
	}
	return 0
}

// runInteractive reads one line at a time, compiling and running each
// as an ad hoc main module (SPEC_FULL.md §6). isatty detection switches
// between an interactive prompt and silent piped-input handling,
// grounded on the teacher's cmd/funxy terminal-mode handling.
func runInteractive(traceLinks bool) {
	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	reader := bufio.NewReader(os.Stdin)
	// One runtime.Context for the whole REPL session (spec.md §3.4): each
	// line still compiles as its own ad hoc main module, but they share a
	// heap, number stack, and type registry rather than each starting
	// from scratch.
	rc := runtime.New()

	for {
		if interactive {
			fmt.Fprint(os.Stderr, "lambda> ")
		}
		line, err := reader.ReadString('\n')
		if line == "" && err == io.EOF {
			return
		}
		if line == "\n" || line == "" {
			if err == io.EOF {
				return
			}
			continue
		}

		tmp, werr := os.CreateTemp("", "lambda-repl-*.ls")
		if werr != nil {
			fmt.Fprintln(os.Stderr, werr)
			continue
		}
		tmp.WriteString(line)
		tmp.Close()

		code := runFile(tmp.Name(), false, traceLinks, rc)
		os.Remove(tmp.Name())
		if err == io.EOF {
			if code != 0 {
				os.Exit(code)
			}
			return
		}
	}
}
