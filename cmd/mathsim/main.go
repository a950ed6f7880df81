package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/codeyaruj/math-sim/asm"
	"github.com/codeyaruj/math-sim/cpu"
	"github.com/codeyaruj/math-sim/machine"
	"github.com/codeyaruj/math-sim/mem"
)

// readExpression takes the expression from the argument list, or one line
// from stdin when no argument was given.
func readExpression(args []string) (src string, err error) {
	if len(args) > 0 {
		src = args[0]
		return
	}

	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		if err = scanner.Err(); err != nil {
			err = errors.Wrapf(err, "failed to read input")
			return
		}
		err = errors.New("failed to read input")
		return
	}
	src = scanner.Text()

	return
}

func main() {
	var verbose bool
	var showAst bool
	var showIr bool
	var showTrace bool
	var withMem bool

	rootCmd := &cobra.Command{
		Use:   "mathsim",
		Short: "Arithmetic expression compiler and register-machine simulator",
		Long: `mathsim compiles integer arithmetic expressions to a small
register-machine instruction set and executes them on a simulated CPU with
a bit-accurate ALU, hardware-style flags, and an optional 64 KB RAM.`,
		SilenceUsage: true,
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose mode")

	runCmd := &cobra.Command{
		Use:   "run [expression]",
		Short: "Compile and execute an expression",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			src, err := readExpression(args)
			if err != nil {
				return
			}

			mch := machine.New()
			mch.Verbose = verbose
			if withMem {
				mch.Mem = mem.New()
			}
			if showTrace {
				fmt.Println("TRACE:")
				mch.Trace = os.Stdout
			}

			result, err := mch.Run(src)
			if err != nil {
				return
			}

			if showAst {
				fmt.Print(mch.Ast.Dump())
			}
			if showIr {
				mch.Prog.Dump(os.Stdout)
			}

			fmt.Printf("RESULT: %d\n", result)

			return
		},
	}
	runCmd.Flags().BoolVar(&showAst, "ast", false, "Dump the syntax tree")
	runCmd.Flags().BoolVar(&showIr, "ir", false, "Dump the compiled instructions")
	runCmd.Flags().BoolVar(&showTrace, "trace", false, "Print the evaluation trace")
	runCmd.Flags().BoolVar(&withMem, "mem", false, "Attach a 64 KB RAM")

	asmCmd := &cobra.Command{
		Use:   "asm <file>",
		Short: "Assemble a listing and execute it with RAM attached",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			inf, err := os.Open(args[0])
			if err != nil {
				err = errors.Wrapf(err, "%v", args[0])
				return
			}
			defer inf.Close()

			as := &asm.Assembler{Verbose: verbose}
			prog, err := as.Parse(inf)
			if err != nil {
				err = errors.Wrapf(err, "%v", args[0])
				return
			}

			if showIr {
				prog.Dump(os.Stdout)
			}

			result, err := cpu.Execute(prog, mem.New())
			if err != nil {
				return
			}

			fmt.Printf("RESULT: %d\n", result)

			return
		},
	}
	asmCmd.Flags().BoolVar(&showIr, "ir", false, "Dump the assembled instructions")

	rootCmd.AddCommand(runCmd, asmCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
