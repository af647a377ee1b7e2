// Command owl is the combined Owl-2820 runner, transcoder, and
// disassembler: one binary wrapping pkg/vm, pkg/asm, and pkg/disasm
// behind three subcommands.
package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/badlydrawnrod/owl2820/internal/config"
	"github.com/badlydrawnrod/owl2820/internal/demo"
	"github.com/badlydrawnrod/owl2820/internal/imageio"
	"github.com/badlydrawnrod/owl2820/pkg/asm"
	"github.com/badlydrawnrod/owl2820/pkg/disasm"
	"github.com/badlydrawnrod/owl2820/pkg/isa"
	"github.com/badlydrawnrod/owl2820/pkg/rv32i"
	"github.com/badlydrawnrod/owl2820/pkg/vm"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var (
		cfgPath   string
		memSize   uint32
		verbose   bool
		rv32iMode bool
		transcode bool
		tty       bool
		outPath   string
	)

	root := &cobra.Command{
		Use:           "owl",
		Short:         "Owl-2820 runner, RV32I transcoder, and disassembler",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "owl.toml", "configuration file")
	root.PersistentFlags().Uint32Var(&memSize, "mem-size", 0, "memory size in bytes (0 = use config default)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "trace every fetched instruction")

	runCmd := &cobra.Command{
		Use:   "run <image>",
		Short: "Load and execute a guest binary image",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, posArgs []string) error {
			cfg, err := config.LoadFrom(cfgPath)
			if err != nil {
				return err
			}
			if memSize != 0 {
				cfg.Memory.SizeBytes = memSize
			}
			if !cmd.Flags().Changed("verbose") {
				verbose = cfg.Execution.VerboseTrace
			}
			return runImage(posArgs[0], cfg, rv32iMode, transcode, verbose, tty)
		},
	}
	runCmd.Flags().BoolVar(&rv32iMode, "rv32i", false, "dispatch through the RV32I decoder instead of the Owl decoder")
	runCmd.Flags().BoolVar(&transcode, "transcode", false, "decode RV32I and re-emit as Owl before executing (exercises E, G, and F)")
	runCmd.Flags().BoolVar(&tty, "tty", false, "accept a console connection for syscall 2 (console putchar)")

	asmCmd := &cobra.Command{
		Use:   "asm <program>",
		Short: "Assemble one of the built-in demonstration programs",
		Long: "Assemble one of the built-in demonstration programs (" +
			joinNames(demo.Names) + ") and write the resulting Owl image.\n" +
			"There is no textual assembly syntax: this drives the assembler API directly.",
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, posArgs []string) error {
			return assembleDemo(posArgs[0], outPath)
		},
	}
	asmCmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default: stdout)")

	disasmCmd := &cobra.Command{
		Use:   "disasm <image>",
		Short: "Print the mnemonic for every word in a guest binary image",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, posArgs []string) error {
			return disassembleImage(posArgs[0], rv32iMode)
		},
	}
	disasmCmd.Flags().BoolVar(&rv32iMode, "rv32i", false, "decode words as RV32I instead of native Owl-2820")

	root.AddCommand(runCmd, asmCmd, disasmCmd)
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "owl:", err)
		if exitCode == 0 {
			exitCode = 1
		}
		return exitCode
	}
	return exitCode
}

// exitCode lets the RunE callbacks report the §6 process exit code
// while cobra's RunE contract only carries an error. A normal guest
// halt gives 0 whatever status the guest passed to Exit. It stays 0
// whenever a callback never had occasion to change it; exactArgs sets
// it to 2 for a missing or invalid positional argument, and anything
// else that reaches root.Execute's error path falls back to 1.
var exitCode int

// exactArgs mirrors cobra.ExactArgs but also sets the §6 exit code (2)
// for a missing or invalid positional argument before the error
// reaches root.Execute's generic failure path.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			exitCode = 2
			return fmt.Errorf("%s accepts %d arg(s), received %d", cmd.Name(), n, len(args))
		}
		return nil
	}
}

func runImage(path string, cfg *config.Config, rv32iMode, transcode, verbose, useTTY bool) error {
	if verbose {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: false})
		log.SetLevel(log.DebugLevel)
	}

	buf, err := imageio.Load(path)
	if err != nil {
		exitCode = 1
		return err
	}

	dispatch := isa.Dispatch
	if rv32iMode {
		dispatch = rv32i.Dispatch
	}

	if transcode {
		a := asm.New()
		words := imageio.WordCount(buf)
		for i := uint32(0); i < words; i++ {
			rv32i.Dispatch(a, imageio.ReadWordAt(buf, i*4))
		}
		code, err := a.Code()
		if err != nil {
			exitCode = 1
			return err
		}
		buf = code
		dispatch = isa.Dispatch // the transcoded image is native Owl
	}

	size := cfg.Memory.SizeBytes
	if uint32(len(buf)) > size {
		size = uint32(len(buf))
	}
	image := make([]byte, size)
	copy(image, buf)

	machine := vm.New(vm.NewMemoryFrom(image))
	machine.Selectors = vm.SyscallTable{
		Exit:     cfg.Syscalls.Exit,
		PrintFib: cfg.Syscalls.PrintFib,
	}

	if useTTY {
		stty, err := vm.TTYAcceptConn()
		if err != nil {
			exitCode = 1
			return err
		}
		defer stty.Close()
		machine.Syscalls = stty
	}

	for !machine.Done {
		machine.PC = machine.NextPC
		machine.NextPC = machine.PC + 4
		word, err := machine.Mem.FetchInstruction(machine.PC)
		if err != nil {
			exitCode = 1
			return err
		}
		if verbose {
			d := disasm.New()
			dispatch(d, word)
			log.WithFields(log.Fields{
				"pc":   fmt.Sprintf("0x%08x", machine.PC),
				"word": fmt.Sprintf("0x%08x", word),
				"asm":  d.String(),
			}).Debug("fetch")
		}
		dispatch(machine, word)
		machine.Regs[isa.Zero] = 0
	}

	if machine.Err != nil {
		exitCode = 1
		return machine.Err
	}
	exitCode = 0
	return nil
}

func assembleDemo(name, outPath string) error {
	code, err := demo.Build(name)
	if err != nil {
		exitCode = 1
		return err
	}
	if outPath == "" {
		_, err := os.Stdout.Write(code)
		exitCode = 0
		return err
	}
	if err := imageio.Save(outPath, code); err != nil {
		exitCode = 1
		return err
	}
	exitCode = 0
	return nil
}

func disassembleImage(path string, rv32iMode bool) error {
	buf, err := imageio.Load(path)
	if err != nil {
		exitCode = 1
		return err
	}
	words := imageio.WordCount(buf)
	d := disasm.New()
	for i := uint32(0); i < words; i++ {
		word := imageio.ReadWordAt(buf, i*4)
		if rv32iMode {
			rv32i.Dispatch(d, word)
		} else {
			isa.Dispatch(d, word)
		}
	}
	for i, line := range d.Lines() {
		fmt.Printf("%8d: %s\n", i*4, line)
	}
	exitCode = 0
	return nil
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}
