// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"

	"github.com/ezrec/usdb/cpu"
	"github.com/ezrec/usdb/emulator"
	"github.com/ezrec/usdb/sdb"
)

func main() {
	var compile string
	var batch bool
	var output string
	var verbose bool

	flag.StringVar(&compile, "c", "", ".us file to compile")
	flag.BoolVar(&batch, "b", false, "Batch mode, run to completion without the debugger")
	flag.StringVar(&output, "o", "-", "Program output")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	// Compile a new instruction stream.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{}
		for attr, value := range emu.Defines() {
			asm.Predefine(attr, value)
		}

		emu.Program, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	}

	if output == "-" {
		emu.Cpu.Output = os.Stdout
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		emu.Cpu.Output = ouf
	}

	emu.Reset()

	if batch {
		for done, err := emu.Tick(); !done; done, err = emu.Tick() {
			if err != nil {
				log.Fatal(err)
			}
		}
		return
	}

	watch := sdb.NewWatchpoints(emu.Cpu)
	debugREPL(emu, watch)
}
