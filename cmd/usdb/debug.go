// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ezrec/usdb/emulator"
	"github.com/ezrec/usdb/sdb"
)

var lastcmd string

const debugUsage = `Commands:
  h, help        This help.
  c              Continue until done or a watchpoint triggers.
  si [N]         Step N instructions (default 1).
  p EXPR         Evaluate and print an expression.
  w EXPR         Add a watchpoint on an expression.
  d N            Delete watchpoint N.
  info r         Show the registers.
  info w         Show the watchpoints.
  q, quit        Quit.
`

// debugStep ticks the emulator once and reports any watchpoint
// triggers. Execution pauses when a watched expression changes.
func debugStep(emu *emulator.Emulator, watch *sdb.Watchpoints) (stop bool, err error) {
	done, err := emu.Tick()
	if err != nil {
		return
	}
	if done {
		fmt.Println("Program has ended.")
		stop = true
		return
	}

	triggers, halt := watch.Check()
	for _, trigger := range triggers {
		fmt.Printf("Watchpoint %d: %s\n", trigger.Id, trigger.Expr)
		fmt.Printf("Old value = %d\n", trigger.OldValue)
		fmt.Printf("New value = %d\n", trigger.NewValue)
	}
	if halt {
		stop = true
	}

	return
}

func debugContinue(emu *emulator.Emulator, watch *sdb.Watchpoints) {
	for {
		stop, err := debugStep(emu, watch)
		if err != nil {
			log.Println(err)
			return
		}
		if stop {
			return
		}
	}
}

func debugStepN(emu *emulator.Emulator, watch *sdb.Watchpoints, arg string) {
	count := 1
	if len(arg) != 0 {
		var err error
		count, err = strconv.Atoi(arg)
		if err != nil {
			log.Println(err)
			return
		}
	}

	for range count {
		stop, err := debugStep(emu, watch)
		if err != nil {
			log.Println(err)
			return
		}
		if stop {
			return
		}
	}
}

func debugPrint(watch *sdb.Watchpoints, expr string) {
	if len(expr) == 0 {
		log.Println("p EXPR")
		return
	}

	value, err := watch.Evaluator.Evaluate(expr)
	if err != nil {
		log.Println(err)
		return
	}

	fmt.Printf("%d (%#x)\n", value, value)
}

func debugWatch(watch *sdb.Watchpoints, expr string) {
	if len(expr) == 0 {
		log.Println("w EXPR")
		return
	}

	id, err := watch.Add(expr)
	if err != nil {
		log.Println(err)
		if id < 0 {
			return
		}
	}

	fmt.Printf("Watchpoint %d: %s\n", id, expr)
}

func debugDelete(watch *sdb.Watchpoints, arg string) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		log.Println(err)
		return
	}

	err = watch.Delete(id)
	if err != nil {
		log.Println(err)
	}
}

func debugInfo(emu *emulator.Emulator, watch *sdb.Watchpoints, arg string) {
	switch arg {
	case "r":
		fmt.Print(emu.Cpu.String())
	case "w":
		for wp := range watch.List {
			if wp.Known() {
				fmt.Printf("%2d: %-32s = %d\n", wp.Id, wp.Expr, wp.LastValue)
			} else {
				fmt.Printf("%2d: %-32s = ?\n", wp.Id, wp.Expr)
			}
		}
	default:
		log.Println("info r|w")
	}
}

func debugREPL(emu *emulator.Emulator, watch *sdb.Watchpoints) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("(usdb) ")

		if !scanner.Scan() {
			fmt.Println()
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			if len(lastcmd) == 0 {
				continue
			}
			line = lastcmd
		} else {
			lastcmd = line
		}

		cmd, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		switch cmd {
		case "h", "help":
			fmt.Print(debugUsage)

		case "c", "continue":
			debugContinue(emu, watch)

		case "s", "si", "step":
			debugStepN(emu, watch, rest)

		case "p", "print":
			debugPrint(watch, rest)

		case "w", "watch":
			debugWatch(watch, rest)

		case "d", "delete":
			debugDelete(watch, rest)

		case "info":
			debugInfo(emu, watch, rest)

		case "q", "quit":
			return

		default:
			log.Printf("'%s' is not a valid command\n", cmd)
		}
	}
}
