/*
   Command parser: console grammar for the interactive debugger.

   Copyright 2024, Richard Cornwell

   Permission is hereby granted, free of charge, to any person obtaining a copy
   of this software and associated documentation files (the "Software"), to deal
   in the Software without restriction, including without limitation the rights
   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
   copies of the Software, and to permit persons to whom the Software is
   furnished to do so, subject to the following conditions:

   The above copyright notice and this permission notice shall be included in
   all copies or substantial portions of the Software.

   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
   SOFTWARE.
*/

// Package parser implements the line grammar the interactive console
// accepts: step/continue execution control, register and memory
// examine/deposit, and breakpoint management, matched by unambiguous
// prefix the way the teacher's command parser matches device commands.
package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-psx/psxcpu/internal/console"
	"github.com/go-psx/psxcpu/internal/cpu"
	"github.com/go-psx/psxcpu/internal/disassemble"
)

type cmd struct {
	name     string
	min      int
	process  func(*cmdLine, *console.Console) (bool, error)
	complete func(*cmdLine) []string
}

type cmdLine struct {
	line string
	pos  int
}

var cmdList = []cmd{
	{name: "step", min: 1, process: step},
	{name: "continue", min: 1, process: cont},
	{name: "registers", min: 3, process: showRegs},
	{name: "examine", min: 2, process: examine},
	{name: "deposit", min: 2, process: deposit},
	{name: "break", min: 2, process: breakCmd},
	{name: "unbreak", min: 4, process: unbreakCmd},
	{name: "disassemble", min: 4, process: disasm},
	{name: "reset", min: 3, process: resetCmd},
	{name: "quit", min: 1, process: quit},
}

// ProcessCommand executes one line of console input against con,
// reporting whether the console should now quit.
func ProcessCommand(commandLine string, con *console.Console) (bool, error) {
	line := cmdLine{line: commandLine}
	name := line.getWord()

	match := matchList(name)
	if len(match) == 0 {
		return false, errors.New("command not found: " + name)
	}
	if len(match) > 1 {
		return false, errors.New("ambiguous command: " + name)
	}
	return match[0].process(&line, con)
}

// CompleteCmd returns the candidate completions for commandLine, used
// by the line editor's tab completion.
func CompleteCmd(commandLine string) []string {
	line := cmdLine{line: commandLine}
	name := line.getWord()
	if name == "" {
		return nil
	}
	match := matchList(name)
	out := make([]string, 0, len(match))
	for _, m := range match {
		out = append(out, m.name)
	}
	return out
}

func matchCommand(m cmd, name string) bool {
	if len(name) > len(m.name) {
		return false
	}
	for i := range name {
		if name[i] != m.name[i] {
			return false
		}
	}
	return len(name) >= m.min
}

func matchList(name string) []cmd {
	if name == "" {
		return nil
	}
	var match []cmd
	for _, m := range cmdList {
		if matchCommand(m, name) {
			match = append(match, m)
		}
	}
	return match
}

func (l *cmdLine) isEOL() bool {
	return l.pos >= len(l.line)
}

func (l *cmdLine) skipSpace() {
	for !l.isEOL() && unicode.IsSpace(rune(l.line[l.pos])) {
		l.pos++
	}
}

// getWord returns the next whitespace-delimited token, advancing past
// it and any trailing space.
func (l *cmdLine) getWord() string {
	l.skipSpace()
	start := l.pos
	for !l.isEOL() && !unicode.IsSpace(rune(l.line[l.pos])) {
		l.pos++
	}
	word := l.line[start:l.pos]
	l.skipSpace()
	return word
}

func parseAddr(s string) (uint32, error) {
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("bad address %q: %w", s, err)
	}
	return uint32(v), nil
}

func step(l *cmdLine, con *console.Console) (bool, error) {
	count := 1
	if w := l.getWord(); w != "" {
		n, err := strconv.Atoi(w)
		if err != nil {
			return false, err
		}
		count = n
	}
	for i := 0; i < count; i++ {
		halted, reason := con.Step()
		fmt.Printf("pc=%#08x\n", con.CPU.PC())
		if halted {
			fmt.Println("stopped: " + reason)
			break
		}
	}
	return false, nil
}

func cont(l *cmdLine, con *console.Console) (bool, error) {
	steps, reason := con.Run(1_000_000)
	fmt.Printf("ran %d instructions, stopped: %s, pc=%#08x\n", steps, reason, con.CPU.PC())
	return false, nil
}

func showRegs(l *cmdLine, con *console.Console) (bool, error) {
	regs := con.CPU.Regs()
	for i, v := range regs {
		fmt.Printf("%-5s = %#08x", cpu.RegisterMnemonics[i], v)
		if i%4 == 3 {
			fmt.Println()
		} else {
			fmt.Print("  ")
		}
	}
	fmt.Printf("\npc=%#08x hi=%#08x lo=%#08x sr=%#08x cause=%#08x epc=%#08x\n",
		con.CPU.PC(), con.CPU.Hi(), con.CPU.Lo(), con.CPU.SR(), con.CPU.Cause(), con.CPU.EPC())
	return false, nil
}

func examine(l *cmdLine, con *console.Console) (bool, error) {
	addr, err := parseAddr(l.getWord())
	if err != nil {
		return false, err
	}
	fmt.Printf("%#08x: %#08x\n", addr, con.CPU.Examine32(addr))
	return false, nil
}

func deposit(l *cmdLine, con *console.Console) (bool, error) {
	addr, err := parseAddr(l.getWord())
	if err != nil {
		return false, err
	}
	val, err := parseAddr(l.getWord())
	if err != nil {
		return false, err
	}
	con.Bus.StoreWord(addr, val)
	return false, nil
}

func breakCmd(l *cmdLine, con *console.Console) (bool, error) {
	addr, err := parseAddr(l.getWord())
	if err != nil {
		return false, err
	}
	con.Breaks.AddCode(addr)
	return false, nil
}

func unbreakCmd(l *cmdLine, con *console.Console) (bool, error) {
	addr, err := parseAddr(l.getWord())
	if err != nil {
		return false, err
	}
	con.Breaks.RemoveCode(addr)
	return false, nil
}

func disasm(l *cmdLine, con *console.Console) (bool, error) {
	addr, err := parseAddr(l.getWord())
	if err != nil {
		return false, err
	}
	count := 1
	if w := l.getWord(); w != "" {
		n, err := strconv.Atoi(w)
		if err != nil {
			return false, err
		}
		count = n
	}
	for i := 0; i < count; i++ {
		word := con.CPU.Examine32(addr)
		fmt.Printf("%#08x: %s\n", addr, disassemble.Decode(cpu.Instruction(word)))
		addr += 4
	}
	return false, nil
}

func resetCmd(l *cmdLine, con *console.Console) (bool, error) {
	con.CPU.Reset()
	return false, nil
}

func quit(l *cmdLine, con *console.Console) (bool, error) {
	return true, nil
}
