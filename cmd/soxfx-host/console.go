// console.go - raw-terminal interactive console

package main

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// runConsole puts stdin into raw mode and reads whole lines byte by
// byte, echoing as it goes and dispatching on Enter, grounded on the
// teacher's own TerminalHost: raw mode via term.MakeRaw/term.Restore,
// CR-to-LF and DEL-to-BS translation, restore on exit. Unlike
// TerminalHost's non-blocking polling loop feeding a character-mode
// MMIO device, this console assembles whole commands before
// dispatching, since "set <name> <value>" is word-oriented rather than
// character-oriented.
func runConsole(host *EffectHost) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintln(os.Stderr, "soxfx-host: stdin is not a terminal, falling back to plain reads")
		runConsolePlain(host)
		return
	}
	defer term.Restore(fd, oldState)

	fmt.Print("soxfx-host console - type 'quit' + Enter to exit\r\n> ")

	var line []byte
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			return
		}
		b := buf[0]
		if b == '\r' {
			b = '\n'
		}
		if b == 0x7F {
			b = 0x08
		}

		switch b {
		case '\n':
			fmt.Print("\r\n")
			if dispatchConsoleLine(host, string(line)) {
				return
			}
			line = line[:0]
			fmt.Print("> ")
		case 0x08:
			if len(line) > 0 {
				line = line[:len(line)-1]
				fmt.Print("\b \b")
			}
		case 0x03: // Ctrl-C
			fmt.Print("\r\n")
			return
		default:
			line = append(line, b)
			fmt.Printf("%c", b)
		}
	}
}

// runConsolePlain is the non-terminal fallback (e.g. stdin piped from a
// file or test harness), reading whole lines without raw-mode echo.
func runConsolePlain(host *EffectHost) {
	var line []byte
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			return
		}
		if buf[0] == '\n' {
			if dispatchConsoleLine(host, string(line)) {
				return
			}
			line = line[:0]
			continue
		}
		line = append(line, buf[0])
	}
}
