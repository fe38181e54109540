// main.go - headless reference host for the soxplugins effect suite

package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/prof-spock/soxplugins-go"
)

func newEffectByName(kind string) soxplugins.Effect {
	switch kind {
	case "compander":
		return soxplugins.NewCompanderEffect()
	case "reverb":
		return soxplugins.NewReverbEffect()
	case "modulator":
		return soxplugins.NewModulatorEffect()
	case "filter":
		return soxplugins.NewFilterEffect()
	default:
		return soxplugins.NewGainEffect()
	}
}

func main() {
	effectName := flag.String("effect", "gain", "effect to host: compander|reverb|modulator|filter|gain")
	sampleRate := flag.Int("rate", 44100, "sample rate in Hz")
	luaScript := flag.String("lua", "", "gopher-lua automation script to run instead of the interactive console")
	bench := flag.Bool("bench", false, "run the concurrent multi-instance soak benchmark and exit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: soxfx-host [options]\n\nHosts one soxplugins effect against a synthetic test tone.\n\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nConsole commands (interactive mode):\n")
		fmt.Fprintf(os.Stderr, "  set <name> <value>   apply a parameter change\n")
		fmt.Fprintf(os.Stderr, "  tone <hz>            change the test-tone frequency\n")
		fmt.Fprintf(os.Stderr, "  show                 print every parameter's current value\n")
		fmt.Fprintf(os.Stderr, "  copy                 copy a persistence block of the effect to the clipboard\n")
		fmt.Fprintf(os.Stderr, "  quit                 exit\n")
	}
	flag.Parse()

	if *bench {
		runBenchmark(*effectName, float64(*sampleRate))
		return
	}

	effect := newEffectByName(*effectName)
	host := NewEffectHost(effect, float64(*sampleRate))

	player, err := NewOtoPlayer(*sampleRate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "soxfx-host: failed to open audio output: %v\n", err)
		os.Exit(1)
	}
	player.SetupPlayer(host)
	player.Start()
	defer player.Close()

	if *luaScript != "" {
		if err := runLuaScript(*luaScript, host); err != nil {
			fmt.Fprintf(os.Stderr, "soxfx-host: lua script failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runConsole(host)
}

func dispatchConsoleLine(host *EffectHost, line string) (shouldQuit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	switch fields[0] {
	case "quit", "exit":
		return true
	case "set":
		// Parameter names may themselves contain spaces (e.g. "Gain
		// [dB]"), so the last field is always the value and everything
		// between "set" and it is the name.
		if len(fields) < 3 {
			fmt.Println("usage: set <name with spaces> <value>")
			return false
		}
		name := strings.Join(fields[1:len(fields)-1], " ")
		value := fields[len(fields)-1]
		kind := host.SetValue(name, value)
		fmt.Printf("%s -> %s\n", name, kind)
	case "tone":
		if len(fields) != 2 {
			fmt.Println("usage: tone <hz>")
			return false
		}
		hz, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			fmt.Println("invalid frequency:", fields[1])
			return false
		}
		host.SetTestToneFrequency(hz)
	case "show":
		fmt.Println(host.Effect().ParameterMap().String())
	case "copy":
		if err := copyPersistenceToClipboard(host); err != nil {
			fmt.Println("copy failed:", err)
		} else {
			fmt.Println("copied persistence block to clipboard")
		}
	default:
		fmt.Println("unknown command:", fields[0])
	}
	return false
}

func runBenchmark(effectName string, sampleRate float64) {
	start := time.Now()
	result, err := soakBenchmark(effectName, sampleRate)
	elapsed := time.Since(start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "soxfx-host: benchmark failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("soak benchmark: %d instances, %d samples each, %v\n", result.instanceCount, result.sampleCount, elapsed)
}
