package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/lixenwraith/vi-snake/engine"
	"github.com/lixenwraith/vi-snake/game"
	"github.com/lixenwraith/vi-snake/input"
	"github.com/lixenwraith/vi-snake/sound"
	"github.com/lixenwraith/vi-snake/status"
	"github.com/lixenwraith/vi-snake/terminal"
)

var (
	backendFlag = flag.String("backend", "ansi", "terminal backend: ansi or tcell")
	keymapFlag  = flag.String("keymap", "", "TOML keymap merged over the built-in bindings")
	soundFlag   = flag.Bool("sound", false, "play sound cues")
	debugFlag   = flag.Bool("debug", false, "write logs to "+logDir+"/"+logFileName)
)

func main() {
	flag.Parse()
	os.Exit(run())
}

func run() int {
	// Panic Recovery: reset the terminal before anything is printed
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mVI-SNAKE CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	keymap, err := loadKeyMap(*keymapFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vi-snake: %v\n", err)
		return 1
	}

	term, err := newTerminal(*backendFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vi-snake: %v\n", err)
		return 1
	}
	if err := term.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "vi-snake: %v\n", err)
		return 1
	}
	defer term.Fini()

	var cues engine.Cues = engine.NopCues{}
	if *soundFlag {
		player, err := sound.NewPlayer()
		if err != nil {
			// Non-fatal, the game runs silently
			log.Printf("sound disabled: %v", err)
		} else {
			defer player.Close()
			cues = player
		}
	}

	reg := status.NewRegistry()
	reg.Strings.Get(status.Backend).Store(*backendFlag)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng := engine.New(term, engine.Config{
		KeyMap: keymap,
		Rand:   game.NewFastRand(uint64(time.Now().UnixNano())),
		Cues:   cues,
		Status: reg,
	})
	apples, err := eng.Run(ctx)

	// Raw mode must be released before the score line is printed
	term.Fini()
	log.Printf("session: %s", reg.Summary())

	if err != nil {
		fmt.Fprintf(os.Stderr, "vi-snake: %v\n", err)
		return 1
	}
	fmt.Printf("You caught %d apples\n", apples)
	return 0
}

// loadKeyMap returns the built-in bindings, merged with the TOML file at path when one is given
func loadKeyMap(path string) (*input.KeyMap, error) {
	base := input.DefaultKeyMap()
	if path == "" {
		return base, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("keymap: %w", err)
	}
	override, err := input.LoadKeyMap(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Printf("keymap loaded from %s", path)
	return base.Merge(override), nil
}

func newTerminal(backend string) (terminal.Terminal, error) {
	switch backend {
	case "ansi":
		return terminal.New(), nil
	case "tcell":
		return terminal.NewTcell()
	}
	return nil, fmt.Errorf("unknown backend %q (want ansi or tcell)", backend)
}
