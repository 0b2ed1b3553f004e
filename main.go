package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"subgrip/internal/config"
	"subgrip/internal/eventbus"
	"subgrip/internal/subtitle"
	"subgrip/internal/ui"
	"subgrip/internal/watch"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to the config file")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: subgrip [-config FILE] SUBTITLE.srt")
		os.Exit(2)
	}

	absPath, err := filepath.Abs(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving path: %v\n", err)
		os.Exit(1)
	}

	// Set up logging
	logFile, err := os.OpenFile("subgrip.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	// Load configuration
	var configSvc config.Service
	if configPath != "" {
		configSvc = config.NewServiceAtPath(configPath)
	} else {
		configSvc = config.NewServiceWithBus(bus)
	}
	cfg, err := configSvc.Load()
	if err != nil {
		log.Printf("Error loading config: %v", err)
		cfg = config.Default()
	}

	// Load the subtitle file
	doc, err := subtitle.LoadSRT(absPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %s: %v\n", absPath, err)
		os.Exit(1)
	}
	log.Printf("Loaded %s (%d lines)", absPath, doc.Len())
	bus.Publish(eventbus.DocumentLoadedEvent{Path: absPath, Lines: doc.Len()})

	// Remember the file and save the config
	cfg.AddRecentFile(absPath)
	if err := configSvc.Save(cfg); err != nil {
		log.Printf("Failed to save config: %v", err)
	}

	// Watch for external modification of the open file
	go func() {
		if err := watch.New(bus, absPath).Run(ctx); err != nil && ctx.Err() == nil {
			log.Printf("Watcher stopped: %v", err)
			bus.Publish(eventbus.ErrorEvent{Message: "file watcher stopped", Err: err})
		}
	}()

	// Create UI model and Bubble Tea program
	uiModel := ui.NewModel(bus, cfg, configSvc, doc)
	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)

	// Forward bus events to the UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	bus.Subscribe(eventbus.EventFileChangedOnDisk, forward)
	bus.Subscribe(eventbus.EventError, forward)

	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	// Run the UI
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}

	// Cleanup
	close(eventChan)
	cancel()
}
