/*
This is an example of application that will use the
engine package to test things out
*/
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/pointfield/engine"
	"github.com/spaghettifunk/pointfield/engine/core"
	"github.com/spaghettifunk/pointfield/testbed"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML configuration file")
	flag.Parse()

	config := engine.DefaultApplicationConfig()
	if *configPath != "" {
		c, err := engine.LoadApplicationConfig(*configPath)
		if err != nil {
			core.LogFatal(err.Error())
		}
		config = c
	}

	tb := testbed.NewTestGame(config)

	engine, err := engine.New(tb.Game)
	if err != nil {
		panic(err)
	}

	if err := engine.Initialize(); err != nil {
		panic(err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// start shutdown goroutine
	go func() {
		// capture sigterm and other system call here
		<-sigCh
		_ = engine.Shutdown()
	}()

	// run engine
	if err := engine.Run(); err != nil {
		panic(err)
	}
}
