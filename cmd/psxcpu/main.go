/*
   psxcpu - standalone driver for the MIPS-I CPU core.

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

package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	getopt "github.com/pborman/getopt/v2"

	"github.com/go-psx/psxcpu/internal/command/reader"
	"github.com/go-psx/psxcpu/internal/config/configparser"
	"github.com/go-psx/psxcpu/internal/console"
	"github.com/go-psx/psxcpu/internal/telnet"
	"github.com/go-psx/psxcpu/internal/util/debug"
	"github.com/go-psx/psxcpu/internal/util/logger"
)

func main() {
	optConfig := getopt.StringLong("config", 'c', "", "Configuration file")
	optBIOS := getopt.StringLong("bios", 'b', "", "BIOS image, overrides the config file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optMonitor := getopt.StringLong("monitor", 'm', "", "Telnet monitor port, empty disables it")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var logFile *os.File
	if *optLogFile != "" {
		var err error
		logFile, err = os.Create(*optLogFile)
		if err != nil {
			slog.Error("creating log file: " + err.Error())
			os.Exit(1)
		}
	}

	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelInfo)
	h := logger.New(os.Stdout, logFile, &slog.HandlerOptions{Level: programLevel}, logFile != nil)
	slog.SetDefault(slog.New(h))

	cfg := configparser.Default()
	if *optConfig != "" {
		loaded, err := configparser.Load(*optConfig)
		if err != nil {
			slog.Error("loading configuration: " + err.Error())
			os.Exit(1)
		}
		cfg = loaded
	}
	if *optBIOS != "" {
		cfg.BIOSPath = *optBIOS
	}
	if cfg.DebugMask != "" {
		debug.SetMask(debug.ParseMask(cfg.DebugMask))
	}

	var bios []byte
	if cfg.BIOSPath != "" {
		data, err := os.ReadFile(cfg.BIOSPath)
		if err != nil {
			slog.Error("reading BIOS image: " + err.Error())
			os.Exit(1)
		}
		bios = data
	}

	slog.Info("psxcpu started", "ram_kb", cfg.RAMSizeKB, "bios", cfg.BIOSPath)

	con := console.New(cfg.RAMSizeKB, bios)
	if bios == nil {
		con.Bus.SetCacheControl(cfg.ICacheEnabled, cfg.ICacheTagTest)
	}

	var mon *telnet.Server
	if *optMonitor != "" {
		var err error
		mon, err = telnet.Start(*optMonitor, con)
		if err != nil {
			slog.Error(err.Error())
			os.Exit(1)
		}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		reader.ConsoleReader(con)
		close(done)
	}()

	select {
	case <-sigChan:
		slog.Info("got quit signal")
	case <-done:
	}

	if mon != nil {
		slog.Info("shutting down monitor")
		mon.Stop()
	}
	slog.Info("psxcpu exiting")
}
