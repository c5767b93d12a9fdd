/*
   Telnet: remote monitor access to the console.

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

// Package telnet exposes the same command grammar the interactive
// console accepts over a plain TCP socket, so a remote client can
// attach to a running core without a local terminal. It is a single
// listener and a single shared console rather than the teacher's
// per-device multiplexed server, since this core has exactly one
// thing worth attaching to.
package telnet

import (
	"bufio"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/go-psx/psxcpu/internal/command/parser"
	"github.com/go-psx/psxcpu/internal/console"
)

// Server accepts remote monitor connections against a single console,
// serializing command execution across simultaneous clients.
type Server struct {
	listener net.Listener
	con      *console.Console
	mu       sync.Mutex
	shutdown chan struct{}
	wg       sync.WaitGroup
}

// Start opens a listener on port and serves console commands to every
// client that connects, until Stop is called.
func Start(port string, con *console.Console) (*Server, error) {
	l, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return nil, fmt.Errorf("telnet: listen on %s: %w", port, err)
	}
	s := &Server{listener: l, con: con, shutdown: make(chan struct{})}
	s.wg.Add(1)
	go s.accept()
	slog.Info("telnet monitor listening on :" + port)
	return s, nil
}

// Stop closes the listener and waits for the accept loop to exit.
func (s *Server) Stop() {
	close(s.shutdown)
	s.listener.Close()
	s.wg.Wait()
}

func (s *Server) accept() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.shutdown:
				return
			default:
				slog.Warn("telnet: accept: " + err.Error())
				continue
			}
		}
		go s.handle(conn)
	}
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()
	scanner := bufio.NewScanner(conn)
	fmt.Fprint(conn, "psxcpu> ")
	for scanner.Scan() {
		line := scanner.Text()
		s.mu.Lock()
		quit, err := parser.ProcessCommand(line, s.con)
		s.mu.Unlock()
		if err != nil {
			fmt.Fprintln(conn, "error: "+err.Error())
		}
		if quit {
			return
		}
		fmt.Fprint(conn, "psxcpu> ")
	}
}
