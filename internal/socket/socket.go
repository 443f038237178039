// Package socket implements the request socket named in section 3's
// "IPC" note: a Unix-domain socket that accepts newline-delimited
// action sequence strings and enqueues each as an EventAction.
package socket

import (
	"bufio"
	"net"
	"os"

	"github.com/swayview/swayview/internal/action"
)

// Server listens on a Unix-domain socket and pushes one EventAction
// per received line onto queue.
type Server struct {
	path     string
	listener net.Listener
	queue    *action.Queue
}

// Listen removes any stale socket file at path and binds a new
// listener there.
func Listen(path string, queue *action.Queue) (*Server, error) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	l, err := net.Listen("unix", path)
	if err != nil {
		return nil, err
	}
	return &Server{path: path, listener: l, queue: queue}, nil
}

// Serve accepts connections until the listener is closed, handling
// each connection on its own goroutine. It returns once Close has been
// called (or any other accept error occurs).
func (s *Server) Serve() error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return err
		}
		go s.handle(conn)
	}
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		s.queue.Push(action.Event{Kind: action.EventAction, Sequence: line})
	}
}

// Close stops accepting connections and removes the socket file.
func (s *Server) Close() error {
	err := s.listener.Close()
	os.Remove(s.path)
	return err
}
