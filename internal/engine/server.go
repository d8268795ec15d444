package engine

import "sync"

// Server serializes commands from one client stream against a shared
// engine. Commands run one at a time and the session persists across them.
type Server struct {
	mu     sync.Mutex
	engine *DBEngine
	sess   *Session
}

// NewServer wraps e with a fresh session.
func NewServer(e *DBEngine) *Server {
	return &Server{engine: e, sess: NewSession()}
}

// HandleCommand runs one command and returns the response text.
func (s *Server) HandleCommand(command string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.HandleCommand(s.sess, command)
}

// Database returns the currently selected database, if any.
func (s *Server) Database() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.Database
}
