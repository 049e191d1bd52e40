package logging

import (
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"time"
)

// LogstashWriter mirrors log lines to a Logstash TCP input without ever
// blocking the logger. While Logstash is unreachable, writes are dropped and a
// reconnect is attempted once per backoff window.
type LogstashWriter struct {
	// Tunable before first Write. Zero values pick the defaults below.
	DialTimeout  time.Duration
	WriteTimeout time.Duration
	RetryBackoff time.Duration

	addr string

	mu        sync.Mutex
	conn      net.Conn
	nextRetry time.Time
	closed    bool
}

const (
	defaultDialTimeout  = 2 * time.Second
	defaultWriteTimeout = time.Second
	defaultRetryBackoff = 5 * time.Second
)

// NewLogstashWriter returns a writer for the given Logstash TCP address. The
// connection is established lazily on the first Write. Safe for concurrent use.
func NewLogstashWriter(addr string) (*LogstashWriter, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, errors.New("logstash: empty address")
	}
	return &LogstashWriter{
		addr:         addr,
		DialTimeout:  defaultDialTimeout,
		WriteTimeout: defaultWriteTimeout,
		RetryBackoff: defaultRetryBackoff,
	}, nil
}

// Write implements io.Writer. It always reports the full length as written so
// a MultiWriter wrapping stderr keeps logging when Logstash is down.
func (w *LogstashWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	line := make([]byte, len(p))
	copy(line, p)
	if line[len(line)-1] != '\n' {
		line = append(line, '\n')
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return 0, io.ErrClosedPipe
	}
	if !w.connectLocked() {
		return len(p), nil
	}

	if w.WriteTimeout > 0 {
		_ = w.conn.SetWriteDeadline(time.Now().Add(w.WriteTimeout))
	}
	if _, err := w.conn.Write(line); err != nil {
		_ = w.conn.Close()
		w.conn = nil
		w.nextRetry = time.Now().Add(w.RetryBackoff)
	}
	return len(p), nil
}

// Close tears down the TCP connection. Further writes fail.
func (w *LogstashWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	if w.conn == nil {
		return nil
	}
	err := w.conn.Close()
	w.conn = nil
	return err
}

func (w *LogstashWriter) connectLocked() bool {
	if w.conn != nil {
		return true
	}
	if !w.nextRetry.IsZero() && time.Now().Before(w.nextRetry) {
		return false
	}
	conn, err := net.DialTimeout("tcp", w.addr, w.DialTimeout)
	if err != nil {
		w.nextRetry = time.Now().Add(w.RetryBackoff)
		return false
	}
	w.conn = conn
	w.nextRetry = time.Time{}
	return true
}
