package marketdata

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// PriceTick is one underlying-price update delivered by Feed.
type PriceTick struct {
	Ticker    string  `json:"ticker"`
	Price     float64 `json:"price"`
	Timestamp int64   `json:"timestamp"`
}

// Feed is a reference streaming implementation of the underlying-price leg
// of market-data acquisition: it maintains one WebSocket connection to an
// upstream quote source and delivers ticks to an OnPrice callback. It is
// not part of the core contract — callers are free to implement Poller
// however they like (REST polling, a fixture, this feed) — but it exists to
// give the gorilla/websocket dependency a concrete, exercised home, built
// the same way the teacher's delta.WebSocketClient streams ticker data:
// one read loop, one heartbeat loop, reconnect-with-backoff, a
// close-once stop channel.
type Feed struct {
	url    string
	logger *slog.Logger

	mu          sync.RWMutex
	conn        *websocket.Conn
	tickers     []string
	isConnected bool

	onPrice func(PriceTick)
	onError func(error)

	stopChan     chan struct{}
	closeOnce    sync.Once
	started      bool
	reconnecting bool
	writeMu      sync.Mutex
}

// NewFeed returns a Feed that will dial url once Connect is called.
func NewFeed(url string, logger *slog.Logger) *Feed {
	return &Feed{
		url:      url,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// OnPrice registers the callback invoked for every decoded tick.
func (f *Feed) OnPrice(cb func(PriceTick)) { f.onPrice = cb }

// OnError registers the callback invoked on read/dial errors.
func (f *Feed) OnError(cb func(error)) { f.onError = cb }

// Subscribe adds ticker to the set streamed once connected.
func (f *Feed) Subscribe(ticker string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tickers {
		if t == ticker {
			return
		}
	}
	f.tickers = append(f.tickers, ticker)
	if f.isConnected {
		_ = f.sendSubscribe(ticker)
	}
}

// Connect dials the upstream feed and starts the read and heartbeat loops
// on first connect.
func (f *Feed) Connect() error {
	dialer := &websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
		TLSClientConfig:  &tls.Config{NextProtos: []string{"http/1.1"}},
	}

	headers := make(http.Header)
	if u, err := url.Parse(f.url); err == nil {
		headers.Set("Origin", "https://"+u.Host)
	}

	conn, resp, err := dialer.Dial(f.url, headers)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("marketdata: feed dial failed with status %d: %w", resp.StatusCode, err)
		}
		return fmt.Errorf("marketdata: feed dial failed: %w", err)
	}

	f.mu.Lock()
	old := f.conn
	f.conn = conn
	f.isConnected = true
	startLoops := !f.started
	f.started = true
	tickers := append([]string(nil), f.tickers...)
	f.mu.Unlock()

	if old != nil {
		_ = old.Close()
	}
	if startLoops {
		go f.readLoop()
		go f.heartbeat()
	}
	for _, t := range tickers {
		_ = f.sendSubscribe(t)
	}

	if f.logger != nil {
		f.logger.Info("marketdata feed connected", "url", f.url)
	}
	return nil
}

func (f *Feed) sendSubscribe(ticker string) error {
	f.mu.RLock()
	conn := f.conn
	f.mu.RUnlock()
	if conn == nil {
		return fmt.Errorf("marketdata: feed not connected")
	}
	f.writeMu.Lock()
	defer f.writeMu.Unlock()
	return conn.WriteJSON(map[string]any{"type": "subscribe", "ticker": ticker})
}

func (f *Feed) readLoop() {
	for {
		select {
		case <-f.stopChan:
			return
		default:
		}

		f.mu.RLock()
		conn := f.conn
		f.mu.RUnlock()
		if conn == nil {
			time.Sleep(100 * time.Millisecond)
			continue
		}

		_, raw, err := conn.ReadMessage()
		if err != nil {
			if f.onError != nil {
				f.onError(err)
			}
			f.reconnect()
			continue
		}

		var tick PriceTick
		if err := json.Unmarshal(raw, &tick); err != nil {
			continue
		}
		if f.onPrice != nil {
			f.onPrice(tick)
		}
	}
}

func (f *Feed) heartbeat() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-f.stopChan:
			return
		case <-ticker.C:
			f.mu.RLock()
			conn := f.conn
			connected := f.isConnected
			f.mu.RUnlock()
			if conn == nil || !connected {
				continue
			}
			f.writeMu.Lock()
			_ = conn.WriteMessage(websocket.PingMessage, []byte{})
			f.writeMu.Unlock()
		}
	}
}

func (f *Feed) reconnect() {
	f.mu.Lock()
	if f.reconnecting {
		f.mu.Unlock()
		return
	}
	f.reconnecting = true
	f.isConnected = false
	f.mu.Unlock()

	backoff := time.Second
	const maxBackoff = 30 * time.Second
	for {
		select {
		case <-f.stopChan:
			return
		default:
		}

		time.Sleep(backoff)
		if err := f.Connect(); err != nil {
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
			continue
		}

		f.mu.Lock()
		f.reconnecting = false
		f.mu.Unlock()
		return
	}
}

// Close stops the feed's loops and closes the connection. Safe to call
// more than once.
func (f *Feed) Close() {
	f.closeOnce.Do(func() { close(f.stopChan) })
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.conn != nil {
		_ = f.conn.Close()
		f.conn = nil
	}
	f.isConnected = false
}
