package finnhub

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// DefaultStreamURL is the Finnhub realtime trade socket endpoint.
const DefaultStreamURL = "wss://ws.finnhub.io"

// TradeHandler receives the latest traded price for a subscribed symbol.
type TradeHandler func(symbol string, price float64)

// StreamConfig configures stream reconnect behavior.
type StreamConfig struct {
	ReconnectDelay    time.Duration
	MaxReconnectDelay time.Duration
	WriteTimeout      time.Duration
}

// DefaultStreamConfig returns the default stream configuration.
func DefaultStreamConfig() StreamConfig {
	return StreamConfig{
		ReconnectDelay:    1 * time.Second,
		MaxReconnectDelay: 30 * time.Second,
		WriteTimeout:      10 * time.Second,
	}
}

// Stream maintains a websocket connection to the Finnhub trade feed and
// dispatches trade prices for subscribed symbols to a handler. Subscriptions
// survive reconnects; the stream resubscribes every tracked symbol after
// reestablishing the connection.
type Stream struct {
	endpoint string
	config   StreamConfig
	handler  TradeHandler

	conn   *websocket.Conn
	connMu sync.Mutex
	closed atomic.Bool

	// symbols tracks active subscriptions for resubscription after reconnect
	symbols   map[string]struct{}
	symbolsMu sync.Mutex

	done chan struct{}
	wg   sync.WaitGroup
}

// NewStream connects to the trade socket and starts the read loop.
// The handler is invoked from the read goroutine and must not block.
func NewStream(ctx context.Context, endpoint, token string, config *StreamConfig, handler TradeHandler) (*Stream, error) {
	cfg := DefaultStreamConfig()
	if config != nil {
		cfg = *config
	}

	s := &Stream{
		endpoint: endpoint + "?token=" + url.QueryEscape(token),
		config:   cfg,
		handler:  handler,
		symbols:  make(map[string]struct{}),
		done:     make(chan struct{}),
	}

	if err := s.connect(ctx); err != nil {
		return nil, err
	}

	s.wg.Add(1)
	go s.readLoop()

	return s, nil
}

func (s *Stream) connect(ctx context.Context) error {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	conn, _, err := dialer.DialContext(ctx, s.endpoint, nil)
	if err != nil {
		return fmt.Errorf("websocket dial: %w", err)
	}

	s.conn = conn
	return nil
}

// Subscribe starts streaming trades for a symbol.
func (s *Stream) Subscribe(symbol string) error {
	if s.closed.Load() {
		return fmt.Errorf("stream closed")
	}

	s.symbolsMu.Lock()
	s.symbols[symbol] = struct{}{}
	s.symbolsMu.Unlock()

	return s.send(streamCommand{Type: "subscribe", Symbol: symbol})
}

// Unsubscribe stops streaming trades for a symbol.
func (s *Stream) Unsubscribe(symbol string) error {
	if s.closed.Load() {
		return fmt.Errorf("stream closed")
	}

	s.symbolsMu.Lock()
	delete(s.symbols, symbol)
	s.symbolsMu.Unlock()

	return s.send(streamCommand{Type: "unsubscribe", Symbol: symbol})
}

func (s *Stream) send(cmd streamCommand) error {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	if s.conn == nil {
		return fmt.Errorf("not connected")
	}

	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	if err := s.conn.WriteJSON(cmd); err != nil {
		return fmt.Errorf("write %s %s: %w", cmd.Type, cmd.Symbol, err)
	}
	return nil
}

// Close shuts down the stream and waits for the read loop to exit.
func (s *Stream) Close() error {
	if s.closed.Swap(true) {
		return nil
	}

	close(s.done)

	s.connMu.Lock()
	if s.conn != nil {
		s.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		s.conn.Close()
	}
	s.connMu.Unlock()

	s.wg.Wait()
	return nil
}

// readLoop reads trade messages and dispatches them, reconnecting with
// exponential backoff on read errors.
func (s *Stream) readLoop() {
	defer s.wg.Done()

	reconnectDelay := s.config.ReconnectDelay

	for !s.closed.Load() {
		s.connMu.Lock()
		conn := s.conn
		s.connMu.Unlock()

		if conn == nil {
			if !s.reconnect(reconnectDelay) {
				return
			}
			reconnectDelay = reconnectDelay * 2
			if reconnectDelay > s.config.MaxReconnectDelay {
				reconnectDelay = s.config.MaxReconnectDelay
			}
			continue
		}

		var msg streamMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if s.closed.Load() {
				return
			}

			s.connMu.Lock()
			s.conn.Close()
			s.conn = nil
			s.connMu.Unlock()
			continue
		}

		// Reset delay on successful read
		reconnectDelay = s.config.ReconnectDelay

		switch msg.Type {
		case "trade":
			for _, trade := range msg.Data {
				s.handler(trade.Symbol, trade.Price)
			}
		case "error":
			log.Printf("finnhub stream error: %s", msg.Msg)
		}
	}
}

// reconnect waits out the backoff delay, redials and resubscribes every
// tracked symbol. Returns false when the stream was closed while waiting.
func (s *Stream) reconnect(delay time.Duration) bool {
	select {
	case <-s.done:
		return false
	case <-time.After(delay):
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.connect(ctx); err != nil {
		return true
	}

	s.symbolsMu.Lock()
	symbols := make([]string, 0, len(s.symbols))
	for symbol := range s.symbols {
		symbols = append(symbols, symbol)
	}
	s.symbolsMu.Unlock()

	for _, symbol := range symbols {
		if err := s.send(streamCommand{Type: "subscribe", Symbol: symbol}); err != nil {
			log.Printf("finnhub stream resubscribe %s: %v", symbol, err)
		}
	}

	return true
}
