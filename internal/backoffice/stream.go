package backoffice

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/farah-rezgui/ecume-admin/internal/logging"
)

// OrderEvent is one live notification from the order stream
type OrderEvent struct {
	// Type is the event kind reported by the server
	// ("created", "updated", "cancelled")
	Type string `json:"type"`

	// Order is the affected order record
	Order Order `json:"commande"`
}

// OrderStream is a live subscription to order events over WebSocket.
// Events arrive on Events(); the channel closes when the stream ends, after
// which Err reports why. Close tears the connection down; closing twice is
// safe.
type OrderStream struct {
	conn   *websocket.Conn
	events chan OrderEvent
	done   chan struct{}

	mu        sync.Mutex
	err       error
	closeOnce sync.Once
}

// WatchOrders opens a live order event stream. The stream is bound to ctx:
// cancelling it closes the connection and ends the subscription.
func (c *Client) WatchOrders(ctx context.Context) (*OrderStream, error) {
	wsURL := httpToWS(c.BaseURL) + PathOrderStream

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		if resp != nil {
			return nil, ClassifyStatus(resp.StatusCode, "order stream handshake rejected")
		}
		return nil, NewNetworkError("failed to connect to order stream", err)
	}

	stream := &OrderStream{
		conn:   conn,
		events: make(chan OrderEvent),
		done:   make(chan struct{}),
	}

	// Close the connection when the owning view's context ends
	go func() {
		<-ctx.Done()
		stream.Close()
	}()

	go stream.readLoop()

	logging.Debug("order stream connected", zap.String("url", wsURL))
	return stream, nil
}

// Events returns the channel of incoming order events
func (s *OrderStream) Events() <-chan OrderEvent {
	return s.events
}

// Err returns the terminal error after Events() closes, or nil for a clean
// shutdown via Close
func (s *OrderStream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close tears down the stream connection
func (s *OrderStream) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		_ = s.conn.Close()
	})
}

// readLoop reads frames until the connection drops or a frame fails to
// decode. Undecodable frames end the stream with an unexpected-format
// error rather than being skipped silently.
func (s *OrderStream) readLoop() {
	defer close(s.events)

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			s.setErr(classifyStreamError(err))
			return
		}

		var event OrderEvent
		if err := json.Unmarshal(data, &event); err != nil {
			s.setErr(NewFormatError("failed to decode order event", err))
			s.Close()
			return
		}

		logging.Debug("order event",
			zap.String("type", event.Type),
			zap.String("order_id", event.Order.ID),
		)

		select {
		case s.events <- event:
		case <-s.done:
			return
		}
	}
}

func (s *OrderStream) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.err = err
	}
}

// httpToWS rewrites an http(s) base URL to its ws(s) equivalent
func httpToWS(baseURL string) string {
	switch {
	case strings.HasPrefix(baseURL, "https://"):
		return "wss://" + strings.TrimPrefix(baseURL, "https://")
	case strings.HasPrefix(baseURL, "http://"):
		return "ws://" + strings.TrimPrefix(baseURL, "http://")
	default:
		return "ws://" + baseURL
	}
}

// classifyStreamError maps a read failure to a typed error, treating a
// normal close handshake as a clean shutdown
func classifyStreamError(err error) error {
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		return nil
	}
	if strings.Contains(err.Error(), "use of closed network connection") {
		return nil
	}
	return NewNetworkError("order stream disconnected", err)
}
