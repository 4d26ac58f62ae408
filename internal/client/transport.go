package client

import (
	"encoding/json"
	"errors"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"pethealth/internal/domain"
)

// Status is the connection lifecycle state of a Transport.
type Status string

const (
	StatusDisconnected Status = "disconnected"
	StatusConnecting   Status = "connecting"
	StatusConnected    Status = "connected"
	StatusBackoff      Status = "backoff"
)

// ErrMalformedToken is returned by Connect when the token cannot be a
// JWT. A token with no dot separator never reaches the server.
var ErrMalformedToken = errors.New("client: malformed session token")

// ErrClosed is returned by Connect after Close.
var ErrClosed = errors.New("client: transport closed")

const (
	maxDialAttempts = 5
	retryStep       = time.Second
	heartbeatPeriod = 30 * time.Second
	readWait        = 90 * time.Second
	sendWait        = 10 * time.Second
)

// Transport keeps one live event stream to the server. It dials the
// websocket endpoint, retries with linear backoff when the dial or
// the stream fails, heartbeats the application-level ping, and routes
// every pushed notification through the dispatch table into the store
// and the alerter.
type Transport struct {
	wsURL   string
	store   *Store
	alerter Alerter
	dialer  *websocket.Dialer

	onStatus func(Status)

	mu      sync.Mutex
	status  Status
	conn    *websocket.Conn
	started bool
	closed  bool
	stop    chan struct{}
	done    chan struct{}
}

// TransportConfig carries the dependencies of a Transport. Store is
// required; Alerter and OnStatus may be nil.
type TransportConfig struct {
	// BaseURL is the HTTP base of the API, e.g. http://localhost:8080.
	BaseURL string
	Token   string
	Store   *Store
	Alerter Alerter
	// OnStatus observes every lifecycle transition. Called from the
	// transport goroutine.
	OnStatus func(Status)
}

// WSEndpoint derives the stream endpoint from the API base: the
// scheme flips to ws/wss, any /api path prefix is dropped, and the
// token rides the query string the way the server expects.
func WSEndpoint(baseURL, token string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = "/ws"
	u.RawQuery = url.Values{"token": {token}}.Encode()
	return u.String(), nil
}

func NewTransport(cfg TransportConfig) (*Transport, error) {
	if !strings.Contains(cfg.Token, ".") {
		return nil, ErrMalformedToken
	}
	wsURL, err := WSEndpoint(cfg.BaseURL, cfg.Token)
	if err != nil {
		return nil, err
	}
	return &Transport{
		wsURL:    wsURL,
		store:    cfg.Store,
		alerter:  cfg.Alerter,
		dialer:   websocket.DefaultDialer,
		onStatus: cfg.OnStatus,
		status:   StatusDisconnected,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Connect starts the connection loop in the background. It dials up
// to five times, waiting attempt*1s between tries, and keeps
// redialing the same way whenever an established stream drops. After
// five consecutive failures the transport parks in Disconnected.
func (t *Transport) Connect() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrClosed
	}
	if t.started {
		t.mu.Unlock()
		return nil
	}
	t.started = true
	t.mu.Unlock()

	go t.run()
	return nil
}

// IsConnected reports whether a stream is currently established.
func (t *Transport) IsConnected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status == StatusConnected
}

// Status returns the current lifecycle state.
func (t *Transport) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Close tears the stream down and stops reconnecting. Safe to call
// more than once and from any goroutine.
func (t *Transport) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	started := t.started
	close(t.stop)
	if t.conn != nil {
		t.conn.Close()
	}
	t.mu.Unlock()

	if started {
		<-t.done
	}
	t.setStatus(StatusDisconnected)
}

func (t *Transport) run() {
	defer close(t.done)

	for {
		if !t.dialWithRetry() {
			return
		}
		// stream established; serve until it drops or Close fires
		if !t.serve() {
			return
		}
	}
}

// dialWithRetry walks the bounded retry ladder. It reports false when
// the transport should stop for good.
func (t *Transport) dialWithRetry() bool {
	for attempt := 1; attempt <= maxDialAttempts; attempt++ {
		t.setStatus(StatusConnecting)

		conn, _, err := t.dialer.Dial(t.wsURL, nil)
		if err == nil {
			t.mu.Lock()
			if t.closed {
				t.mu.Unlock()
				conn.Close()
				return false
			}
			t.conn = conn
			t.mu.Unlock()
			t.setStatus(StatusConnected)
			return true
		}

		log.Printf("stream dial failed attempt=%d err=%v", attempt, err)
		if attempt == maxDialAttempts {
			break
		}

		t.setStatus(StatusBackoff)
		select {
		case <-time.After(time.Duration(attempt) * retryStep):
		case <-t.stop:
			return false
		}
	}

	t.setStatus(StatusDisconnected)
	return false
}

// serve pumps the established stream. It returns true when the stream
// dropped and a redial should follow, false when Close ended it.
func (t *Transport) serve() bool {
	t.mu.Lock()
	conn := t.conn
	t.mu.Unlock()

	hb := time.NewTicker(heartbeatPeriod)
	defer hb.Stop()

	readErr := make(chan error, 1)
	go func() {
		for {
			conn.SetReadDeadline(time.Now().Add(readWait))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				readErr <- err
				return
			}
			t.dispatch(msg)
		}
	}()

	for {
		select {
		case <-t.stop:
			conn.Close()
			return false
		case err := <-readErr:
			conn.Close()
			select {
			case <-t.stop:
				return false
			default:
			}
			log.Printf("stream dropped err=%v", err)
			return true
		case <-hb.C:
			conn.SetWriteDeadline(time.Now().Add(sendWait))
			if err := conn.WriteJSON(map[string]string{"event": "ping"}); err != nil {
				conn.Close()
				return true
			}
		}
	}
}

type inboundFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// dispatch routes one inbound frame. Unknown event names and frames
// that fail to decode are dropped without disturbing the stream.
func (t *Transport) dispatch(msg []byte) {
	var frame inboundFrame
	if err := json.Unmarshal(msg, &frame); err != nil {
		log.Printf("stream frame discarded err=%v", err)
		return
	}

	if frame.Event == "pong" {
		return
	}

	kind, ok := strings.CutPrefix(frame.Event, "notification:")
	if !ok {
		return
	}
	route, ok := RouteFor(domain.NotificationType(kind))
	if !ok {
		log.Printf("stream frame discarded event=%s", frame.Event)
		return
	}

	var n domain.Notification
	if err := json.Unmarshal(frame.Data, &n); err != nil {
		log.Printf("stream frame discarded event=%s err=%v", frame.Event, err)
		return
	}

	if route.Store {
		t.store.Add(n)
	}
	if route.Alert != AlertNone && t.alerter != nil {
		t.alerter.Alert(route.Alert, route.Sound, n)
	}
}

func (t *Transport) setStatus(s Status) {
	t.mu.Lock()
	if t.status == s || t.closed && s != StatusDisconnected {
		t.mu.Unlock()
		return
	}
	t.status = s
	fn := t.onStatus
	t.mu.Unlock()

	if fn != nil {
		fn(s)
	}
}
