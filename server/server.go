package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"dhpipe/calculator"
	"dhpipe/model"
)

// Options shape what a client gets back from a run.
type Options struct {
	PushEvery int // progress every n steps
	MaxPoints int // outlet points in the result message, 0 keeps all
	MaxCells  int // nodes x (steps+1) allowed per run, 0 leaves only the model limit
}

type Server struct {
	addr     string
	upgrader websocket.Upgrader
	cfg      calculator.Config
	opts     Options
	metrics  *Metrics
}

// NewServer serves simulations of cfg, which clients may adjust per
// connection with "env" messages.
func NewServer(addr string, upgrader websocket.Upgrader, cfg calculator.Config, opts Options, metrics *Metrics) *Server {
	return &Server{
		addr:     addr,
		upgrader: upgrader,
		cfg:      cfg,
		opts:     opts,
		metrics:  metrics,
	}
}

// serveWs handles websocket requests from the peer.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("upgrade: ", err)
		return
	}
	defer conn.Close()

	s.metrics.Connections.Inc()
	defer s.metrics.Connections.Dec()
	log.WithFields(log.Fields{"remote": r.RemoteAddr}).Info("client connected")

	hub := NewHub(conn, s.cfg, s.opts, s.metrics)
	go hub.handleRequest()
	go hub.handleResponse()
	defer hub.close()

	for {
		var msg model.Msg
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithFields(log.Fields{"remote": r.RemoteAddr}).Warn("read: ", err)
			}
			break
		}
		hub.msg <- msg
	}
	log.WithFields(log.Fields{"remote": r.RemoteAddr}).Info("client disconnected")
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	mux.Handle("/metrics", s.metrics.Handler())
	return mux
}

func (s *Server) Serve() error {
	log.WithFields(log.Fields{"addr": s.addr}).Info("listening")
	return http.ListenAndServe(s.addr, s.Handler())
}
