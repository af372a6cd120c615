package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"dhpipe/calculator"
	"dhpipe/model"
)

// message types
const (
	msgEnv      = "env"
	msgStart    = "start"
	msgStop     = "stop"
	msgEnvSet   = "envSet"
	msgStarted  = "started"
	msgProgress = "progress"
	msgResult   = "result"
	msgStopped  = "stopped"
	msgError    = "error"
)

const (
	outcomeOK       = "ok"
	outcomeRejected = "rejected"
	outcomeCanceled = "canceled"
)

// Hub serves one websocket client: it keeps the client's configuration and
// runs at most one simulation at a time.
type Hub struct {
	conn    *websocket.Conn
	opts    Options
	metrics *Metrics

	// request
	msg chan model.Msg
	// response, written by handleResponse only
	send chan model.Msg
	done chan struct{}

	mu     sync.Mutex
	cfg    calculator.Config
	cancel context.CancelFunc
}

func NewHub(conn *websocket.Conn, cfg calculator.Config, opts Options, metrics *Metrics) *Hub {
	return &Hub{
		conn:    conn,
		opts:    opts,
		metrics: metrics,
		msg:     make(chan model.Msg, 10),
		send:    make(chan model.Msg, 64),
		done:    make(chan struct{}),
		cfg:     cfg,
	}
}

func (h *Hub) handleResponse() {
	for {
		select {
		case reply := <-h.send:
			if err := h.conn.WriteJSON(&reply); err != nil {
				log.Warn("write: ", err)
			}
		case <-h.done:
			return
		}
	}
}

func (h *Hub) handleRequest() {
	for msg := range h.msg {
		switch msg.Type {
		case msgEnv:
			h.setEnv(msg.Content)
		case msgStart:
			h.start()
		case msgStop:
			h.stop()
		default:
			log.WithFields(log.Fields{"type": msg.Type}).Warn("no such message type")
			h.reply(msgError, "no such type: "+msg.Type)
		}
	}
}

// reply drops the message once the connection is gone.
func (h *Hub) reply(typ, content string) {
	select {
	case h.send <- model.Msg{Type: typ, Content: content}:
	case <-h.done:
	}
}

func (h *Hub) replyJSON(typ string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		h.reply(msgError, err.Error())
		return
	}
	h.reply(typ, string(data))
}

func (h *Hub) setEnv(content string) {
	var env model.Env
	if err := json.Unmarshal([]byte(content), &env); err != nil {
		h.reply(msgError, "bad env: "+err.Error())
		return
	}
	h.mu.Lock()
	cfg, err := h.cfg.WithEnv(env)
	if err == nil {
		h.cfg = cfg
	}
	h.mu.Unlock()
	if err != nil {
		h.reply(msgError, err.Error())
		return
	}
	log.WithFields(log.Fields{
		"role":  cfg.Boundary.Role,
		"DN":    cfg.Segment.NominalDiameter,
		"steps": cfg.Discretization.Steps,
	}).Info("env set")
	h.replyJSON(msgEnvSet, cfg)
}

func (h *Hub) start() {
	h.mu.Lock()
	if h.cancel != nil {
		h.mu.Unlock()
		h.reply(msgError, "simulation already running")
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	cfg := h.cfg
	h.mu.Unlock()

	h.reply(msgStarted, "")
	go h.run(ctx, cfg)
}

func (h *Hub) stop() {
	h.mu.Lock()
	cancel := h.cancel
	h.mu.Unlock()
	if cancel == nil {
		h.reply(msgStopped, "no simulation running")
		return
	}
	cancel()
}

func (h *Hub) run(ctx context.Context, cfg calculator.Config) {
	calcHub := calculator.NewCalcHub(h.opts.PushEvery)
	forwarded := make(chan struct{})
	go func() {
		for p := range calcHub.Progress {
			h.replyJSON(msgProgress, p)
		}
		close(forwarded)
	}()

	res, err := h.execute(ctx, cfg, calcHub)
	calcHub.Close()
	<-forwarded

	// released before the final reply, a start sent on receipt must be accepted
	h.mu.Lock()
	h.cancel()
	h.cancel = nil
	h.mu.Unlock()

	switch {
	case err == nil:
		h.metrics.observeRun(outcomeOK, res.Field.Steps(), res.Elapsed)
		h.replyJSON(msgResult, res.BuildPushData(h.opts.MaxPoints))
	case errors.Is(err, context.Canceled):
		h.metrics.observeRun(outcomeCanceled, 0, 0)
		h.reply(msgStopped, "stopped")
	default:
		h.metrics.observeRun(outcomeRejected, 0, 0)
		h.reply(msgError, err.Error())
	}
}

func (h *Hub) execute(ctx context.Context, cfg calculator.Config, calcHub *calculator.CalcHub) (*calculator.Result, error) {
	d := cfg.Discretization
	if h.opts.MaxCells > 0 && !d.Fits(h.opts.MaxCells) {
		return nil, fmt.Errorf("%w: %d nodes x %d steps exceeds the per-run limit of %d values",
			model.ErrConfiguration, d.Nodes, d.Steps, h.opts.MaxCells)
	}
	calc, geom, err := calculator.Prepare(cfg)
	if err != nil {
		return nil, err
	}
	h.metrics.ActiveRuns.Inc()
	defer h.metrics.ActiveRuns.Dec()
	return calculator.Execute(ctx, cfg, geom, calc, calcHub)
}

// close stops a running simulation and releases the writer.
func (h *Hub) close() {
	h.mu.Lock()
	if h.cancel != nil {
		h.cancel()
	}
	h.mu.Unlock()
	close(h.done)
	close(h.msg)
}
