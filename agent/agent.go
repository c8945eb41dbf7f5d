// Package agent drives plays for one team connection: it picks a play,
// keeps it running while its invariant holds, and turns the tactics it
// yields into per-robot commands.
package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nstehr/stp/stp-core/ipc"
	"github.com/nstehr/stp/stp-core/model"
	"github.com/nstehr/stp/stp-core/play"
)

// Agent owns play selection for a single team session. It is driven from
// the connection's read loop and is not safe for concurrent use.
type Agent struct {
	Conn *ipc.Connection
	Team string

	catalog []entry
	current play.Play
	prev    *stateSnapshot
}

// entry pairs a factory with a probe instance that is only ever asked
// whether it applies, so selection does not build a play every tick.
type entry struct {
	factory play.Factory
	probe   play.Play
}

// New builds an agent that considers the plays from factories in order.
func New(conn *ipc.Connection, factories ...play.Factory) (*Agent, error) {
	a := &Agent{Conn: conn}
	for _, f := range factories {
		probe, err := f()
		if err != nil {
			return nil, fmt.Errorf("build play: %w", err)
		}
		a.catalog = append(a.catalog, entry{factory: f, probe: probe})
	}
	return a, nil
}

// Current is the running play, or nil.
func (a *Agent) Current() play.Play { return a.current }

// HandleHello completes the handshake so the bridge knows the sidecar is ready.
func (a *Agent) HandleHello(env ipc.Envelope) (*ipc.Envelope, error) {
	var hello ipc.HelloMessage
	if err := json.Unmarshal(env.Data, &hello); err != nil {
		return nil, fmt.Errorf("unmarshal hello: %w", err)
	}

	a.Team = hello.Team
	if a.Conn != nil {
		a.Conn.SetTeam(hello.Team)
	}
	slog.Info("team identified", "team", a.Team)

	ack, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{Status: "ok"})
	if err != nil {
		return nil, err
	}
	return &ack, nil
}

// HandleWorld runs one tick and replies with the robots' commands.
func (a *Agent) HandleWorld(env ipc.Envelope) (*ipc.Envelope, error) {
	var msg ipc.WorldMessage
	if err := json.Unmarshal(env.Data, &msg); err != nil {
		return nil, fmt.Errorf("unmarshal world: %w", err)
	}
	w, err := msg.ToModel()
	if err != nil {
		return nil, fmt.Errorf("convert world: %w", err)
	}

	reply, err := a.Tick(w)
	if err != nil {
		return nil, err
	}
	out, err := ipc.NewEnvelope(ipc.TypeTactics, reply)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Tick advances play selection and the running play by one snapshot.
func (a *Agent) Tick(w model.World) (ipc.TacticsMessage, error) {
	if err := w.Validate(); err != nil {
		return ipc.TacticsMessage{}, err
	}
	a.observe(w)

	if a.current != nil && !a.current.InvariantHolds(w) {
		a.stop("invariant no longer holds")
	}
	if a.current == nil {
		a.current = a.selectPlay(w)
	}
	if a.current == nil {
		return ipc.TacticsMessage{Commands: idle(w)}, nil
	}

	set, err := a.current.Resume(w)
	switch {
	case errors.Is(err, play.ErrPlayDone):
		a.stop("finished")
		return ipc.TacticsMessage{Commands: idle(w)}, nil
	case err != nil:
		name := a.current.Name()
		a.stop("resume failed")
		return ipc.TacticsMessage{}, fmt.Errorf("resume %s: %w", name, err)
	}

	return ipc.TacticsMessage{
		Play:     a.current.Name(),
		Stage:    stageName(a.current),
		Commands: assign(w, set),
	}, nil
}

func (a *Agent) selectPlay(w model.World) play.Play {
	for _, e := range a.catalog {
		if !e.probe.IsApplicable(w) {
			continue
		}
		p, err := e.factory()
		if err != nil {
			slog.Error("failed to build play", "play", e.probe.Name(), "error", err)
			continue
		}
		slog.Info("starting play", "team", a.Team, "play", p.Name())
		return p
	}
	return nil
}

func (a *Agent) stop(reason string) {
	slog.Info("stopping play", "team", a.Team, "play", a.current.Name(), "reason", reason)
	a.current = nil
}

func (a *Agent) observe(w model.World) {
	events := detectEvents(w, a.prev)
	cur := takeSnapshot(w)
	a.prev = &cur
	if len(events) > 0 {
		slog.Info("game events", "team", a.Team, "events", formatEvents(events))
	}
}

func stageName(p play.Play) string {
	if s, ok := p.(interface{ Stage() play.Stage }); ok {
		return s.Stage().String()
	}
	return ""
}
