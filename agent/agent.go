package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/MegaMek/megamek-sub083/board"
	"github.com/MegaMek/megamek-sub083/history"
	"github.com/MegaMek/megamek-sub083/ipc"
	"github.com/MegaMek/megamek-sub083/model"
	"github.com/MegaMek/megamek-sub083/profile"
	"github.com/MegaMek/megamek-sub083/strategy"
	"github.com/MegaMek/megamek-sub083/threat"
	"github.com/MegaMek/megamek-sub083/trace"
	"github.com/MegaMek/megamek-sub083/utility"
	"github.com/MegaMek/megamek-sub083/world"
)

// ErrNoSession is returned for a game state that arrives before hello.
var ErrNoSession = errors.New("no session: hello not received")

// Config is shared by every session of one sidecar process.
type Config struct {
	Profile *profile.Profile  // nil uses the default profile
	Workers int               // concurrent candidate scoring
	Trace   *trace.PassLogger // optional
	History *history.Store    // optional
	Debug   bool              // keep per-decision debug text
	TopN    int               // entries per recorded pass; 0 keeps all
}

// Agent owns the decision-making for a single player session.
type Agent struct {
	Conn   *ipc.Connection
	Player int
	Team   int
	Name   string

	cfg   Config
	maker *utility.DecisionMaker
	goals *strategy.Manager
	cache *utility.DamageCache

	mu         sync.Mutex
	board      *board.Representation
	strategist *Strategist
}

func New(conn *ipc.Connection, cfg Config) *Agent {
	if cfg.Profile == nil {
		cfg.Profile = profile.Default(model.DefaultBehaviorSettings())
	}
	m := &utility.DecisionMaker{Bonus: utility.CommitmentBonus, Workers: cfg.Workers}
	if cfg.Debug {
		m.Reporter = func() utility.DebugReporter { return trace.NewReporter(true) }
	}
	return &Agent{
		Conn:  conn,
		cfg:   cfg,
		maker: m,
		goals: strategy.NewManager(),
		cache: utility.NewDamageCache(),
	}
}

// HandleHello binds the session to a player and a board, and places the
// strategic goals.
func (a *Agent) HandleHello(env ipc.Envelope) (*ipc.Envelope, error) {
	var hello ipc.HelloMessage
	if err := env.Decode(&hello); err != nil {
		return nil, err
	}
	b, err := boardFor(hello)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.Player, a.Team, a.Name = hello.Player, hello.Team, hello.Name
	if a.Conn != nil {
		a.Conn.Player = hello.Player
	}
	a.goals = strategy.NewManager()
	a.cache.Clear()
	a.board = board.New(b)
	a.strategist = NewStrategist(a.board, a.goals, a.cache)
	a.strategist.Initialize(a.cfg.Profile.Settings)
	goals := len(a.goals.AllGoals())
	a.mu.Unlock()

	slog.Info("player identified",
		"player", a.Player,
		"team", a.Team,
		"name", a.Name,
		"profile", a.cfg.Profile.Name,
		"decisions", len(a.cfg.Profile.Decisions),
		"board", fmt.Sprintf("%dx%d", b.Width, b.Height),
	)

	ack, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{Status: "ok", Goals: goals})
	if err != nil {
		return nil, err
	}
	return &ack, nil
}

func boardFor(hello ipc.HelloMessage) (*model.Board, error) {
	switch {
	case hello.Board != nil:
		if !hello.Board.Valid() {
			return nil, fmt.Errorf("hello board: %dx%d with %d hexes", hello.Board.Width, hello.Board.Height, len(hello.Board.Hexes))
		}
		return hello.Board, nil
	case hello.Generate != nil:
		cfg := model.DefaultGenConfig()
		if hello.Generate.Width > 0 && hello.Generate.Height > 0 {
			cfg.Width, cfg.Height = hello.Generate.Width, hello.Generate.Height
		}
		cfg.Seed = hello.Generate.Seed
		return model.GenerateBoard(cfg), nil
	default:
		return nil, errors.New("hello carries neither a board nor a generate request")
	}
}

// HandleGameState scores the acting unit's candidates and replies with the
// ranking.
func (a *Agent) HandleGameState(env ipc.Envelope) (*ipc.Envelope, error) {
	var gs model.GameState
	if err := env.Decode(&gs); err != nil {
		return nil, err
	}
	msg, err := a.Score(&gs)
	if err != nil {
		return nil, err
	}
	reply, err := ipc.NewEnvelope(ipc.TypeRanking, msg)
	if err != nil {
		return nil, err
	}
	return &reply, nil
}

// Score runs one scoring pass over gs and records it.
func (a *Agent) Score(gs *model.GameState) (ipc.RankingMessage, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.board == nil {
		return ipc.RankingMessage{}, ErrNoSession
	}
	if gs.Player == 0 && gs.Team == 0 {
		gs.Player, gs.Team = a.Player, a.Team
	}

	start := time.Now()
	w := world.New(gs, a.board)
	for _, e := range a.strategist.Observe(gs, w) {
		slog.Info("game event", "kind", e.Kind, "turn", e.Turn, "detail", e.Detail)
	}

	ctxs, err := a.contexts(gs, w)
	if err != nil {
		return ipc.RankingMessage{}, err
	}
	r := a.maker.ScoreAllDecisions(a.cfg.Profile.Decisions, ctxs)

	best, ok := a.maker.PickOne(r)
	if ok && best.Decision.Action == utility.ActionAttack {
		if t, ok := best.Context.Target(); ok {
			a.strategist.RecordTarget(t.ID)
		}
	}

	pass := trace.NewPass(gs.Turn, gs.ActingUnit, a.cfg.Profile.Name, ctxs, r)
	pass.Elapsed = time.Since(start)
	a.record(pass)

	bestName := "none"
	if ok {
		bestName = best.Decision.Name()
	}
	slog.Info("scoring pass finished",
		"turn", gs.Turn,
		"unit", gs.ActingUnit,
		"candidates", humanize.Comma(int64(len(ctxs))),
		"scored", humanize.Comma(int64(r.Len())),
		"best", bestName,
		"score", best.Score,
		"elapsed", pass.Elapsed,
	)
	if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		slog.Debug("session state\n" + a.strategist.Summary(gs))
	}

	return rankingMessage(pass), nil
}

// contexts builds one decision context per candidate from a shared template.
func (a *Agent) contexts(gs *model.GameState, w *world.World) ([]*utility.DecisionContext, error) {
	unit, ok := w.Unit(gs.ActingUnit)
	if !ok {
		return nil, fmt.Errorf("acting unit %d not in game state", gs.ActingUnit)
	}

	tmpl := utility.NewContextBuilder(w).
		Unit(unit).
		Goals(a.goals).
		Settings(&a.cfg.Profile.Settings).
		Behavior(gs.Behavior).
		DamageCache(a.cache).
		Threat(threat.NewAssessment(w)).
		UnitInfo(threat.UnitInfo{}).
		Damage(threat.NewDamage(w))
	if gs.Waypoint != nil {
		tmpl = tmpl.Waypoint(*gs.Waypoint)
	}

	ctxs := make([]*utility.DecisionContext, 0, len(gs.Candidates))
	for i := range gs.Candidates {
		c := &gs.Candidates[i]
		action := utility.Action(c.Action)
		if action == "" {
			action = utility.ActionMove
		}
		b := tmpl.Path(&c.Path).Action(action)
		if c.TargetID != 0 {
			if t, ok := w.Unit(c.TargetID); ok {
				b = b.Target(t)
			} else {
				slog.Warn("candidate target not visible", "candidate", i, "target", c.TargetID)
			}
		}
		ctx, err := b.Build()
		if err != nil {
			return nil, fmt.Errorf("candidate %d: %w", i, err)
		}
		ctxs = append(ctxs, ctx)
	}
	return ctxs, nil
}

func (a *Agent) record(pass trace.Pass) {
	rec := pass.Top(a.cfg.TopN)
	if a.cfg.Trace != nil {
		if err := a.cfg.Trace.WritePass(rec); err != nil {
			slog.Error("trace write failed", "pass", pass.ID, "error", err)
		}
	}
	if a.cfg.History != nil {
		if err := a.cfg.History.SavePass(rec); err != nil {
			slog.Error("history write failed", "pass", pass.ID, "error", err)
		}
	}
}

func rankingMessage(p trace.Pass) ipc.RankingMessage {
	msg := ipc.RankingMessage{
		Pass:      p.ID.String(),
		Turn:      p.Turn,
		Unit:      p.Unit,
		Decisions: make([]ipc.RankedDecision, 0, len(p.Entries)),
	}
	for _, e := range p.Entries {
		msg.Decisions = append(msg.Decisions, ipc.RankedDecision{
			Rank:      e.Rank,
			Decision:  e.Decision,
			Action:    e.Action,
			Score:     e.Score,
			Candidate: e.Candidate,
			TargetID:  e.Target,
		})
	}
	return msg
}

// Strategist exposes the session's long-lived state; nil before hello.
func (a *Agent) Strategist() *Strategist {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.strategist
}

// Goals returns the session's strategic goals manager.
func (a *Agent) Goals() *strategy.Manager {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.goals
}
