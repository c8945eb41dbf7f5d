package agent

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nstehr/stp/stp-core/geom"
	"github.com/nstehr/stp/stp-core/ipc"
	"github.com/nstehr/stp/stp-core/model"
	"github.com/nstehr/stp/stp-core/passing"
	"github.com/nstehr/stp/stp-core/play"
	"github.com/nstehr/stp/stp-core/tactic"
)

// scriptedPlay applies on our free kicks, holds until the game stops and
// reports done after doneAfter resumes when doneAfter is positive.
type scriptedPlay struct {
	set       play.TacticSet
	resumes   int
	doneAfter int
}

func (p *scriptedPlay) Name() string { return "scripted" }

func (p *scriptedPlay) IsApplicable(w model.World) bool { return w.GameState.IsOurFreeKick() }

func (p *scriptedPlay) InvariantHolds(w model.World) bool { return !w.GameState.IsStopped() }

func (p *scriptedPlay) Resume(model.World) (play.TacticSet, error) {
	p.resumes++
	if p.doneAfter > 0 && p.resumes > p.doneAfter {
		return nil, play.ErrPlayDone
	}
	return p.set, nil
}

type scriptedFactory struct {
	built     []*scriptedPlay
	doneAfter int
}

func (f *scriptedFactory) factory() play.Factory {
	return func() (play.Play, error) {
		p := &scriptedPlay{
			set:       play.TacticSet{tactic.NewGoalie(), moveTo("runner", geom.Point{X: 1})},
			doneAfter: f.doneAfter,
		}
		f.built = append(f.built, p)
		return p, nil
	}
}

func freeKickWorld() model.World {
	w := baseWorld()
	w.GameState = model.GameState{Play: model.Ready, Restart: model.RestartDirectFree, OurRestart: true}
	return w
}

func TestTickIdleWithoutApplicablePlay(t *testing.T) {
	f := &scriptedFactory{}
	a, err := New(nil, f.factory())
	require.NoError(t, err)

	msg, err := a.Tick(baseWorld())
	require.NoError(t, err)
	assert.Empty(t, msg.Play)
	assert.Len(t, msg.Commands, 3)
	assert.Nil(t, a.Current())
	assert.Len(t, f.built, 1, "only the probe is built")
}

func TestTickStartsAndStopsPlay(t *testing.T) {
	f := &scriptedFactory{}
	a, err := New(nil, f.factory())
	require.NoError(t, err)

	msg, err := a.Tick(freeKickWorld())
	require.NoError(t, err)
	assert.Equal(t, "scripted", msg.Play)
	require.Len(t, f.built, 2)
	running := f.built[1]
	assert.Equal(t, 1, running.resumes)
	assert.Zero(t, f.built[0].resumes, "the probe is never resumed")

	w := freeKickWorld()
	w.GameState.Play = model.Playing
	_, err = a.Tick(w)
	require.NoError(t, err)
	assert.Equal(t, 2, running.resumes)
	assert.Len(t, f.built, 2)

	msg, err = a.Tick(baseWorld())
	require.NoError(t, err)
	assert.Empty(t, msg.Play)
	assert.Nil(t, a.Current())
	assert.Equal(t, 2, running.resumes)
}

func TestTickStartsFreshPlayAfterDone(t *testing.T) {
	f := &scriptedFactory{doneAfter: 2}
	a, err := New(nil, f.factory())
	require.NoError(t, err)

	for range 2 {
		msg, err := a.Tick(freeKickWorld())
		require.NoError(t, err)
		require.Equal(t, "scripted", msg.Play)
	}
	msg, err := a.Tick(freeKickWorld())
	require.NoError(t, err)
	assert.Empty(t, msg.Play)
	assert.Nil(t, a.Current())

	msg, err = a.Tick(freeKickWorld())
	require.NoError(t, err)
	assert.Equal(t, "scripted", msg.Play)
	assert.Len(t, f.built, 3)
}

func TestTickRejectsMalformedWorld(t *testing.T) {
	a, err := New(nil)
	require.NoError(t, err)
	w := baseWorld()
	w.Friendly.Robots = nil
	_, err = a.Tick(w)
	assert.ErrorIs(t, err, model.ErrMalformedWorld)
}

func TestHandleHello(t *testing.T) {
	a, err := New(nil)
	require.NoError(t, err)
	env, err := ipc.NewEnvelope(ipc.TypeHello, ipc.HelloMessage{Team: "blue"})
	require.NoError(t, err)

	resp, err := a.HandleHello(env)
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, ipc.TypeAck, resp.Type)
	assert.Equal(t, "blue", a.Team)
}

func TestHandleWorldRunsCornerKick(t *testing.T) {
	a, err := New(nil, play.CornerKickFactory(play.DefaultCornerKickConfig(), passing.DefaultConfig()))
	require.NoError(t, err)

	robots := []model.Robot{
		{ID: 0, Position: geom.Point{X: -4.4}},
		{ID: 1, Position: geom.Point{X: 4.0, Y: 2.5}},
		{ID: 2, Position: geom.Point{X: 2.0, Y: 1.0}},
		{ID: 3, Position: geom.Point{X: 2.5, Y: -1.5}},
		{ID: 4, Position: geom.Point{X: 1.0, Y: 0}},
		{ID: 5, Position: geom.Point{X: 0, Y: -2}},
	}
	msg := ipc.WorldMessage{
		Ball:      model.Ball{Position: geom.Point{X: 4.4, Y: 2.9}},
		Friendly:  model.Team{Robots: robots, GoalieID: 0, HasGoalie: true},
		Enemy:     model.Team{Robots: []model.Robot{{ID: 0, Position: geom.Point{X: 4.2}}}},
		Referee:   ipc.RefereeData{State: "ready", Restart: "direct_free", OurRestart: true},
		Timestamp: 1,
	}
	env, err := ipc.NewEnvelope(ipc.TypeWorld, msg)
	require.NoError(t, err)

	resp, err := a.HandleWorld(env)
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, ipc.TypeTactics, resp.Type)

	var reply ipc.TacticsMessage
	require.NoError(t, json.Unmarshal(resp.Data, &reply))
	assert.Equal(t, play.CornerKickName, reply.Play)
	assert.Equal(t, "align", reply.Stage)
	require.Len(t, reply.Commands, 6)

	byRobot := map[model.RobotID]ipc.RobotCommand{}
	for _, c := range reply.Commands {
		byRobot[c.RobotID] = c
	}
	assert.Len(t, byRobot, 6)
	assert.Equal(t, "goalie", byRobot[0].Tactic)
	assert.Equal(t, "align_to_ball", byRobot[1].Tactic, "the robot nearest the ball lines up")
}

func TestHandleWorldBadReferee(t *testing.T) {
	a, err := New(nil)
	require.NoError(t, err)
	env, err := ipc.NewEnvelope(ipc.TypeWorld, ipc.WorldMessage{Referee: ipc.RefereeData{State: "bogus"}})
	require.NoError(t, err)
	_, err = a.HandleWorld(env)
	assert.Error(t, err)
}
