package gameflow

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
)

// recordingView 記錄所有表現請求
type recordingView struct {
	mu          sync.Mutex
	events      []string
	phases      []Phase
	highlights  []EntityID
	transitions []Transition
	enabled     []EntityID
	disabled    []EntityID
	rendered    []renderedBall
	outcomes    []Outcome

	// hold 返回 true 的動畫不會完成
	hold func(t Transition) bool
}

type renderedBall struct {
	panel EntityID
	slot  int
	ball  Ball
	final bool
}

func newRecordingView() *recordingView {
	return &recordingView{}
}

func (v *recordingView) record(format string, args ...interface{}) {
	v.events = append(v.events, fmt.Sprintf(format, args...))
}

func (v *recordingView) PhaseChanged(_ string, from, to Phase) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.phases = append(v.phases, to)
	v.record("phase %s->%s", from, to)
}

func (v *recordingView) RequestHighlight(entity EntityID) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.highlights = append(v.highlights, entity)
	v.record("highlight %s", entity)
}

func (v *recordingView) RequestTransition(t Transition) <-chan struct{} {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.transitions = append(v.transitions, t)
	v.record("transition %s %s %v", t.Entity, t.Property, t.Target)

	if v.hold != nil && v.hold(t) {
		return make(chan struct{})
	}
	return closedSignal
}

func (v *recordingView) RequestEnable(entity EntityID) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.enabled = append(v.enabled, entity)
	v.record("enable %s", entity)
}

func (v *recordingView) RequestDisable(entity EntityID) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.disabled = append(v.disabled, entity)
	v.record("disable %s", entity)
}

func (v *recordingView) RenderBall(panel EntityID, slot int, ball Ball, final bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rendered = append(v.rendered, renderedBall{panel: panel, slot: slot, ball: ball, final: final})
	v.record("render %s %d %d %v", panel, slot, ball.Number, final)
}

func (v *recordingView) ShowOutcome(outcome Outcome) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.outcomes = append(v.outcomes, outcome)
	v.record("outcome %v", outcome.Win)
}

func (v *recordingView) eventIndex(event string) int {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, e := range v.events {
		if e == event {
			return i
		}
	}
	return -1
}

func (v *recordingView) snapshotEvents() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]string, len(v.events))
	copy(out, v.events)
	return out
}

func (v *recordingView) renderedIn(panel EntityID, final bool) []renderedBall {
	v.mu.Lock()
	defer v.mu.Unlock()
	var out []renderedBall
	for _, r := range v.rendered {
		if r.panel == panel && r.final == final {
			out = append(out, r)
		}
	}
	return out
}

// scriptedSampler 依序返回指定的球號，已被排除時跳過，腳本用完後返回最小可用值
func scriptedSampler(numbers ...int) RandomSampler {
	var mu sync.Mutex
	queue := append([]int(nil), numbers...)

	return SamplerFunc(func(max int, excluded map[int]struct{}) int {
		mu.Lock()
		defer mu.Unlock()

		for len(queue) > 0 {
			n := queue[0]
			queue = queue[1:]
			if _, taken := excluded[n-1]; !taken {
				return n - 1
			}
		}
		return lowestAvailable(max, excluded)
	})
}

// lowestSampler 永遠返回最小可用值
func lowestSampler() RandomSampler {
	return SamplerFunc(lowestAvailable)
}

func lowestAvailable(max int, excluded map[int]struct{}) int {
	for i := 0; i < max; i++ {
		if _, taken := excluded[i]; !taken {
			return i
		}
	}
	panic("all values excluded")
}

// gatePacer 每次等待前先通知，直到被釋放或 ctx 取消
type gatePacer struct {
	waiting chan time.Duration
	release chan struct{}
}

func newGatePacer() *gatePacer {
	return &gatePacer{
		waiting: make(chan time.Duration, 16),
		release: make(chan struct{}),
	}
}

func (p *gatePacer) Wait(ctx context.Context, d time.Duration) error {
	p.waiting <- d
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.release:
		return ctx.Err()
	}
}

// mockPacer 記錄等待呼叫
type mockPacer struct {
	mock.Mock
}

func (m *mockPacer) Wait(ctx context.Context, d time.Duration) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

// testSettings 沒有閃動的設定，讓流程同步完成
func testSettings() Settings {
	s := DefaultSettings()
	s.FlickerCount = 0
	return s
}

func newTestController(settings Settings, view View, player, draw RandomSampler) *Controller {
	c, err := NewController(context.Background(), "test_session", settings, Dependencies{
		View:          view,
		Pacer:         InstantPacer{},
		PlayerSampler: player,
		DrawSampler:   draw,
	})
	if err != nil {
		panic(err)
	}
	return c
}

// pickManually 手動選號直到集合完成
func pickManually(c *Controller, numbers ...int) {
	for _, n := range numbers {
		c.Finalize(n)
	}
}

// waitFor 在期限內等待流程結束
func waitFor(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("流程未在期限內結束")
		return nil
	}
}
