package gameflow

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Dependencies 控制器的協作者，nil 欄位使用預設實作
type Dependencies struct {
	Prizes        *PrizeTable
	Colors        *BallColorTable
	View          View
	Pacer         Pacer
	PlayerSampler RandomSampler // 自動選號
	DrawSampler   RandomSampler // 開獎
	Logger        *zap.Logger
}

// Snapshot 控制器狀態的唯讀快照
type Snapshot struct {
	SessionID     string      `json:"sessionId"`
	Phase         Phase       `json:"phase"`
	AutoPick      bool        `json:"autoPick"`
	Interactive   bool        `json:"interactive"`
	Chosen        []int       `json:"chosen"`
	Winning       []int       `json:"winning"`
	Preview       *int        `json:"preview,omitempty"`
	MatchingBalls int         `json:"matchingBalls"`
	Outcome       *Outcome    `json:"outcome,omitempty"`
	PoolSize      int         `json:"poolSize"`
	Capacity      int         `json:"capacity"`
	Paytable      []PrizeTier `json:"paytable"`
}

// Controller 一局遊戲的流程控制器
// 階段只會依 IDLE → SELECTING → AWAITING_DRAW → DRAWING → SETTLED 前進
// 重新開始時由 Manager 關閉本實例並建立新的控制器
type Controller struct {
	id       string
	settings Settings
	prizes   *PrizeTable
	colors   *BallColorTable
	view     View
	pacer    Pacer
	logger   *zap.Logger

	// 會話生命週期，Close 時取消
	ctx    context.Context
	cancel context.CancelFunc

	mu            sync.Mutex
	phase         Phase
	autoPick      bool
	interactive   bool
	chosen        *SelectionSet // 玩家選號
	winning       *SelectionSet // 開獎號碼
	drawn         *SelectionSet // 開獎顯示區，包含閃動預覽
	playerPool    *PickPool
	drawPool      *PickPool
	matchingBalls int
	outcome       *Outcome
}

// NewController 創建新的控制器，初始階段為 IDLE
func NewController(parent context.Context, id string, settings Settings, deps Dependencies) (*Controller, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	if deps.Prizes == nil {
		deps.Prizes = DefaultPrizeTable()
	}
	if deps.Colors == nil {
		deps.Colors = DefaultBallColorTable()
	}
	if deps.View == nil {
		deps.View = NopView{}
	}
	if deps.Pacer == nil {
		deps.Pacer = TimerPacer{}
	}
	if deps.PlayerSampler == nil {
		deps.PlayerSampler = NewRejectionSampler(nil)
	}
	if deps.DrawSampler == nil {
		deps.DrawSampler = NewRejectionSampler(nil)
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(parent)
	c := &Controller{
		id:       id,
		settings: settings,
		prizes:   deps.Prizes,
		colors:   deps.Colors,
		view:     deps.View,
		pacer:    deps.Pacer,
		logger: deps.Logger.With(
			zap.String("component", "game_flow_controller"),
			zap.String("sessionID", id),
		),
		ctx:    ctx,
		cancel: cancel,
		phase:  PhaseIdle,
	}

	c.chosen = NewSelectionSet(settings.Capacity, c.onBallChosen)
	c.winning = NewSelectionSet(settings.Capacity, c.onBallWon)
	c.drawn = NewSelectionSet(settings.Capacity, nil)
	c.playerPool = NewPickPool("player", settings.PoolSize, deps.PlayerSampler)
	c.drawPool = NewPickPool("draw", settings.PoolSize, deps.DrawSampler)

	return c, nil
}

// ID 會話識別碼
func (c *Controller) ID() string {
	return c.id
}

// Phase 當前階段
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Done 會話關閉時關閉
func (c *Controller) Done() <-chan struct{} {
	return c.ctx.Done()
}

// Close 關閉會話，尚未完成的流程不會再改變狀態或發出表現請求
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ctx.Err() != nil {
		return
	}
	c.cancel()
	c.interactive = false
	c.logger.Debug("會話已關閉", zap.String("phase", string(c.phase)))
}

// Announce 通知表現層新會話已就緒，開放開始按鈕
func (c *Controller) Announce() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closedLocked() {
		return
	}
	c.view.PhaseChanged(c.id, "", c.phase)
	c.view.RequestEnable(EntityChooseButton)
	c.view.RequestEnable(EntityLuckyDipButton)
}

// Start 開始選號並阻塞到選號階段佈置完成
// 自動選號時會一直等到所有號碼選完
func (c *Controller) Start(autoPick bool) (bool, error) {
	accepted, done := c.StartAsync(autoPick)
	if !accepted {
		return false, nil
	}
	return true, <-done
}

// StartAsync 開始選號，僅在 IDLE 階段接受
// 返回的通道在流程結束時送出結果
func (c *Controller) StartAsync(autoPick bool) (bool, <-chan error) {
	c.mu.Lock()
	if c.closedLocked() || c.phase != PhaseIdle {
		c.logger.Debug("忽略開始請求",
			zap.String("phase", string(c.phase)),
			zap.Bool("autoPick", autoPick))
		c.mu.Unlock()
		return false, nil
	}

	c.autoPick = autoPick
	c.setPhaseLocked(PhaseSelecting)
	c.view.RequestDisable(EntityChooseButton)
	c.view.RequestDisable(EntityLuckyDipButton)
	c.mu.Unlock()

	return true, c.spawn("selection", c.runSelection)
}

// Finalize 玩家點選一顆球
// 僅在手動選號且可互動時接受，超出範圍或重複的號碼被忽略
func (c *Controller) Finalize(number int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closedLocked() || c.phase != PhaseSelecting || !c.interactive {
		c.logger.Debug("忽略選號請求",
			zap.String("phase", string(c.phase)),
			zap.Bool("interactive", c.interactive),
			zap.Int("number", number))
		return false
	}

	if err := c.playerPool.Mark(number); err != nil {
		c.logger.Debug("選號無效", zap.Int("number", number), zap.Error(err))
		return false
	}

	c.logger.Debug("玩家選號", zap.Int("number", number), zap.Int("slot", c.chosen.Len()))
	return c.chosen.Add(number, true)
}

// Draw 開獎並阻塞到結算完成
func (c *Controller) Draw() (bool, error) {
	accepted, done := c.DrawAsync()
	if !accepted {
		return false, nil
	}
	return true, <-done
}

// DrawAsync 開獎，僅在 AWAITING_DRAW 階段接受
func (c *Controller) DrawAsync() (bool, <-chan error) {
	c.mu.Lock()
	if c.closedLocked() || c.phase != PhaseAwaitingDraw {
		c.logger.Debug("忽略開獎請求", zap.String("phase", string(c.phase)))
		c.mu.Unlock()
		return false, nil
	}

	c.setPhaseLocked(PhaseDrawing)
	c.view.RequestDisable(EntityDrawButton)
	c.mu.Unlock()

	return true, c.spawn("draw", c.runDraw)
}

// Snapshot 返回狀態快照
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := Snapshot{
		SessionID:     c.id,
		Phase:         c.phase,
		AutoPick:      c.autoPick,
		Interactive:   c.interactive,
		Chosen:        c.chosen.Numbers(),
		Winning:       c.winning.Numbers(),
		MatchingBalls: c.matchingBalls,
		PoolSize:      c.settings.PoolSize,
		Capacity:      c.settings.Capacity,
		Paytable:      c.prizes.Tiers(),
	}
	if preview, ok := c.drawn.Preview(); ok {
		snapshot.Preview = &preview
	}
	if c.outcome != nil {
		outcome := *c.outcome
		snapshot.Outcome = &outcome
	}
	return snapshot
}

// runSelection 按鈕滑出、面板淡入，然後自動選號或開放點選
func (c *Controller) runSelection() error {
	c.transition(c.slideOut(EntityChooseButton))
	if err := c.await(c.transition(c.slideOut(EntityLuckyDipButton))); err != nil {
		return err
	}

	c.transition(c.fade(EntityPickablePanel, 1))
	if err := c.await(c.transition(c.fade(EntityChosenPanel, 1))); err != nil {
		return err
	}

	c.mu.Lock()
	if c.closedLocked() {
		c.mu.Unlock()
		return c.ctx.Err()
	}
	autoPick := c.autoPick
	if !autoPick {
		c.interactive = true
		c.view.RequestEnable(EntityPickablePanel)
	}
	c.mu.Unlock()

	if !autoPick {
		return nil
	}
	return c.runAutoPick()
}

// runAutoPick 每個間隔自動選一顆球，直到選滿
func (c *Controller) runAutoPick() error {
	for i := 0; i < c.settings.Capacity; i++ {
		if i > 0 {
			if err := c.pacer.Wait(c.ctx, c.settings.AutoPickInterval); err != nil {
				return err
			}
		}

		c.mu.Lock()
		if c.closedLocked() {
			c.mu.Unlock()
			return c.ctx.Err()
		}
		if c.chosen.IsComplete() {
			c.mu.Unlock()
			return nil
		}
		number := c.playerPool.DrawUnique()
		c.logger.Debug("自動選號", zap.Int("number", number), zap.Int("slot", c.chosen.Len()))
		c.chosen.Add(number, true)
		c.mu.Unlock()
	}
	return nil
}

// runDraw 開獎動畫與逐顆開獎，最後結算
func (c *Controller) runDraw() error {
	c.transition(c.slideOut(EntityDrawButton))
	if err := c.await(c.transition(c.fade(EntityPickablePanel, 0))); err != nil {
		return err
	}

	c.transition(c.fade(EntityWinningPanel, 1))
	if err := c.await(c.transition(c.fade(EntityDrawnPanel, 1))); err != nil {
		return err
	}

	for {
		for i := 0; i < c.settings.FlickerCount; i++ {
			if err := c.pacer.Wait(c.ctx, c.settings.FlickerInterval); err != nil {
				return err
			}
			if err := c.flicker(); err != nil {
				return err
			}
		}

		settled, err := c.drawFinal()
		if err != nil {
			return err
		}
		if settled {
			break
		}
	}

	return c.presentOutcome()
}

// flicker 在開獎顯示區顯示一顆暫時的號碼
func (c *Controller) flicker() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closedLocked() {
		return c.ctx.Err()
	}
	number := c.drawPool.Sample()
	c.drawn.Add(number, false)
	c.view.RenderBall(EntityDrawnPanel, c.drawn.Len(), c.colors.NewBall(number, false), false)
	return nil
}

// drawFinal 確定一顆開獎號碼，全部開出時結算並返回 true
func (c *Controller) drawFinal() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closedLocked() {
		return false, c.ctx.Err()
	}

	number := c.drawPool.DrawUnique()
	slot := c.drawn.Len()
	c.drawn.Add(number, true)
	c.view.RenderBall(EntityDrawnPanel, slot, c.colors.NewBall(number, false), true)
	c.logger.Debug("開出號碼", zap.Int("number", number), zap.Int("slot", slot))

	if !c.winning.Add(number, true) {
		panic(fmt.Sprintf("gameflow: winning set rejected drawn number %d", number))
	}

	if !c.winning.IsComplete() {
		return false, nil
	}
	c.settleLocked()
	return true, nil
}

// onBallChosen 玩家選號集合確定號碼後呼叫，持有鎖
func (c *Controller) onBallChosen(number int) {
	slot := c.chosen.IndexOf(number)
	c.view.RenderBall(EntityChosenPanel, slot, c.colors.NewBall(number, false), true)
	c.view.RequestTransition(Transition{
		Entity:   BallEntity(EntityChosenPanel, number),
		Property: PropertyAlpha,
		Target:   1,
		Duration: c.settings.PanelFadeDuration,
	})

	picked := BallEntity(EntityPickablePanel, number)
	c.view.RequestDisable(picked)
	c.view.RequestTransition(Transition{
		Entity:   picked,
		Property: PropertyAlpha,
		Target:   dimmedAlpha,
		Duration: c.settings.PanelFadeDuration,
	})

	if c.chosen.IsComplete() {
		c.completeSelectionLocked()
	}
}

// completeSelectionLocked 選號完成，關閉可選面板並顯示開獎按鈕
func (c *Controller) completeSelectionLocked() {
	c.interactive = false
	c.view.RequestDisable(EntityPickablePanel)
	c.setPhaseLocked(PhaseAwaitingDraw)
	c.view.RequestTransition(c.fade(EntityDrawButton, 1))
	c.view.RequestEnable(EntityDrawButton)
}

// onBallWon 開獎集合確定號碼後呼叫，持有鎖
func (c *Controller) onBallWon(number int) {
	if !IsMatch(c.chosen, number) {
		return
	}
	c.view.RequestHighlight(BallEntity(EntityChosenPanel, number))
	c.view.RequestHighlight(BallEntity(EntityWinningPanel, number))
	c.matchingBalls++
	c.logger.Debug("號碼命中", zap.Int("number", number), zap.Int("matchingBalls", c.matchingBalls))
}

// settleLocked 計算結算結果並進入 SETTLED
func (c *Controller) settleLocked() {
	c.outcome = c.evaluateOutcome()
	c.setPhaseLocked(PhaseSettled)
	c.logger.Info("遊戲結算",
		zap.Int("matchingBalls", c.outcome.MatchingBalls),
		zap.Bool("win", c.outcome.Win),
		zap.String("prize", c.outcome.Prize))
}

// evaluateOutcome 依命中數查獎金表
func (c *Controller) evaluateOutcome() *Outcome {
	if c.matchingBalls >= c.prizes.MinimumQualifyingMatches() {
		if prize, ok := c.prizes.PrizeFor(c.matchingBalls); ok {
			return &Outcome{
				Win:           true,
				MatchingBalls: c.matchingBalls,
				Prize:         prize,
				Message:       fmt.Sprintf("YOU MATCHED %d BALLS\nAND WON %s", c.matchingBalls, prize),
				Tint:          ColorGreen,
			}
		}
		c.logger.Warn("命中數不在獎金表中", zap.Int("matchingBalls", c.matchingBalls))
	}

	return &Outcome{
		Win:           false,
		MatchingBalls: c.matchingBalls,
		Message:       "NOT ENOUGH MATCHES",
		Tint:          ColorRed,
	}
}

// presentOutcome 淡出開獎顯示區後顯示結果與重新開始按鈕
func (c *Controller) presentOutcome() error {
	if err := c.await(c.transition(c.fade(EntityDrawnPanel, 0))); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closedLocked() {
		return c.ctx.Err()
	}

	if _, ok := c.prizes.PrizeFor(c.outcome.MatchingBalls); ok {
		c.view.RequestHighlight(PaytableRowEntity(c.outcome.MatchingBalls))
	}
	c.view.ShowOutcome(*c.outcome)
	c.view.RequestTransition(Transition{
		Entity:   EntityWinMessage,
		Property: PropertyAlpha,
		Target:   1,
		Duration: messageFadeDuration,
	})
	c.view.RequestTransition(c.fade(EntityRestartButton, 1))
	c.view.RequestEnable(EntityRestartButton)
	return nil
}

func (c *Controller) setPhaseLocked(next Phase) {
	if !IsValidTransition(c.phase, next) {
		panic(fmt.Sprintf("gameflow: invalid phase transition %s -> %s", c.phase, next))
	}
	prev := c.phase
	c.phase = next
	c.logger.Info("階段變更", zap.String("from", string(prev)), zap.String("to", string(next)))
	c.view.PhaseChanged(c.id, prev, next)
}

func (c *Controller) closedLocked() bool {
	return c.ctx.Err() != nil
}

// transition 會話有效時發出動畫請求，已關閉時返回已完成的信號
func (c *Controller) transition(t Transition) <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closedLocked() {
		return closedSignal
	}
	return c.view.RequestTransition(t)
}

// await 等待動畫完成，會話關閉時返回 ctx 錯誤
func (c *Controller) await(signal <-chan struct{}) error {
	select {
	case <-c.ctx.Done():
		return c.ctx.Err()
	case <-signal:
	}
	return c.ctx.Err()
}

func (c *Controller) spawn(name string, fn func() error) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		err := fn()
		if errors.Is(err, context.Canceled) {
			c.logger.Debug("流程已中止", zap.String("step", name))
		}
		done <- err
	}()
	return done
}

func (c *Controller) slideOut(entity EntityID) Transition {
	return Transition{
		Entity:   entity,
		Property: PropertyX,
		Target:   offscreenX,
		Duration: c.settings.ButtonSlideDuration,
	}
}

func (c *Controller) fade(entity EntityID, target float64) Transition {
	return Transition{
		Entity:   entity,
		Property: PropertyAlpha,
		Target:   target,
		Duration: c.settings.PanelFadeDuration,
	}
}
