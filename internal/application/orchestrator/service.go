// Package orchestrator runs the end-to-end request pipeline: cache lookup,
// provider call, translation, execution and bookkeeping. It owns the
// interaction lifecycle and is the only writer of status transitions.
package orchestrator

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/auraos/aibridge/internal/domain"
	"github.com/auraos/aibridge/internal/ports"
)

const (
	defaultWorkers     = 4
	defaultQueueSize   = 64
	defaultHistorySize = 500
)

// Service accepts submissions, runs them through worker goroutines and
// retains a bounded history of terminal interactions. All dependencies are
// ports so callers can stub any stage.
type Service struct {
	gateway    ports.Gateway
	translator ports.Translator
	executor   ports.Executor
	cache      ports.CacheStore
	sessions   ports.SessionRecorder
	history    ports.HistoryRepository
	logger     ports.Logger

	workers     int
	historySize int

	mu       sync.Mutex
	active   map[string]*domain.Interaction
	done     map[string]chan struct{}
	cancels  map[string]context.CancelFunc
	recent   []domain.Interaction
	stats    pipelineStats
	started  bool
	queue    chan job
	wg       sync.WaitGroup
	stopOnce sync.Once

	now func() time.Time
}

type pipelineStats struct {
	total     int
	completed int
	failed    int
	cancelled int
	cacheHits int
	totalMS   float64
}

type job struct {
	id  string
	ctx context.Context
	req domain.SubmitRequest
}

// Deps carries the orchestrator's collaborators. Cache, Sessions, History
// and Executor are optional; a nil port disables that stage.
type Deps struct {
	Gateway    ports.Gateway
	Translator ports.Translator
	Executor   ports.Executor
	Cache      ports.CacheStore
	Sessions   ports.SessionRecorder
	History    ports.HistoryRepository
	Logger     ports.Logger
}

// NewService builds an orchestrator from settings; zero fields fall back to
// the package defaults.
func NewService(cfg domain.PipelineSettings, deps Deps) *Service {
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	historySize := cfg.HistorySize
	if historySize <= 0 {
		historySize = defaultHistorySize
	}
	return &Service{
		gateway:     deps.Gateway,
		translator:  deps.Translator,
		executor:    deps.Executor,
		cache:       deps.Cache,
		sessions:    deps.Sessions,
		history:     deps.History,
		logger:      deps.Logger,
		workers:     workers,
		historySize: historySize,
		active:      make(map[string]*domain.Interaction),
		done:        make(map[string]chan struct{}),
		cancels:     make(map[string]context.CancelFunc),
		queue:       make(chan job, queueSize),
		now:         time.Now,
	}
}

// Start launches the worker pool. Calling Start twice is a no-op.
func (s *Service) Start() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			for j := range s.queue {
				s.process(j)
			}
		}()
	}
}

// Stop closes the intake queue and waits for in-flight work to finish.
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		close(s.queue)
	})
	s.wg.Wait()
}

// Submit queues one request and returns its interaction ID. A full queue
// rejects the submission rather than blocking the caller.
func (s *Service) Submit(req domain.SubmitRequest) (string, error) {
	if req.Text == "" {
		return "", domain.NewError(domain.CodeValidationFailed, "empty request text")
	}
	if req.Type == "" {
		req.Type = domain.TypeCommandExecution
	}
	parent := req.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	id := uuid.NewString()
	now := s.now()
	interaction := &domain.Interaction{
		ID:           id,
		Type:         req.Type,
		Status:       domain.StatusPending,
		Prompt:       req.Text,
		ProviderHint: req.ProviderHint,
		ContextData:  req.ContextData,
		SessionID:    req.SessionID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	s.mu.Lock()
	s.active[id] = interaction
	s.done[id] = make(chan struct{})
	s.cancels[id] = cancel
	s.stats.total++
	s.mu.Unlock()

	select {
	case s.queue <- job{id: id, ctx: ctx, req: req}:
		return id, nil
	default:
		cancel()
		s.finalize(id, domain.StatusFailed, func(i *domain.Interaction) {
			i.Result.ErrorCode = domain.CodeRateLimited
			i.Result.ErrorMessage = "request queue is full"
		})
		return "", domain.NewError(domain.CodeRateLimited, "request queue is full")
	}
}

// Cancel requests cancellation of a pending or in-progress interaction.
// Terminal interactions, including ones already moved to the recent history,
// are left untouched.
func (s *Service) Cancel(id string) error {
	s.mu.Lock()
	interaction, ok := s.active[id]
	if !ok {
		for i := range s.recent {
			if s.recent[i].ID == id {
				s.mu.Unlock()
				return nil
			}
		}
		s.mu.Unlock()
		return domain.NewError(domain.CodeNotFound, "no active interaction %q", id)
	}
	if interaction.Status.Terminal() {
		s.mu.Unlock()
		return nil
	}
	cancel := s.cancels[id]
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	return nil
}

// GetInteraction returns a snapshot of an interaction, active or recent.
func (s *Service) GetInteraction(id string) (domain.Interaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if interaction, ok := s.active[id]; ok {
		return *interaction, nil
	}
	for i := len(s.recent) - 1; i >= 0; i-- {
		if s.recent[i].ID == id {
			return s.recent[i], nil
		}
	}
	return domain.Interaction{}, domain.NewError(domain.CodeNotFound, "unknown interaction %q", id)
}

// Await blocks until the interaction reaches a terminal status or ctx ends.
func (s *Service) Await(ctx context.Context, id string) (domain.Interaction, error) {
	s.mu.Lock()
	doneCh, ok := s.done[id]
	s.mu.Unlock()
	if !ok {
		return s.GetInteraction(id)
	}

	select {
	case <-ctx.Done():
		return domain.Interaction{}, domain.WrapError(domain.CodeCancelled, ctx.Err(), "wait for interaction %q interrupted", id)
	case <-doneCh:
		return s.GetInteraction(id)
	}
}

// Recent returns up to limit terminal interactions, newest first.
func (s *Service) Recent(limit int) []domain.Interaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 || limit > len(s.recent) {
		limit = len(s.recent)
	}
	out := make([]domain.Interaction, 0, limit)
	for i := len(s.recent) - 1; i >= len(s.recent)-limit; i-- {
		out = append(out, s.recent[i])
	}
	return out
}

// Statistics returns a snapshot of pipeline counters.
func (s *Service) Statistics() domain.OrchestratorStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := domain.OrchestratorStats{
		Total:       s.stats.total,
		Completed:   s.stats.completed,
		Failed:      s.stats.failed,
		Cancelled:   s.stats.cancelled,
		CacheHits:   s.stats.cacheHits,
		Active:      len(s.active),
		HistorySize: len(s.recent),
	}
	terminal := s.stats.completed + s.stats.failed + s.stats.cancelled
	if terminal > 0 {
		stats.AverageTotalMS = s.stats.totalMS / float64(terminal)
	}
	return stats
}

func (s *Service) process(j job) {
	s.transition(j.id, domain.StatusInProgress)
	start := s.now()

	if j.ctx.Err() != nil {
		s.cancelled(j.id, start)
		return
	}

	key := domain.CacheKey(j.req.Text, j.req.ProviderHint, j.req.ContextData)
	if s.cache != nil {
		if result, ok := s.cache.Get(key); ok {
			s.mu.Lock()
			s.stats.cacheHits++
			s.mu.Unlock()
			s.finalize(j.id, domain.StatusCompleted, func(i *domain.Interaction) {
				i.Result = result
				i.Cached = true
				i.Timings.TotalMS = s.millisSince(start)
			})
			return
		}
	}

	providerStart := s.now()
	resp, err := s.gateway.SendWithRetry(j.ctx, j.req.ProviderHint, j.req.Text, j.req.ContextData)
	providerMS := s.millisSince(providerStart)
	if err != nil {
		if j.ctx.Err() != nil {
			s.cancelled(j.id, start)
			return
		}
		code := domain.CodeOf(err)
		s.logger.Warn("provider phase failed", map[string]any{
			"interaction": j.id,
			"code":        string(code),
		})
		s.finalize(j.id, domain.StatusFailed, func(i *domain.Interaction) {
			i.Result.Prompt = j.req.Text
			i.Result.ErrorCode = code
			i.Result.ErrorMessage = err.Error()
			i.Timings.ProviderMS = providerMS
			i.Timings.TotalMS = s.millisSince(start)
		})
		return
	}
	if j.ctx.Err() != nil {
		s.cancelled(j.id, start)
		return
	}

	translateStart := s.now()
	translation := s.translator.Translate(resp.Content, j.req.ContextData)
	translationMS := s.millisSince(translateStart)
	if !translation.Success {
		s.finalize(j.id, domain.StatusFailed, func(i *domain.Interaction) {
			i.Result.Prompt = j.req.Text
			i.Result.Provider = resp.Provider
			i.Result.ProviderText = resp.Content
			i.Result.ErrorCode = domain.CodeNoApplicableStrategy
			i.Result.ErrorMessage = translation.Err
			i.Timings.ProviderMS = providerMS
			i.Timings.TranslationMS = translationMS
			i.Timings.TotalMS = s.millisSince(start)
		})
		return
	}
	if j.ctx.Err() != nil {
		s.cancelled(j.id, start)
		return
	}

	result := domain.Result{
		Prompt:       j.req.Text,
		Provider:     resp.Provider,
		ProviderText: resp.Content,
		Statement:    translation.Statement,
		Strategy:     translation.Strategy,
		Valid:        translation.Validation.Valid,
		Issues:       translation.Validation.Issues,
		Confidence:   minConfidence(resp.Confidence, translation.Confidence),
		Success:      true,
		Usage:        resp.Usage,
	}

	var executionMS float64
	if s.executor != nil {
		executionStart := s.now()
		output, ok, execErr := s.executor.Execute(j.ctx, translation.Statement)
		executionMS = s.millisSince(executionStart)
		result.Output = output
		if execErr != nil || !ok {
			result.Success = false
			result.ErrorCode = domain.CodeExecutionError
			if execErr != nil {
				result.ErrorMessage = execErr.Error()
			} else {
				result.ErrorMessage = "execution reported failure"
			}
		}
	}

	if s.cache != nil && result.Success {
		s.cache.Put(key, result)
	}

	s.finalize(j.id, domain.StatusCompleted, func(i *domain.Interaction) {
		i.Result = result
		i.Timings.ProviderMS = providerMS
		i.Timings.TranslationMS = translationMS
		i.Timings.ExecutionMS = executionMS
		i.Timings.TotalMS = s.millisSince(start)
	})
}

func (s *Service) cancelled(id string, start time.Time) {
	s.finalize(id, domain.StatusCancelled, func(i *domain.Interaction) {
		i.Result.ErrorCode = domain.CodeCancelled
		i.Result.ErrorMessage = "interaction cancelled"
		i.Timings.TotalMS = s.millisSince(start)
	})
}

func (s *Service) transition(id string, status domain.InteractionStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if interaction, ok := s.active[id]; ok && !interaction.Status.Terminal() {
		interaction.Status = status
		interaction.UpdatedAt = s.now()
	}
}

// finalize moves an interaction to a terminal status, applies the mutation,
// records it in the bounded history and notifies observers.
func (s *Service) finalize(id string, status domain.InteractionStatus, mutate func(*domain.Interaction)) {
	s.mu.Lock()
	interaction, ok := s.active[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	interaction.Status = status
	interaction.UpdatedAt = s.now()
	if mutate != nil {
		mutate(interaction)
	}

	switch status {
	case domain.StatusCompleted:
		s.stats.completed++
	case domain.StatusFailed:
		s.stats.failed++
	case domain.StatusCancelled:
		s.stats.cancelled++
	}
	s.stats.totalMS += interaction.Timings.TotalMS

	snapshot := *interaction
	delete(s.active, id)
	if cancel, ok := s.cancels[id]; ok {
		cancel()
		delete(s.cancels, id)
	}
	doneCh := s.done[id]
	delete(s.done, id)

	s.recent = append(s.recent, snapshot)
	if len(s.recent) > s.historySize {
		s.recent = s.recent[len(s.recent)-s.historySize:]
	}
	s.mu.Unlock()

	if doneCh != nil {
		close(doneCh)
	}
	s.observe(snapshot)
}

// observe fans the terminal interaction out to the durable log and the
// session manager. Both are best-effort.
func (s *Service) observe(interaction domain.Interaction) {
	if s.history != nil {
		if err := s.history.Save(interaction); err != nil {
			s.logger.Error("history save failed", err, map[string]any{
				"interaction": interaction.ID,
			})
		}
	}
	if s.sessions != nil && interaction.SessionID != "" {
		turn := domain.Turn{
			ID:           interaction.ID,
			Input:        interaction.Prompt,
			Response:     interaction.Result.ProviderText,
			Statement:    interaction.Result.Statement,
			Output:       interaction.Result.Output,
			Success:      interaction.Status == domain.StatusCompleted && interaction.Result.Success,
			Confidence:   interaction.Result.Confidence,
			ProcessingMS: interaction.Timings.TotalMS,
			ContextDelta: interaction.ContextData,
			ErrorMessage: interaction.Result.ErrorMessage,
			Timestamp:    interaction.UpdatedAt,
		}
		if err := s.sessions.AddTurn(interaction.SessionID, turn); err != nil {
			s.logger.Warn("session turn append failed", map[string]any{
				"session": interaction.SessionID,
			})
		}
	}
}

func (s *Service) millisSince(t time.Time) float64 {
	return float64(s.now().Sub(t)) / float64(time.Millisecond)
}

// minConfidence keeps the pipeline confidence at the weakest phase.
func minConfidence(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
