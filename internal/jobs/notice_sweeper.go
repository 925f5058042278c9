package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/therapy-scheduler/internal/domain/notice"
)

const sweepTimeout = time.Minute

// NoticeSweeper apaga periodicamente os avisos vencidos, independente de
// alguém abrir o painel.
type NoticeSweeper struct {
	repo notice.Repository
	log  *zap.Logger
	now  func() time.Time
	cron *cron.Cron
}

func NewNoticeSweeper(repo notice.Repository, log *zap.Logger, now func() time.Time) *NoticeSweeper {
	if now == nil {
		now = time.Now
	}
	return &NoticeSweeper{
		repo: repo,
		log:  log,
		now:  now,
		cron: cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
}

// Start agenda a limpeza com a expressão dada ("@hourly", "*/30 * * * *").
func (s *NoticeSweeper) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return fmt.Errorf("schedule notice sweep %q: %w", spec, err)
	}
	s.cron.Start()
	s.log.Info("notice sweeper started", zap.String("schedule", spec))
	return nil
}

// Stop espera a execução em andamento terminar.
func (s *NoticeSweeper) Stop() {
	<-s.cron.Stop().Done()
}

func (s *NoticeSweeper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()
	s.Sweep(ctx)
}

func (s *NoticeSweeper) Sweep(ctx context.Context) int64 {
	n, err := s.repo.PurgeExpired(ctx, s.now())
	if err != nil {
		s.log.Warn("notice sweep failed", zap.Error(err))
		return 0
	}
	if n > 0 {
		s.log.Info("expired notices swept", zap.Int64("count", n))
	}
	return n
}
