package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gestao-profissionais/internal/domain/repository"
)

// PurgeSpec roda a limpeza de revogações a cada 15 minutos (cron com segundos).
const PurgeSpec = "0 */15 * * * *"

// Scheduler tarefas periódicas da API.
type Scheduler struct {
	cron    *cron.Cron
	revoked repository.TokenRevocationStore
	log     zerolog.Logger
	now     func() time.Time
}

// NewScheduler constrói o agendador sobre o store de revogações.
func NewScheduler(revoked repository.TokenRevocationStore, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		revoked: revoked,
		log:     log,
		now:     time.Now,
	}
}

// Start registra os jobs e inicia o cron.
func (s *Scheduler) Start() error {
	if s.revoked == nil {
		return nil
	}
	if _, err := s.cron.AddFunc(PurgeSpec, s.purgeRevoked); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop espera os jobs em execução, até o fim de ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop().Done()
	select {
	case <-done:
	case <-ctx.Done():
		s.log.Warn().Msg("scheduler: jobs ainda em execução no encerramento")
	}
}

func (s *Scheduler) purgeRevoked() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	n, err := s.revoked.Purge(ctx, s.now())
	if err != nil {
		s.log.Error().Err(err).Msg("purge de tokens revogados falhou")
		return
	}
	if n > 0 {
		s.log.Info().Int("removidos", n).Msg("tokens revogados expirados removidos")
	}
}
