package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sedrac-slc/escutivel/internal/domain"
)

// MatriculationScheduler verifica diariamente as inscrições que continuam
// sem número de matrícula e regista um lembrete para o dirigente
type MatriculationScheduler struct {
	scoutRepo   domain.ScoutRepository
	pendingDays int
	logger      *zap.Logger
	ticker      *time.Ticker
}

// NewMatriculationScheduler cria uma nova instância do scheduler de matrículas
func NewMatriculationScheduler(scoutRepo domain.ScoutRepository, pendingDays int, logger *zap.Logger) *MatriculationScheduler {
	return &MatriculationScheduler{
		scoutRepo:   scoutRepo,
		pendingDays: pendingDays,
		logger:      logger,
	}
}

// Start inicia o scheduler, com a primeira verificação imediata e as
// seguintes a cada 24 horas
func (s *MatriculationScheduler) Start() {
	s.logger.Info("Scheduler de matrículas iniciado", zap.Int("pendingDays", s.pendingDays))

	s.CheckPendingMatriculations()

	s.ticker = time.NewTicker(24 * time.Hour)
	go func() {
		for range s.ticker.C {
			s.CheckPendingMatriculations()
		}
	}()
}

// Stop detém o scheduler
func (s *MatriculationScheduler) Stop() {
	if s.ticker != nil {
		s.ticker.Stop()
		s.logger.Info("Scheduler de matrículas detido")
	}
}

// CheckPendingMatriculations regista os aspirantes inscritos há mais de
// pendingDays dias que ainda não têm matrícula
func (s *MatriculationScheduler) CheckPendingMatriculations() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	scouts, err := s.scoutRepo.FindPendingMatriculation(ctx, s.pendingDays)
	if err != nil {
		s.logger.Error("Erro ao verificar matrículas pendentes", zap.Error(err))
		return
	}

	if len(scouts) == 0 {
		s.logger.Info("Sem matrículas pendentes")
		return
	}

	for _, scout := range scouts {
		s.logger.Warn("Aspirante sem matrícula",
			zap.Int64("scoutId", scout.ID),
			zap.String("name", scout.Person.Name),
			zap.Time("createdAt", scout.CreatedAt),
		)
	}
}
