package application

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sedrac-slc/escutivel/internal/domain"
)

// ScoutService expõe as operações CRUD de inscrições escutistas, com a
// mesma política de erros do serviço de pessoas.
type ScoutService struct {
	scoutRepo domain.ScoutRepository
	logger    *zap.Logger
}

// NewScoutService cria uma nova instância do serviço de escuteiros
func NewScoutService(scoutRepo domain.ScoutRepository, logger *zap.Logger) *ScoutService {
	return &ScoutService{
		scoutRepo: scoutRepo,
		logger:    logger,
	}
}

// FindAll devolve todas as inscrições, mais recente primeiro
func (s *ScoutService) FindAll(ctx context.Context) ([]domain.Scout, error) {
	scouts, err := s.scoutRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Erro ao buscar escuteiros", zap.Error(err))
		return nil, fmt.Errorf("Não foi possível buscar os escuteiros")
	}
	return scouts, nil
}

// FindBySection devolve as inscrições cujo escuteiro cai na faixa etária
// da secção indicada. A secção deriva da idade, nunca é armazenada.
func (s *ScoutService) FindBySection(ctx context.Context, section domain.Section) ([]domain.Scout, error) {
	scouts, err := s.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var filtered []domain.Scout
	for _, scout := range scouts {
		if section.Contains(scout.Person.Age(now)) {
			filtered = append(filtered, scout)
		}
	}
	return filtered, nil
}

// Create persiste uma nova inscrição; a pessoa associada tem de existir
func (s *ScoutService) Create(ctx context.Context, scout *domain.Scout) (*domain.Scout, error) {
	if scout.Person.ID == "" {
		s.logger.Error("Erro ao criar escuteiro", zap.Error(fmt.Errorf("pessoa sem ID")))
		return nil, fmt.Errorf("Não foi possível criar o escuteiro")
	}

	created, err := s.scoutRepo.Create(ctx, scout)
	if err != nil {
		s.logger.Error("Erro ao criar escuteiro", zap.Error(err))
		return nil, fmt.Errorf("Não foi possível criar o escuteiro")
	}
	return created, nil
}

// Update atualiza a inscrição identificada por id
func (s *ScoutService) Update(ctx context.Context, scout *domain.Scout, id int64) (*domain.Scout, error) {
	updated, err := s.scoutRepo.Update(ctx, scout, id)
	if err != nil {
		s.logger.Error("Erro ao atualizar escuteiro", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("Não foi possível atualizar o escuteiro")
	}
	return updated, nil
}

// Delete remove a inscrição; devolve true em caso de sucesso
func (s *ScoutService) Delete(ctx context.Context, scout *domain.Scout) (bool, error) {
	if err := s.scoutRepo.Delete(ctx, scout.ID); err != nil {
		s.logger.Error("Erro ao deletar escuteiro", zap.Int64("id", scout.ID), zap.Error(err))
		return false, fmt.Errorf("Não foi possível deletar o escuteiro")
	}
	return true, nil
}
