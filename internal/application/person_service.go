package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sedrac-slc/escutivel/internal/domain"
)

// PersonService expõe as operações CRUD de pessoas. Qualquer falha da
// camada de armazenamento é registada com o detalhe original e devolvida
// ao chamador apenas como um erro genérico de domínio.
type PersonService struct {
	personRepo domain.PersonRepository
	logger     *zap.Logger
}

// NewPersonService cria uma nova instância do serviço de pessoas
func NewPersonService(personRepo domain.PersonRepository, logger *zap.Logger) *PersonService {
	return &PersonService{
		personRepo: personRepo,
		logger:     logger,
	}
}

// FindAll devolve todas as pessoas ordenadas por nome
func (s *PersonService) FindAll(ctx context.Context) ([]domain.Person, error) {
	persons, err := s.personRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Erro ao buscar pessoas", zap.Error(err))
		return nil, fmt.Errorf("Não foi possível buscar as pessoas")
	}
	return persons, nil
}

// Create persiste uma nova pessoa e devolve-a com o ID atribuído
func (s *PersonService) Create(ctx context.Context, person *domain.Person) (*domain.Person, error) {
	created, err := s.personRepo.Create(ctx, person)
	if err != nil {
		s.logger.Error("Erro ao criar pessoa", zap.Error(err))
		return nil, fmt.Errorf("Não foi possível criar a pessoa")
	}
	return created, nil
}

// Update atualiza a pessoa identificada por id
func (s *PersonService) Update(ctx context.Context, person *domain.Person, id string) (*domain.Person, error) {
	updated, err := s.personRepo.Update(ctx, person, id)
	if err != nil {
		s.logger.Error("Erro ao atualizar pessoa", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("Não foi possível atualizar a pessoa")
	}
	return updated, nil
}

// Delete remove a pessoa; devolve true em caso de sucesso
func (s *PersonService) Delete(ctx context.Context, person *domain.Person) (bool, error) {
	if err := s.personRepo.Delete(ctx, person.ID); err != nil {
		s.logger.Error("Erro ao deletar pessoa", zap.String("id", person.ID), zap.Error(err))
		return false, fmt.Errorf("Não foi possível deletar a pessoa")
	}
	return true, nil
}
