package domain

import (
	"context"
	"fmt"
	"time"
)

// Scout representa a inscrição escutista de uma pessoa. Uma pessoa pode
// existir sem inscrição; uma inscrição pertence sempre a exatamente uma pessoa.
type Scout struct {
	ID                    int64      `json:"id"`
	Person                Person     `json:"person"`
	GroupNumber           *string    `json:"groupNumber,omitempty"`           // Número do Agrupamento
	UnitName              *string    `json:"unitName,omitempty"`              // Nome da Unidade Escutista
	PreviousScoutUnit     *string    `json:"previousScoutUnit,omitempty"`     // Unidade Escutista anterior
	PreviousAssociation   *string    `json:"previousAssociation,omitempty"`   // Outra associação anterior
	ProposalNumber        *string    `json:"proposalNumber,omitempty"`        // Número da proposta
	RegistrationDate      *time.Time `json:"registrationDate,omitempty"`      // Data de aprovação como aspirante
	MatriculationNumber   *string    `json:"matriculationNumber,omitempty"`   // Número de matrícula
	HasContagiousDisease  *bool      `json:"hasContagiousDisease,omitempty"`  // Sofre de doença contagiosa
	HasPhysicalRobustness *bool      `json:"hasPhysicalRobustness,omitempty"` // Tem robustez física necessária
	MedicalObservations   *string    `json:"medicalObservations,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
}

// NewScout constrói uma inscrição para uma pessoa já persistida.
func NewScout(person Person) (*Scout, error) {
	if person.ID == "" {
		return nil, fmt.Errorf("a inscrição exige uma pessoa já persistida")
	}
	return &Scout{Person: person}, nil
}

// IsActive indica se o escuteiro está ativo: exige número de matrícula
// e data de registo presentes.
func (s *Scout) IsActive() bool {
	return s.MatriculationNumber != nil && *s.MatriculationNumber != "" &&
		s.RegistrationDate != nil
}

// MedicallyApproved indica aptidão médica. A verificação é estrita: a
// robustez física tem de estar declarada como verdadeira, a ausência do
// campo não conta como aprovação.
func (s *Scout) MedicallyApproved() bool {
	if s.HasContagiousDisease != nil && *s.HasContagiousDisease {
		return false
	}
	return s.HasPhysicalRobustness != nil && *s.HasPhysicalRobustness
}

// ScoutRepository define as operações de persistência de inscrições
type ScoutRepository interface {
	// FindAll devolve todas as inscrições, mais recente primeiro, com a
	// pessoa associada embutida
	FindAll(ctx context.Context) ([]Scout, error)
	// Create persiste uma nova inscrição referenciando o ID da pessoa
	Create(ctx context.Context, scout *Scout) (*Scout, error)
	// Update atualiza os campos próprios da inscrição; a pessoa associada
	// é imutável após a criação
	Update(ctx context.Context, scout *Scout, id int64) (*Scout, error)
	// Delete remove a inscrição identificada pelo id
	Delete(ctx context.Context, id int64) error
	// FindPendingMatriculation devolve inscrições sem número de matrícula
	// criadas há mais de days dias
	FindPendingMatriculation(ctx context.Context, days int) ([]Scout, error)
}
