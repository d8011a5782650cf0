package domain

import (
	"context"
	"fmt"
	"time"
)

// Person representa uma pessoa registada na plataforma, com ou sem
// inscrição escutista associada.
type Person struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	BirthDate     time.Time  `json:"birthDate"`
	Gender        string     `json:"gender"`
	BirthPlace    *string    `json:"birthPlace,omitempty"` // Comuna/Município/Província
	Province      *string    `json:"province,omitempty"`
	Municipality  *string    `json:"municipality,omitempty"`
	Commune       *string    `json:"commune,omitempty"`
	Address       *string    `json:"address,omitempty"`
	PhoneNumber   *string    `json:"phoneNumber,omitempty"`
	BaptismDate   *time.Time `json:"baptismDate,omitempty"`
	BaptismChurch *string    `json:"baptismChurch,omitempty"`
}

// NewPerson constrói uma pessoa a partir dos campos obrigatórios. Nome,
// data de nascimento ou género em falta é um erro de programação do chamador.
func NewPerson(name string, birthDate time.Time, gender string) (*Person, error) {
	if name == "" {
		return nil, fmt.Errorf("o nome é obrigatório")
	}
	if birthDate.IsZero() {
		return nil, fmt.Errorf("a data de nascimento é obrigatória")
	}
	if gender == "" {
		return nil, fmt.Errorf("o género é obrigatório")
	}
	return &Person{Name: name, BirthDate: birthDate, Gender: gender}, nil
}

// Age calcula a idade em anos completos na data indicada. Nunca é persistida.
func (p *Person) Age(now time.Time) int {
	age := now.Year() - p.BirthDate.Year()
	if now.Month() < p.BirthDate.Month() ||
		(now.Month() == p.BirthDate.Month() && now.Day() < p.BirthDate.Day()) {
		age--
	}
	return age
}

// PersonRepository define as operações de persistência de pessoas
type PersonRepository interface {
	// FindAll devolve todas as pessoas ordenadas por nome ascendente
	FindAll(ctx context.Context) ([]Person, error)
	// Create persiste uma nova pessoa e devolve-a com o ID atribuído pela base
	Create(ctx context.Context, person *Person) (*Person, error)
	// Update atualiza a pessoa identificada por id e devolve-a reconstruída
	Update(ctx context.Context, person *Person, id string) (*Person, error)
	// Delete remove a pessoa identificada pelo id
	Delete(ctx context.Context, id string) error
}
