package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sedrac-slc/escutivel/internal/domain"
)

type personRepository struct {
	db *sql.DB
}

// NewPersonRepository cria uma nova instância do repositório de pessoas
func NewPersonRepository(db *sql.DB) domain.PersonRepository {
	return &personRepository{db: db}
}

const personColumns = `
	id,
	name,
	birth_date,
	gender,
	birth_place,
	province,
	municipality,
	commune,
	address,
	phone_number,
	baptism_date,
	baptism_church
`

// FindAll devolve todas as pessoas ordenadas por nome ascendente
func (r *personRepository) FindAll(ctx context.Context) ([]domain.Person, error) {
	query := `SELECT ` + personColumns + ` FROM persons ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar pessoas: %w", err)
	}
	defer rows.Close()

	var persons []domain.Person
	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler pessoa: %w", err)
		}
		persons = append(persons, *person)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer pessoas: %w", err)
	}

	return persons, nil
}

// Create persiste uma nova pessoa e devolve-a com o ID atribuído pela base
func (r *personRepository) Create(ctx context.Context, person *domain.Person) (*domain.Person, error) {
	query := `
		INSERT INTO persons (
			name,
			birth_date,
			gender,
			birth_place,
			province,
			municipality,
			commune,
			address,
			phone_number,
			baptism_date,
			baptism_church
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + personColumns

	row := r.db.QueryRowContext(
		ctx,
		query,
		person.Name,
		person.BirthDate,
		person.Gender,
		nullString(person.BirthPlace),
		nullString(person.Province),
		nullString(person.Municipality),
		nullString(person.Commune),
		nullString(person.Address),
		nullString(person.PhoneNumber),
		nullTime(person.BaptismDate),
		nullString(person.BaptismChurch),
	)

	created, err := scanPerson(row)
	if err != nil {
		return nil, fmt.Errorf("erro ao inserir pessoa: %w", err)
	}
	return created, nil
}

// Update atualiza a pessoa identificada por id e devolve-a reconstruída
func (r *personRepository) Update(ctx context.Context, person *domain.Person, id string) (*domain.Person, error) {
	query := `
		UPDATE persons
		SET
			name = $1,
			birth_date = $2,
			gender = $3,
			birth_place = $4,
			province = $5,
			municipality = $6,
			commune = $7,
			address = $8,
			phone_number = $9,
			baptism_date = $10,
			baptism_church = $11
		WHERE id = $12
		RETURNING ` + personColumns

	row := r.db.QueryRowContext(
		ctx,
		query,
		person.Name,
		person.BirthDate,
		person.Gender,
		nullString(person.BirthPlace),
		nullString(person.Province),
		nullString(person.Municipality),
		nullString(person.Commune),
		nullString(person.Address),
		nullString(person.PhoneNumber),
		nullTime(person.BaptismDate),
		nullString(person.BaptismChurch),
		id,
	)

	updated, err := scanPerson(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("pessoa com ID %s não encontrada", id)
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao atualizar pessoa: %w", err)
	}
	return updated, nil
}

// Delete remove a pessoa identificada pelo id
func (r *personRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM persons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("erro ao remover pessoa: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao verificar remoção: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("pessoa com ID %s não encontrada", id)
	}

	return nil
}

// scanner cobre *sql.Row e *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

// scanPerson traduz uma linha da tabela persons para a entidade, mapeando
// colunas NULL para campos ausentes
func scanPerson(s scanner) (*domain.Person, error) {
	person := &domain.Person{}
	var (
		birthPlace    sql.NullString
		province      sql.NullString
		municipality  sql.NullString
		commune       sql.NullString
		address       sql.NullString
		phoneNumber   sql.NullString
		baptismDate   sql.NullTime
		baptismChurch sql.NullString
	)

	err := s.Scan(
		&person.ID,
		&person.Name,
		&person.BirthDate,
		&person.Gender,
		&birthPlace,
		&province,
		&municipality,
		&commune,
		&address,
		&phoneNumber,
		&baptismDate,
		&baptismChurch,
	)
	if err != nil {
		return nil, err
	}

	person.BirthPlace = stringPtr(birthPlace)
	person.Province = stringPtr(province)
	person.Municipality = stringPtr(municipality)
	person.Commune = stringPtr(commune)
	person.Address = stringPtr(address)
	person.PhoneNumber = stringPtr(phoneNumber)
	person.BaptismDate = timePtr(baptismDate)
	person.BaptismChurch = stringPtr(baptismChurch)

	return person, nil
}

// Conversões entre os ponteiros da entidade e os tipos NULL do driver

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func nullTime(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *v, Valid: true}
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func timePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	return &v.Time
}
