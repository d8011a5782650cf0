package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sedrac-slc/escutivel/internal/domain"
)

type scoutRepository struct {
	db *sql.DB
}

// NewScoutRepository cria uma nova instância do repositório de inscrições
func NewScoutRepository(db *sql.DB) domain.ScoutRepository {
	return &scoutRepository{db: db}
}

// As leituras embutem sempre a pessoa associada via junção com persons.
const scoutSelect = `
	SELECT
		s.id,
		s.group_number,
		s.unit_name,
		s.previous_scout_unit,
		s.previous_association,
		s.proposal_number,
		s.registration_date,
		s.matriculation_number,
		s.has_contagious_disease,
		s.has_physical_robustness,
		s.medical_observations,
		s.created_at,
		p.id,
		p.name,
		p.birth_date,
		p.gender,
		p.birth_place,
		p.province,
		p.municipality,
		p.commune,
		p.address,
		p.phone_number,
		p.baptism_date,
		p.baptism_church
	FROM scouts s
	JOIN persons p ON p.id = s.person_id
`

// FindAll devolve todas as inscrições, mais recente primeiro
func (r *scoutRepository) FindAll(ctx context.Context) ([]domain.Scout, error) {
	rows, err := r.db.QueryContext(ctx, scoutSelect+` ORDER BY s.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar escuteiros: %w", err)
	}
	defer rows.Close()

	return collectScouts(rows)
}

// Create persiste uma nova inscrição referenciando o ID da pessoa já criada
func (r *scoutRepository) Create(ctx context.Context, scout *domain.Scout) (*domain.Scout, error) {
	query := `
		INSERT INTO scouts (
			person_id,
			group_number,
			unit_name,
			previous_scout_unit,
			previous_association,
			proposal_number,
			registration_date,
			matriculation_number,
			has_contagious_disease,
			has_physical_robustness,
			medical_observations
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(
		ctx,
		query,
		scout.Person.ID,
		nullString(scout.GroupNumber),
		nullString(scout.UnitName),
		nullString(scout.PreviousScoutUnit),
		nullString(scout.PreviousAssociation),
		nullString(scout.ProposalNumber),
		nullTime(scout.RegistrationDate),
		nullString(scout.MatriculationNumber),
		nullBool(scout.HasContagiousDisease),
		nullBool(scout.HasPhysicalRobustness),
		nullString(scout.MedicalObservations),
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("erro ao inserir escuteiro: %w", err)
	}

	return r.findByID(ctx, id)
}

// Update atualiza apenas os campos próprios da inscrição; person_id nunca muda
func (r *scoutRepository) Update(ctx context.Context, scout *domain.Scout, id int64) (*domain.Scout, error) {
	query := `
		UPDATE scouts
		SET
			group_number = $1,
			unit_name = $2,
			previous_scout_unit = $3,
			previous_association = $4,
			proposal_number = $5,
			registration_date = $6,
			matriculation_number = $7,
			has_contagious_disease = $8,
			has_physical_robustness = $9,
			medical_observations = $10
		WHERE id = $11
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		nullString(scout.GroupNumber),
		nullString(scout.UnitName),
		nullString(scout.PreviousScoutUnit),
		nullString(scout.PreviousAssociation),
		nullString(scout.ProposalNumber),
		nullTime(scout.RegistrationDate),
		nullString(scout.MatriculationNumber),
		nullBool(scout.HasContagiousDisease),
		nullBool(scout.HasPhysicalRobustness),
		nullString(scout.MedicalObservations),
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("erro ao atualizar escuteiro: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("erro ao verificar atualização: %w", err)
	}
	if rowsAffected == 0 {
		return nil, fmt.Errorf("escuteiro com ID %d não encontrado", id)
	}

	return r.findByID(ctx, id)
}

// Delete remove a inscrição identificada pelo id
func (r *scoutRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM scouts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("erro ao remover escuteiro: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao verificar remoção: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("escuteiro com ID %d não encontrado", id)
	}

	return nil
}

// FindPendingMatriculation devolve inscrições sem número de matrícula
// criadas há mais de days dias
func (r *scoutRepository) FindPendingMatriculation(ctx context.Context, days int) ([]domain.Scout, error) {
	query := scoutSelect + `
	WHERE (s.matriculation_number IS NULL OR s.matriculation_number = '')
		AND s.created_at < NOW() - ($1 || ' days')::interval
	ORDER BY s.created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, days)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar aspirantes pendentes: %w", err)
	}
	defer rows.Close()

	return collectScouts(rows)
}

func (r *scoutRepository) findByID(ctx context.Context, id int64) (*domain.Scout, error) {
	row := r.db.QueryRowContext(ctx, scoutSelect+` WHERE s.id = $1`, id)

	scout, err := scanScout(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("escuteiro com ID %d não encontrado", id)
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao obter escuteiro: %w", err)
	}
	return scout, nil
}

func collectScouts(rows *sql.Rows) ([]domain.Scout, error) {
	var scouts []domain.Scout
	for rows.Next() {
		scout, err := scanScout(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler escuteiro: %w", err)
		}
		scouts = append(scouts, *scout)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer escuteiros: %w", err)
	}
	return scouts, nil
}

// scanScout traduz uma linha da junção scouts/persons para a entidade
func scanScout(s scanner) (*domain.Scout, error) {
	scout := &domain.Scout{}
	var (
		groupNumber           sql.NullString
		unitName              sql.NullString
		previousScoutUnit     sql.NullString
		previousAssociation   sql.NullString
		proposalNumber        sql.NullString
		registrationDate      sql.NullTime
		matriculationNumber   sql.NullString
		hasContagiousDisease  sql.NullBool
		hasPhysicalRobustness sql.NullBool
		medicalObservations   sql.NullString

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
		&scout.ID,
		&groupNumber,
		&unitName,
		&previousScoutUnit,
		&previousAssociation,
		&proposalNumber,
		&registrationDate,
		&matriculationNumber,
		&hasContagiousDisease,
		&hasPhysicalRobustness,
		&medicalObservations,
		&scout.CreatedAt,
		&scout.Person.ID,
		&scout.Person.Name,
		&scout.Person.BirthDate,
		&scout.Person.Gender,
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

	scout.GroupNumber = stringPtr(groupNumber)
	scout.UnitName = stringPtr(unitName)
	scout.PreviousScoutUnit = stringPtr(previousScoutUnit)
	scout.PreviousAssociation = stringPtr(previousAssociation)
	scout.ProposalNumber = stringPtr(proposalNumber)
	scout.RegistrationDate = timePtr(registrationDate)
	scout.MatriculationNumber = stringPtr(matriculationNumber)
	scout.HasContagiousDisease = boolPtr(hasContagiousDisease)
	scout.HasPhysicalRobustness = boolPtr(hasPhysicalRobustness)
	scout.MedicalObservations = stringPtr(medicalObservations)

	scout.Person.BirthPlace = stringPtr(birthPlace)
	scout.Person.Province = stringPtr(province)
	scout.Person.Municipality = stringPtr(municipality)
	scout.Person.Commune = stringPtr(commune)
	scout.Person.Address = stringPtr(address)
	scout.Person.PhoneNumber = stringPtr(phoneNumber)
	scout.Person.BaptismDate = timePtr(baptismDate)
	scout.Person.BaptismChurch = stringPtr(baptismChurch)

	return scout, nil
}

func nullBool(v *bool) sql.NullBool {
	if v == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *v, Valid: true}
}

func boolPtr(v sql.NullBool) *bool {
	if !v.Valid {
		return nil
	}
	return &v.Bool
}
