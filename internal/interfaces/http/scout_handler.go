package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sedrac-slc/escutivel/internal/application"
	"github.com/sedrac-slc/escutivel/internal/domain"
)

type ScoutHandler struct {
	service       *application.ScoutService
	exportService *application.ExportService
}

// NewScoutHandler cria uma nova instância do handler de escuteiros
func NewScoutHandler(service *application.ScoutService, exportService *application.ExportService) *ScoutHandler {
	return &ScoutHandler{
		service:       service,
		exportService: exportService,
	}
}

// ScoutResponse representa a inscrição exposta pela API, com os campos
// derivados (atividade, aptidão médica, secção) incluídos
type ScoutResponse struct {
	ID                    int64          `json:"id"`
	Person                PersonResponse `json:"person"`
	GroupNumber           *string        `json:"groupNumber,omitempty"`
	UnitName              *string        `json:"unitName,omitempty"`
	PreviousScoutUnit     *string        `json:"previousScoutUnit,omitempty"`
	PreviousAssociation   *string        `json:"previousAssociation,omitempty"`
	ProposalNumber        *string        `json:"proposalNumber,omitempty"`
	RegistrationDate      *string        `json:"registrationDate,omitempty"`
	MatriculationNumber   *string        `json:"matriculationNumber,omitempty"`
	HasContagiousDisease  *bool          `json:"hasContagiousDisease,omitempty"`
	HasPhysicalRobustness *bool          `json:"hasPhysicalRobustness,omitempty"`
	MedicalObservations   *string        `json:"medicalObservations,omitempty"`
	IsActive              bool           `json:"isActive"`
	MedicallyApproved     bool           `json:"medicallyApproved"`
	Section               string         `json:"section,omitempty"`
	CreatedAt             time.Time      `json:"createdAt"`
}

// toScoutResponse converte domain.Scout para ScoutResponse
func toScoutResponse(scout *domain.Scout, now time.Time) ScoutResponse {
	response := ScoutResponse{
		ID:                    scout.ID,
		Person:                toPersonResponse(&scout.Person, now),
		GroupNumber:           scout.GroupNumber,
		UnitName:              scout.UnitName,
		PreviousScoutUnit:     scout.PreviousScoutUnit,
		PreviousAssociation:   scout.PreviousAssociation,
		ProposalNumber:        scout.ProposalNumber,
		RegistrationDate:      formatDatePtr(scout.RegistrationDate),
		MatriculationNumber:   scout.MatriculationNumber,
		HasContagiousDisease:  scout.HasContagiousDisease,
		HasPhysicalRobustness: scout.HasPhysicalRobustness,
		MedicalObservations:   scout.MedicalObservations,
		IsActive:              scout.IsActive(),
		MedicallyApproved:     scout.MedicallyApproved(),
		CreatedAt:             scout.CreatedAt,
	}

	age := scout.Person.Age(now)
	for _, section := range []domain.Section{
		domain.SectionLobito,
		domain.SectionJunior,
		domain.SectionSenior,
		domain.SectionTrucker,
	} {
		if section.Contains(age) {
			response.Section = string(section)
			break
		}
	}

	return response
}

func toScoutResponses(scouts []domain.Scout) []ScoutResponse {
	now := time.Now()
	responses := make([]ScoutResponse, 0, len(scouts))
	for i := range scouts {
		responses = append(responses, toScoutResponse(&scouts[i], now))
	}
	return responses
}

// scoutRequest é o corpo aceite na atualização de inscrições; a pessoa
// associada é imutável e não faz parte do corpo
type scoutRequest struct {
	GroupNumber           string `json:"groupNumber"`
	UnitName              string `json:"unitName"`
	PreviousScoutUnit     string `json:"previousScoutUnit"`
	PreviousAssociation   string `json:"previousAssociation"`
	ProposalNumber        string `json:"proposalNumber"`
	RegistrationDate      string `json:"registrationDate"`
	MatriculationNumber   string `json:"matriculationNumber"`
	HasContagiousDisease  *bool  `json:"hasContagiousDisease"`
	HasPhysicalRobustness *bool  `json:"hasPhysicalRobustness"`
	MedicalObservations   string `json:"medicalObservations"`
}

func (r scoutRequest) toScout() (*domain.Scout, error) {
	scout := &domain.Scout{
		GroupNumber:           optionalString(r.GroupNumber),
		UnitName:              optionalString(r.UnitName),
		PreviousScoutUnit:     optionalString(r.PreviousScoutUnit),
		PreviousAssociation:   optionalString(r.PreviousAssociation),
		ProposalNumber:        optionalString(r.ProposalNumber),
		MatriculationNumber:   optionalString(r.MatriculationNumber),
		HasContagiousDisease:  r.HasContagiousDisease,
		HasPhysicalRobustness: r.HasPhysicalRobustness,
		MedicalObservations:   optionalString(r.MedicalObservations),
	}

	if r.RegistrationDate != "" {
		registrationDate, err := application.ParseDate(r.RegistrationDate)
		if err != nil {
			return nil, err
		}
		scout.RegistrationDate = &registrationDate
	}

	return scout, nil
}

func optionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// List devolve todas as inscrições, mais recente primeiro
func (h *ScoutHandler) List(c *fiber.Ctx) error {
	scouts, err := h.service.FindAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"data": toScoutResponses(scouts)})
}

// ListBySection devolve o painel da secção etária indicada na rota
func (h *ScoutHandler) ListBySection(c *fiber.Ctx) error {
	section, err := domain.ParseSection(c.Params("section"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	scouts, err := h.service.FindBySection(c.Context(), section)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"section": fiber.Map{"id": string(section), "label": section.Label()},
		"data":    toScoutResponses(scouts),
	})
}

// Update atualiza os campos próprios da inscrição identificada na rota
func (h *ScoutHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
	}

	var req scoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Corpo do pedido inválido"})
	}

	scout, err := req.toScout()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updated, err := h.service.Update(c.Context(), scout, id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"data": toScoutResponse(updated, time.Now())})
}

// Delete remove a inscrição identificada na rota
func (h *ScoutHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
	}

	ok, err := h.service.Delete(c.Context(), &domain.Scout{ID: id})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"success": ok})
}

// Export devolve o efetivo em formato XLSX
func (h *ScoutHandler) Export(c *fiber.Ctx) error {
	content, err := h.exportService.ExportScouts(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="escuteiros.xlsx"`)
	return c.Send(content)
}
