package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sedrac-slc/escutivel/internal/application"
	"github.com/sedrac-slc/escutivel/internal/domain"
)

type PersonHandler struct {
	service *application.PersonService
}

// NewPersonHandler cria uma nova instância do handler de pessoas
func NewPersonHandler(service *application.PersonService) *PersonHandler {
	return &PersonHandler{service: service}
}

// PersonResponse representa a pessoa exposta pela API, com a idade
// derivada incluída
type PersonResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	BirthDate     string     `json:"birthDate"`
	Gender        string     `json:"gender"`
	Age           int        `json:"age"`
	BirthPlace    *string    `json:"birthPlace,omitempty"`
	Province      *string    `json:"province,omitempty"`
	Municipality  *string    `json:"municipality,omitempty"`
	Commune       *string    `json:"commune,omitempty"`
	Address       *string    `json:"address,omitempty"`
	PhoneNumber   *string    `json:"phoneNumber,omitempty"`
	BaptismDate   *string    `json:"baptismDate,omitempty"`
	BaptismChurch *string    `json:"baptismChurch,omitempty"`
}

// toPersonResponse converte domain.Person para PersonResponse
func toPersonResponse(person *domain.Person, now time.Time) PersonResponse {
	return PersonResponse{
		ID:            person.ID,
		Name:          person.Name,
		BirthDate:     person.BirthDate.Format("2006-01-02"),
		Gender:        person.Gender,
		Age:           person.Age(now),
		BirthPlace:    person.BirthPlace,
		Province:      person.Province,
		Municipality:  person.Municipality,
		Commune:       person.Commune,
		Address:       person.Address,
		PhoneNumber:   person.PhoneNumber,
		BaptismDate:   formatDatePtr(person.BaptismDate),
		BaptismChurch: person.BaptismChurch,
	}
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format("2006-01-02")
	return &formatted
}

// personRequest é o corpo aceite na criação e atualização de pessoas;
// as datas chegam como texto AAAA-MM-DD e os opcionais em branco tornam-se
// campos ausentes
type personRequest struct {
	Name          string `json:"name"`
	BirthDate     string `json:"birthDate"`
	Gender        string `json:"gender"`
	BirthPlace    string `json:"birthPlace"`
	Province      string `json:"province"`
	Municipality  string `json:"municipality"`
	Commune       string `json:"commune"`
	Address       string `json:"address"`
	PhoneNumber   string `json:"phoneNumber"`
	BaptismDate   string `json:"baptismDate"`
	BaptismChurch string `json:"baptismChurch"`
}

func (r personRequest) toForm() application.PersonForm {
	return application.PersonForm{
		Name:          r.Name,
		BirthDate:     r.BirthDate,
		Gender:        r.Gender,
		BirthPlace:    r.BirthPlace,
		Province:      r.Province,
		Municipality:  r.Municipality,
		Commune:       r.Commune,
		Address:       r.Address,
		PhoneNumber:   r.PhoneNumber,
		BaptismDate:   r.BaptismDate,
		BaptismChurch: r.BaptismChurch,
	}
}

// List devolve todas as pessoas ordenadas por nome
func (h *PersonHandler) List(c *fiber.Ctx) error {
	persons, err := h.service.FindAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	now := time.Now()
	responses := make([]PersonResponse, 0, len(persons))
	for i := range persons {
		responses = append(responses, toPersonResponse(&persons[i], now))
	}

	return c.JSON(fiber.Map{"data": responses})
}

// Create regista uma nova pessoa
func (h *PersonHandler) Create(c *fiber.Ctx) error {
	var req personRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Corpo do pedido inválido"})
	}

	person, err := application.BuildPerson(req.toForm())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	created, err := h.service.Create(c.Context(), person)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": toPersonResponse(created, time.Now())})
}

// Update atualiza a pessoa identificada na rota
func (h *PersonHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
	}

	var req personRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Corpo do pedido inválido"})
	}

	person, err := application.BuildPerson(req.toForm())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updated, err := h.service.Update(c.Context(), person, id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"data": toPersonResponse(updated, time.Now())})
}

// Delete remove a pessoa identificada na rota
func (h *PersonHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID inválido"})
	}

	ok, err := h.service.Delete(c.Context(), &domain.Person{ID: id})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"success": ok})
}
