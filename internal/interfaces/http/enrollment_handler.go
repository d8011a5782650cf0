package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sedrac-slc/escutivel/internal/application"
	"github.com/sedrac-slc/escutivel/internal/domain"
)

// EnrollmentHandler expõe a submissão do fluxo de inscrição em dois
// passos. Os passos e a navegação vivem no diálogo do cliente; o handler
// reproduz as mesmas guardas antes de orquestrar as duas criações.
type EnrollmentHandler struct {
	personService *application.PersonService
	scoutService  *application.ScoutService
	mailer        application.Mailer
	leaderEmail   string
	logger        *zap.Logger
}

// NewEnrollmentHandler cria uma nova instância do handler de inscrições
func NewEnrollmentHandler(
	personService *application.PersonService,
	scoutService *application.ScoutService,
	mailer application.Mailer,
	leaderEmail string,
	logger *zap.Logger,
) *EnrollmentHandler {
	return &EnrollmentHandler{
		personService: personService,
		scoutService:  scoutService,
		mailer:        mailer,
		leaderEmail:   leaderEmail,
		logger:        logger,
	}
}

// responseNotifier captura a notificação emitida pelo fluxo para a
// devolver na resposta; a renderização pertence ao cliente
type responseNotifier struct {
	notification domain.Notification
	failed       bool
}

func (n *responseNotifier) Success(notification domain.Notification) {
	n.notification = notification
	n.failed = false
}

func (n *responseNotifier) Error(notification domain.Notification) {
	n.notification = notification
	n.failed = true
}

// Submit valida os dois passos e cria a pessoa seguida da inscrição
func (h *EnrollmentHandler) Submit(c *fiber.Ctx) error {
	type Request struct {
		Person application.PersonForm `json:"person"`
		Scout  application.ScoutForm  `json:"scout"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Corpo do pedido inválido"})
	}

	notifier := &responseNotifier{}
	enrollment := application.NewEnrollment(
		h.personService,
		h.scoutService,
		notifier,
		h.mailer,
		h.leaderEmail,
		nil,
		h.logger,
	)

	enrollment.SetPersonForm(req.Person)
	enrollment.Next()
	if enrollment.State() != application.StateCollectingScout {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Nome, data de nascimento e género são obrigatórios",
		})
	}

	enrollment.SetScoutForm(req.Scout)
	if !enrollment.CanSubmit() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Número do agrupamento e unidade escutista são obrigatórios",
		})
	}

	scout, err := enrollment.Submit(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":        err.Error(),
			"notification": notifier.notification,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data":         toScoutResponse(scout, time.Now()),
		"notification": notifier.notification,
	})
}
