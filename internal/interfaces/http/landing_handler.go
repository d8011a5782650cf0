package http

import "github.com/gofiber/fiber/v2"

// LandingHandler serve o conteúdo da página inicial; a renderização
// pertence ao cliente
type LandingHandler struct{}

// NewLandingHandler cria uma nova instância do handler da página inicial
func NewLandingHandler() *LandingHandler {
	return &LandingHandler{}
}

type landingGroup struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

var landingGroups = []landingGroup{
	{
		Name:        "Lobitos",
		Description: "Gestão completa das atividades dos mais novos, acompanhando o crescimento e formação inicial.",
	},
	{
		Name:        "Junior",
		Description: "Organização das patrulhas, planeamento de tarefas e registo do progresso dos escuteiros juniores.",
	},
	{
		Name:        "Senior",
		Description: "Controle de projetos, responsabilidades e acompanhamento do desenvolvimento dos escuteiros seniores.",
	},
}

// Show devolve o conteúdo da página de boas-vindas
func (h *LandingHandler) Show(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"title":    "Bem vindo ao Escutivel",
		"subtitle": "Gerência os teus escuteiros",
		"description": "Uma plataforma completa para a gestão e organização de escuteiros. " +
			"Facilite o acompanhamento de atividades, mantenha o registo dos membros " +
			"e promova uma experiência moderna e colaborativa para todo o grupo.",
		"groups": landingGroups,
	})
}
