package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	services "github.com/sedrac-slc/escutivel/internal/service"
)

type UploadHandler struct {
	service *services.S3Service
	logger  *zap.Logger
}

// NewUploadHandler cria uma nova instância do handler de documentos
func NewUploadHandler(service *services.S3Service, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		service: service,
		logger:  logger,
	}
}

// UploadDocument recebe um documento de inscrição e devolve o URL público
func (h *UploadHandler) UploadDocument(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.logger.Error("Erro ao obter o ficheiro do pedido", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Não foi possível obter o ficheiro",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("Erro ao abrir o ficheiro", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Não foi possível abrir o ficheiro",
		})
	}

	url, err := h.service.UploadDocument(c.Context(), file, fileHeader)
	if err != nil {
		h.logger.Error("Erro ao enviar o ficheiro", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Não foi possível enviar o ficheiro",
		})
	}

	return c.JSON(fiber.Map{"url": url})
}
