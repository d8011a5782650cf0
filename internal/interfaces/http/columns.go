package http

import "github.com/gofiber/fiber/v2"

// ColumnSpec descreve uma coluna da tabela de escuteiros: a chave de
// acesso estável sobre a qual a ordenação e a seleção do componente de
// tabela operam, o rótulo do cabeçalho e o tipo de célula.
type ColumnSpec struct {
	Key      string `json:"key"`
	Header   string `json:"header"`
	Kind     string `json:"kind"` // select | text | date | number | boolean | actions
	Sortable bool   `json:"sortable"`
}

// scoutColumns é o contrato de apresentação do painel de escuteiros.
// Cada linha expõe o id estável e a entidade completa para as ações de
// linha (copiar nome, ver, editar, remover) atuarem sobre ela.
var scoutColumns = []ColumnSpec{
	{Key: "select", Header: "", Kind: "select"},
	{Key: "name", Header: "Nome", Kind: "text", Sortable: true},
	{Key: "gender", Header: "Gênero", Kind: "text"},
	{Key: "birthDate", Header: "Data de Nascimento", Kind: "date"},
	{Key: "age", Header: "Idade", Kind: "number"},
	{Key: "groupNumber", Header: "Agrupamento", Kind: "text"},
	{Key: "unitName", Header: "Unidade", Kind: "text"},
	{Key: "matriculationNumber", Header: "Matrícula", Kind: "text"},
	{Key: "isActive", Header: "Ativo", Kind: "boolean"},
	{Key: "medicallyApproved", Header: "Apto Medicamente", Kind: "boolean"},
	{Key: "actions", Header: "", Kind: "actions"},
}

// ColumnsHandler serve as especificações de colunas consumidas pelo
// componente de tabela
type ColumnsHandler struct{}

// NewColumnsHandler cria uma nova instância do handler de colunas
func NewColumnsHandler() *ColumnsHandler {
	return &ColumnsHandler{}
}

// ScoutColumns devolve o contrato de colunas do painel de escuteiros
func (h *ColumnsHandler) ScoutColumns(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": scoutColumns})
}
