package application

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/sedrac-slc/escutivel/internal/domain"
)

// ExportService gera a folha de cálculo com o efetivo do agrupamento
type ExportService struct {
	scoutService *ScoutService
	logger       *zap.Logger
}

// NewExportService cria uma nova instância do serviço de exportação
func NewExportService(scoutService *ScoutService, logger *zap.Logger) *ExportService {
	return &ExportService{
		scoutService: scoutService,
		logger:       logger,
	}
}

var exportHeaders = []string{
	"Nome",
	"Género",
	"Data de Nascimento",
	"Idade",
	"Secção",
	"Agrupamento",
	"Unidade",
	"Nº de Matrícula",
	"Ativo",
	"Apto Medicamente",
}

// ExportScouts devolve o efetivo em formato XLSX, mais recente primeiro
func (s *ExportService) ExportScouts(ctx context.Context) ([]byte, error) {
	scouts, err := s.scoutService.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Escuteiros"
	f.SetSheetName("Sheet1", sheet)

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			s.logger.Error("Erro ao escrever cabeçalho da exportação", zap.Error(err))
			return nil, fmt.Errorf("Não foi possível exportar os escuteiros")
		}
	}

	now := time.Now()
	for i, scout := range scouts {
		row := i + 2
		values := []any{
			scout.Person.Name,
			scout.Person.Gender,
			scout.Person.BirthDate.Format("2006-01-02"),
			scout.Person.Age(now),
			sectionLabel(scout, now),
			stringValue(scout.GroupNumber),
			stringValue(scout.UnitName),
			stringValue(scout.MatriculationNumber),
			boolLabel(scout.IsActive()),
			boolLabel(scout.MedicallyApproved()),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				s.logger.Error("Erro ao escrever linha da exportação", zap.Int("row", row), zap.Error(err))
				return nil, fmt.Errorf("Não foi possível exportar os escuteiros")
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		s.logger.Error("Erro ao serializar a exportação", zap.Error(err))
		return nil, fmt.Errorf("Não foi possível exportar os escuteiros")
	}

	return buf.Bytes(), nil
}

func sectionLabel(scout domain.Scout, now time.Time) string {
	age := scout.Person.Age(now)
	for _, section := range []domain.Section{
		domain.SectionLobito,
		domain.SectionJunior,
		domain.SectionSenior,
		domain.SectionTrucker,
	} {
		if section.Contains(age) {
			return section.Label()
		}
	}
	return ""
}

func stringValue(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func boolLabel(v bool) string {
	if v {
		return "Sim"
	}
	return "Não"
}
