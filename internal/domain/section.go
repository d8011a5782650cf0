package domain

import "fmt"

// Section identifica o painel etário de um escuteiro
type Section string

const (
	SectionLobito  Section = "lobito"
	SectionJunior  Section = "junior"
	SectionSenior  Section = "senior"
	SectionTrucker Section = "trucker"
)

// sectionRange delimita as idades, inclusivas, cobertas por cada secção
type sectionRange struct {
	min int
	max int
}

var sectionRanges = map[Section]sectionRange{
	SectionLobito:  {6, 10},
	SectionJunior:  {11, 14},
	SectionSenior:  {15, 17},
	SectionTrucker: {18, 25},
}

// ParseSection valida o identificador de secção recebido da rota
func ParseSection(raw string) (Section, error) {
	s := Section(raw)
	if _, ok := sectionRanges[s]; !ok {
		return "", fmt.Errorf("secção desconhecida: %s", raw)
	}
	return s, nil
}

// Contains indica se a idade cai na faixa etária da secção
func (s Section) Contains(age int) bool {
	r, ok := sectionRanges[s]
	if !ok {
		return false
	}
	return age >= r.min && age <= r.max
}

// Label devolve o nome da secção apresentado na plataforma
func (s Section) Label() string {
	switch s {
	case SectionLobito:
		return "Lobitos"
	case SectionJunior:
		return "Juniores"
	case SectionSenior:
		return "Seniores"
	case SectionTrucker:
		return "Caminheiros"
	default:
		return string(s)
	}
}
