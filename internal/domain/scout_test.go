package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(v string) *string { return &v }

func boolPtr(v bool) *bool { return &v }

func TestNewScout(t *testing.T) {
	person := Person{ID: "a1b2", Name: "Nadir Cassule"}
	scout, err := NewScout(person)
	require.NoError(t, err)
	assert.Equal(t, "a1b2", scout.Person.ID)
}

func TestNewScout_RequiresPersistedPerson(t *testing.T) {
	_, err := NewScout(Person{Name: "Sem ID"})
	assert.Error(t, err)
}

func TestScoutIsActive(t *testing.T) {
	registration := time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		scout Scout
		want  bool
	}{
		{
			"matrícula e registo presentes",
			Scout{MatriculationNumber: strPtr("123"), RegistrationDate: &registration},
			true,
		},
		{
			"sem data de registo",
			Scout{MatriculationNumber: strPtr("123")},
			false,
		},
		{
			"sem matrícula",
			Scout{RegistrationDate: &registration},
			false,
		},
		{
			"matrícula vazia",
			Scout{MatriculationNumber: strPtr(""), RegistrationDate: &registration},
			false,
		},
		{
			"sem ambos",
			Scout{},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.scout.IsActive())
		})
	}
}

func TestScoutMedicallyApproved(t *testing.T) {
	tests := []struct {
		name  string
		scout Scout
		want  bool
	}{
		{
			"sem doença e com robustez",
			Scout{HasContagiousDisease: boolPtr(false), HasPhysicalRobustness: boolPtr(true)},
			true,
		},
		{
			"robustez ausente não conta como aprovação",
			Scout{HasContagiousDisease: boolPtr(false)},
			false,
		},
		{
			"com doença contagiosa",
			Scout{HasContagiousDisease: boolPtr(true), HasPhysicalRobustness: boolPtr(true)},
			false,
		},
		{
			"sem robustez declarada como falsa",
			Scout{HasContagiousDisease: boolPtr(false), HasPhysicalRobustness: boolPtr(false)},
			false,
		},
		{
			"doença ausente com robustez",
			Scout{HasPhysicalRobustness: boolPtr(true)},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.scout.MedicallyApproved())
		})
	}
}
