package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sedrac-slc/escutivel/internal/domain"
)

func scoutWithAge(name string, years int) domain.Scout {
	birthDate := time.Now().AddDate(-years, 0, -30)
	return domain.Scout{
		Person: domain.Person{ID: "p-" + name, Name: name, BirthDate: birthDate, Gender: "Masculino"},
	}
}

func TestScoutService_FindBySection(t *testing.T) {
	repo := newFakeScoutRepo()
	service := NewScoutService(repo, zap.NewNop())

	ctx := context.Background()
	for _, scout := range []domain.Scout{
		scoutWithAge("Lobito Um", 8),
		scoutWithAge("Junior Um", 12),
		scoutWithAge("Senior Um", 16),
		scoutWithAge("Caminheiro Um", 20),
	} {
		s := scout
		_, err := repo.Create(ctx, &s)
		require.NoError(t, err)
	}

	lobitos, err := service.FindBySection(ctx, domain.SectionLobito)
	require.NoError(t, err)
	require.Len(t, lobitos, 1)
	assert.Equal(t, "Lobito Um", lobitos[0].Person.Name)

	juniores, err := service.FindBySection(ctx, domain.SectionJunior)
	require.NoError(t, err)
	require.Len(t, juniores, 1)
	assert.Equal(t, "Junior Um", juniores[0].Person.Name)

	truckers, err := service.FindBySection(ctx, domain.SectionTrucker)
	require.NoError(t, err)
	require.Len(t, truckers, 1)
	assert.Equal(t, "Caminheiro Um", truckers[0].Person.Name)
}

func TestScoutService_CreateRequiresPersistedPerson(t *testing.T) {
	repo := newFakeScoutRepo()
	service := NewScoutService(repo, zap.NewNop())

	_, err := service.Create(context.Background(), &domain.Scout{Person: domain.Person{Name: "Sem ID"}})
	require.Error(t, err)
	assert.Equal(t, "Não foi possível criar o escuteiro", err.Error())
}

func TestScoutService_GenericErrorOnFailure(t *testing.T) {
	repo := newFakeScoutRepo()
	repo.failCreate = true
	service := NewScoutService(repo, zap.NewNop())

	scout := scoutWithAge("Qualquer", 12)
	_, err := service.Create(context.Background(), &scout)
	require.Error(t, err)

	// O detalhe da falha fica no log, nunca no erro devolvido
	assert.Equal(t, "Não foi possível criar o escuteiro", err.Error())
}

func TestPersonService_GenericErrorOnFailure(t *testing.T) {
	repo := newFakePersonRepo()
	repo.failCreate = true
	service := NewPersonService(repo, zap.NewNop())

	person := domain.Person{Name: "Ana", BirthDate: time.Now().AddDate(-10, 0, 0), Gender: "Feminino"}
	_, err := service.Create(context.Background(), &person)
	require.Error(t, err)
	assert.Equal(t, "Não foi possível criar a pessoa", err.Error())
}

func TestPersonService_DeleteReturnsTrueOnSuccess(t *testing.T) {
	repo := newFakePersonRepo()
	service := NewPersonService(repo, zap.NewNop())

	created, err := service.Create(context.Background(), &domain.Person{
		Name: "Ana", BirthDate: time.Now().AddDate(-10, 0, 0), Gender: "Feminino",
	})
	require.NoError(t, err)

	ok, err := service.Delete(context.Background(), created)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = service.Delete(context.Background(), created)
	require.Error(t, err)
	assert.False(t, ok)
	assert.Equal(t, "Não foi possível deletar a pessoa", err.Error())
}

func TestPersonService_FindAllSortedByName(t *testing.T) {
	repo := newFakePersonRepo()
	service := NewPersonService(repo, zap.NewNop())

	ctx := context.Background()
	for _, name := range []string{"Zeferino", "Alberto", "Miguel"} {
		_, err := service.Create(ctx, &domain.Person{
			Name: name, BirthDate: time.Now().AddDate(-12, 0, 0), Gender: "Masculino",
		})
		require.NoError(t, err)
	}

	persons, err := service.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, persons, 3)
	assert.Equal(t, "Alberto", persons[0].Name)
	assert.Equal(t, "Miguel", persons[1].Name)
	assert.Equal(t, "Zeferino", persons[2].Name)
}
