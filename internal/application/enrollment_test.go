package application

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sedrac-slc/escutivel/internal/domain"
)

// fakePersonRepo é um repositório de pessoas em memória com injeção de
// falhas para os testes do fluxo de inscrição
type fakePersonRepo struct {
	mu         sync.Mutex
	persons    []domain.Person
	nextID     int
	failCreate bool

	// started/release permitem suspender o Create para testar a
	// submissão em curso
	started chan struct{}
	release chan struct{}
}

func newFakePersonRepo() *fakePersonRepo {
	return &fakePersonRepo{}
}

func (r *fakePersonRepo) FindAll(ctx context.Context) ([]domain.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Person, len(r.persons))
	copy(out, r.persons)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakePersonRepo) Create(ctx context.Context, person *domain.Person) (*domain.Person, error) {
	if r.started != nil {
		r.started <- struct{}{}
		<-r.release
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return nil, fmt.Errorf("ligação recusada")
	}
	r.nextID++
	created := *person
	created.ID = fmt.Sprintf("p-%d", r.nextID)
	r.persons = append(r.persons, created)
	return &created, nil
}

func (r *fakePersonRepo) Update(ctx context.Context, person *domain.Person, id string) (*domain.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.persons {
		if r.persons[i].ID == id {
			updated := *person
			updated.ID = id
			r.persons[i] = updated
			return &updated, nil
		}
	}
	return nil, fmt.Errorf("pessoa não encontrada")
}

func (r *fakePersonRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.persons {
		if r.persons[i].ID == id {
			r.persons = append(r.persons[:i], r.persons[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("pessoa não encontrada")
}

type fakeScoutRepo struct {
	mu         sync.Mutex
	scouts     []domain.Scout
	nextID     int64
	failCreate bool
}

func newFakeScoutRepo() *fakeScoutRepo {
	return &fakeScoutRepo{}
}

func (r *fakeScoutRepo) FindAll(ctx context.Context) ([]domain.Scout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Scout, len(r.scouts))
	copy(out, r.scouts)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeScoutRepo) Create(ctx context.Context, scout *domain.Scout) (*domain.Scout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return nil, fmt.Errorf("violação de restrição")
	}
	r.nextID++
	created := *scout
	created.ID = r.nextID
	created.CreatedAt = time.Now()
	r.scouts = append(r.scouts, created)
	return &created, nil
}

func (r *fakeScoutRepo) Update(ctx context.Context, scout *domain.Scout, id int64) (*domain.Scout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.scouts {
		if r.scouts[i].ID == id {
			updated := *scout
			updated.ID = id
			updated.Person = r.scouts[i].Person
			updated.CreatedAt = r.scouts[i].CreatedAt
			r.scouts[i] = updated
			return &updated, nil
		}
	}
	return nil, fmt.Errorf("escuteiro não encontrado")
}

func (r *fakeScoutRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.scouts {
		if r.scouts[i].ID == id {
			r.scouts = append(r.scouts[:i], r.scouts[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("escuteiro não encontrado")
}

func (r *fakeScoutRepo) FindPendingMatriculation(ctx context.Context, days int) ([]domain.Scout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := time.Now().AddDate(0, 0, -days)
	var out []domain.Scout
	for _, scout := range r.scouts {
		missing := scout.MatriculationNumber == nil || *scout.MatriculationNumber == ""
		if missing && scout.CreatedAt.Before(cutoff) {
			out = append(out, scout)
		}
	}
	return out, nil
}

// recordingNotifier captura as notificações emitidas pelo fluxo
type recordingNotifier struct {
	successes []domain.Notification
	errors    []domain.Notification
}

func (n *recordingNotifier) Success(notification domain.Notification) {
	n.successes = append(n.successes, notification)
}

func (n *recordingNotifier) Error(notification domain.Notification) {
	n.errors = append(n.errors, notification)
}

type enrollmentFixture struct {
	enrollment *Enrollment
	personRepo *fakePersonRepo
	scoutRepo  *fakeScoutRepo
	notifier   *recordingNotifier
	refreshed  int
}

func newEnrollmentFixture(t *testing.T) *enrollmentFixture {
	t.Helper()

	fixture := &enrollmentFixture{
		personRepo: newFakePersonRepo(),
		scoutRepo:  newFakeScoutRepo(),
		notifier:   &recordingNotifier{},
	}

	logger := zap.NewNop()
	personService := NewPersonService(fixture.personRepo, logger)
	scoutService := NewScoutService(fixture.scoutRepo, logger)

	fixture.enrollment = NewEnrollment(
		personService,
		scoutService,
		fixture.notifier,
		nil,
		"",
		func() { fixture.refreshed++ },
		logger,
	)
	return fixture
}

func validPersonForm() PersonForm {
	return PersonForm{
		Name:      "Edmilson Pacavira",
		BirthDate: "2012-04-03",
		Gender:    "Masculino",
		Address:   "Rua dos Combatentes, 12",
	}
}

func validScoutForm() ScoutForm {
	return ScoutForm{
		GroupNumber:           "37",
		UnitName:              "Unidade São Jorge",
		HasPhysicalRobustness: true,
	}
}

func TestEnrollment_StartsCollectingPerson(t *testing.T) {
	fixture := newEnrollmentFixture(t)

	assert.Equal(t, StateCollectingPerson, fixture.enrollment.State())
	assert.True(t, fixture.enrollment.ScoutForm().HasPhysicalRobustness)
}

func TestEnrollment_NextBlockedWhileStepOneIncomplete(t *testing.T) {
	tests := []struct {
		name string
		form PersonForm
	}{
		{"tudo vazio", PersonForm{}},
		{"sem nome", PersonForm{BirthDate: "2012-04-03", Gender: "Masculino"}},
		{"sem data de nascimento", PersonForm{Name: "Edmilson", Gender: "Masculino"}},
		{"sem género", PersonForm{Name: "Edmilson", BirthDate: "2012-04-03"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixture := newEnrollmentFixture(t)
			fixture.enrollment.SetPersonForm(tt.form)

			fixture.enrollment.Next()

			assert.Equal(t, StateCollectingPerson, fixture.enrollment.State())
			assert.Empty(t, fixture.notifier.errors, "a guarda falhada não produz erro")
		})
	}
}

func TestEnrollment_NextAdvancesWhenStepOneComplete(t *testing.T) {
	fixture := newEnrollmentFixture(t)
	fixture.enrollment.SetPersonForm(validPersonForm())

	fixture.enrollment.Next()

	assert.Equal(t, StateCollectingScout, fixture.enrollment.State())
}

func TestEnrollment_BackPreservesScoutData(t *testing.T) {
	fixture := newEnrollmentFixture(t)
	fixture.enrollment.SetPersonForm(validPersonForm())
	fixture.enrollment.Next()

	scoutForm := validScoutForm()
	scoutForm.ProposalNumber = "889"
	fixture.enrollment.SetScoutForm(scoutForm)

	fixture.enrollment.Back()
	require.Equal(t, StateCollectingPerson, fixture.enrollment.State())

	fixture.enrollment.Next()
	assert.Equal(t, "889", fixture.enrollment.ScoutForm().ProposalNumber)
}

func TestEnrollment_SubmitBlockedWithoutScoutFields(t *testing.T) {
	fixture := newEnrollmentFixture(t)
	fixture.enrollment.SetPersonForm(validPersonForm())
	fixture.enrollment.Next()

	fixture.enrollment.SetScoutForm(ScoutForm{GroupNumber: "37"})

	scout, err := fixture.enrollment.Submit(context.Background())
	assert.Nil(t, scout)
	assert.NoError(t, err)

	persons, _ := fixture.personRepo.FindAll(context.Background())
	assert.Empty(t, persons, "nada é persistido com a guarda por satisfazer")
}

func TestEnrollment_SubmitCreatesPersonThenScout(t *testing.T) {
	fixture := newEnrollmentFixture(t)
	fixture.enrollment.SetPersonForm(validPersonForm())
	fixture.enrollment.Next()
	fixture.enrollment.SetScoutForm(validScoutForm())

	scout, err := fixture.enrollment.Submit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, scout)

	// A pessoa criada primeiro, a inscrição a referenciá-la
	persons, _ := fixture.personRepo.FindAll(context.Background())
	require.Len(t, persons, 1)
	assert.Equal(t, persons[0].ID, scout.Person.ID)

	// Ida e volta: os campos sobrevivem intactos ao armazenamento
	fetched, _ := fixture.scoutRepo.FindAll(context.Background())
	require.Len(t, fetched, 1)
	assert.Equal(t, "Edmilson Pacavira", fetched[0].Person.Name)
	assert.Equal(t, "Masculino", fetched[0].Person.Gender)
	require.NotNil(t, fetched[0].GroupNumber)
	assert.Equal(t, "37", *fetched[0].GroupNumber)
	require.NotNil(t, fetched[0].UnitName)
	assert.Equal(t, "Unidade São Jorge", *fetched[0].UnitName)

	// Data de registo assumida no momento da submissão
	require.NotNil(t, scout.RegistrationDate)
	assert.WithinDuration(t, time.Now(), *scout.RegistrationDate, time.Minute)

	// Opcionais em branco ficam ausentes, não vazios
	assert.Nil(t, persons[0].PhoneNumber)
	require.NotNil(t, persons[0].Address)
	assert.Equal(t, "Rua dos Combatentes, 12", *persons[0].Address)

	// Notificação de sucesso nomeia a pessoa registada
	require.Len(t, fixture.notifier.successes, 1)
	assert.Contains(t, fixture.notifier.successes[0].Title, "Edmilson Pacavira")

	// Callback de atualização da listagem invocado e estado reiniciado
	assert.Equal(t, 1, fixture.refreshed)
	assert.Equal(t, StateCollectingPerson, fixture.enrollment.State())
	assert.Empty(t, fixture.enrollment.PersonForm().Name)
}

func TestEnrollment_PersonCreateFailureKeepsData(t *testing.T) {
	fixture := newEnrollmentFixture(t)
	fixture.personRepo.failCreate = true

	fixture.enrollment.SetPersonForm(validPersonForm())
	fixture.enrollment.Next()
	fixture.enrollment.SetScoutForm(validScoutForm())

	_, err := fixture.enrollment.Submit(context.Background())
	require.Error(t, err)

	assert.Equal(t, 0, fixture.refreshed)
	assert.Equal(t, "Edmilson Pacavira", fixture.enrollment.PersonForm().Name)
	require.Len(t, fixture.notifier.errors, 1)
	assert.Equal(t, "Não foi possível criar a pessoa", fixture.notifier.errors[0].Description)
}

func TestEnrollment_ScoutCreateFailureLeavesPersonPersisted(t *testing.T) {
	fixture := newEnrollmentFixture(t)
	fixture.scoutRepo.failCreate = true

	fixture.enrollment.SetPersonForm(validPersonForm())
	fixture.enrollment.Next()
	fixture.enrollment.SetScoutForm(validScoutForm())

	_, err := fixture.enrollment.Submit(context.Background())
	require.Error(t, err)

	// A pessoa criada permanece, sem inscrição associada e sem compensação
	persons, _ := fixture.personRepo.FindAll(context.Background())
	assert.Len(t, persons, 1)
	scouts, _ := fixture.scoutRepo.FindAll(context.Background())
	assert.Empty(t, scouts)

	// Sem callback e com os dados digitados preservados para nova tentativa
	assert.Equal(t, 0, fixture.refreshed)
	assert.Equal(t, StateCollectingScout, fixture.enrollment.State())
	assert.Equal(t, "37", fixture.enrollment.ScoutForm().GroupNumber)
	require.Len(t, fixture.notifier.errors, 1)
}

func TestEnrollment_CancelDiscardsEverything(t *testing.T) {
	fixture := newEnrollmentFixture(t)
	fixture.enrollment.SetPersonForm(validPersonForm())
	fixture.enrollment.Next()
	scoutForm := validScoutForm()
	scoutForm.HasContagiousDisease = true
	scoutForm.HasPhysicalRobustness = false
	fixture.enrollment.SetScoutForm(scoutForm)

	fixture.enrollment.Cancel()

	assert.Equal(t, StateCollectingPerson, fixture.enrollment.State())
	assert.Equal(t, PersonForm{}, fixture.enrollment.PersonForm())
	assert.Equal(t, initialScoutForm(), fixture.enrollment.ScoutForm())

	persons, _ := fixture.personRepo.FindAll(context.Background())
	assert.Empty(t, persons, "o cancelamento nunca persiste dados parciais")
}

func TestEnrollment_RejectsConcurrentSubmit(t *testing.T) {
	fixture := newEnrollmentFixture(t)
	fixture.personRepo.started = make(chan struct{})
	fixture.personRepo.release = make(chan struct{})

	fixture.enrollment.SetPersonForm(validPersonForm())
	fixture.enrollment.Next()
	fixture.enrollment.SetScoutForm(validScoutForm())

	done := make(chan error, 1)
	go func() {
		_, err := fixture.enrollment.Submit(context.Background())
		done <- err
	}()

	<-fixture.personRepo.started

	// Segunda submissão e cancelamento rejeitados enquanto a primeira corre
	_, err := fixture.enrollment.Submit(context.Background())
	assert.Error(t, err)

	fixture.enrollment.Cancel()
	assert.Equal(t, "Edmilson Pacavira", fixture.enrollment.PersonForm().Name)

	fixture.personRepo.release <- struct{}{}
	require.NoError(t, <-done)
	assert.Equal(t, 1, fixture.refreshed)
}

func TestBuildPerson(t *testing.T) {
	form := validPersonForm()
	form.BaptismDate = "2018-09-30"
	form.PhoneNumber = ""

	person, err := BuildPerson(form)
	require.NoError(t, err)

	assert.Equal(t, 2012, person.BirthDate.Year())
	assert.Nil(t, person.PhoneNumber)
	require.NotNil(t, person.BaptismDate)
	assert.Equal(t, time.September, person.BaptismDate.Month())
}

func TestBuildPerson_InvalidDate(t *testing.T) {
	form := validPersonForm()
	form.BirthDate = "03/04/2012"

	_, err := BuildPerson(form)
	assert.Error(t, err)
}
