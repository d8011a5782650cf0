package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sedrac-slc/escutivel/internal/domain"
)

// EnrollmentState identifica o passo atual do fluxo de inscrição
type EnrollmentState string

const (
	// StateCollectingPerson recolhe os dados pessoais do candidato
	StateCollectingPerson EnrollmentState = "collecting_person"
	// StateCollectingScout recolhe os dados escutistas
	StateCollectingScout EnrollmentState = "collecting_scout"
)

// PersonForm contém os campos do primeiro passo, tal como digitados.
// As datas chegam no formato 2006-01-02; campos opcionais em branco
// tornam-se ausentes na entidade.
type PersonForm struct {
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

// ScoutForm contém os campos do segundo passo
type ScoutForm struct {
	GroupNumber           string `json:"groupNumber"`
	UnitName              string `json:"unitName"`
	PreviousScoutUnit     string `json:"previousScoutUnit"`
	PreviousAssociation   string `json:"previousAssociation"`
	ProposalNumber        string `json:"proposalNumber"`
	HasContagiousDisease  bool   `json:"hasContagiousDisease"`
	HasPhysicalRobustness bool   `json:"hasPhysicalRobustness"`
	MedicalObservations   string `json:"medicalObservations"`
}

func initialScoutForm() ScoutForm {
	return ScoutForm{HasPhysicalRobustness: true}
}

// Mailer envia mensagens de correio; *email.Client satisfaz a interface
type Mailer interface {
	SendEmail(to, subject, htmlBody string) error
}

// Enrollment é a máquina de estados do fluxo de inscrição em dois passos:
// recolhe os dados da pessoa, depois os dados escutistas, e orquestra as
// duas criações dependentes. Enquanto uma submissão está em curso, novas
// submissões e cancelamentos são rejeitados.
type Enrollment struct {
	personService *PersonService
	scoutService  *ScoutService
	notifier      domain.Notifier
	mailer        Mailer
	leaderEmail   string
	onSuccess     func()
	logger        *zap.Logger
	now           func() time.Time

	mu         sync.Mutex
	state      EnrollmentState
	person     PersonForm
	scout      ScoutForm
	submitting bool
}

// NewEnrollment cria um fluxo de inscrição no passo inicial. O mailer é
// opcional; quando ausente, nenhum aviso por email é enviado ao dirigente.
func NewEnrollment(
	personService *PersonService,
	scoutService *ScoutService,
	notifier domain.Notifier,
	mailer Mailer,
	leaderEmail string,
	onSuccess func(),
	logger *zap.Logger,
) *Enrollment {
	return &Enrollment{
		personService: personService,
		scoutService:  scoutService,
		notifier:      notifier,
		mailer:        mailer,
		leaderEmail:   leaderEmail,
		onSuccess:     onSuccess,
		logger:        logger,
		now:           time.Now,
		state:         StateCollectingPerson,
		scout:         initialScoutForm(),
	}
}

// State devolve o passo atual
func (e *Enrollment) State() EnrollmentState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// PersonForm devolve uma cópia dos dados pessoais recolhidos
func (e *Enrollment) PersonForm() PersonForm {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.person
}

// ScoutForm devolve uma cópia dos dados escutistas recolhidos
func (e *Enrollment) ScoutForm() ScoutForm {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scout
}

// SetPersonForm substitui os dados do primeiro passo
func (e *Enrollment) SetPersonForm(form PersonForm) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.person = form
}

// SetScoutForm substitui os dados do segundo passo
func (e *Enrollment) SetScoutForm(form ScoutForm) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scout = form
}

// CanAdvance indica se o primeiro passo está completo: nome, data de
// nascimento e género presentes
func (e *Enrollment) CanAdvance() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.person.Name != "" && e.person.BirthDate != "" && e.person.Gender != ""
}

// CanSubmit indica se o segundo passo está completo: número do
// agrupamento e nome da unidade presentes
func (e *Enrollment) CanSubmit() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scout.GroupNumber != "" && e.scout.UnitName != ""
}

// Next avança para o segundo passo. Uma tentativa com o primeiro passo
// incompleto é ignorada sem erro, tal como o botão desativado no diálogo.
func (e *Enrollment) Next() {
	if !e.CanAdvance() {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StateCollectingPerson {
		e.state = StateCollectingScout
	}
}

// Back regressa ao primeiro passo sem condições; os dados escutistas já
// digitados são preservados
func (e *Enrollment) Back() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StateCollectingScout && !e.submitting {
		e.state = StateCollectingPerson
	}
}

// Cancel descarta todos os dados digitados e volta ao estado inicial.
// Nada é persistido. Durante uma submissão em curso o cancelamento é
// rejeitado.
func (e *Enrollment) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.submitting {
		return
	}
	e.reset()
}

// reset exige e.mu
func (e *Enrollment) reset() {
	e.state = StateCollectingPerson
	e.person = PersonForm{}
	e.scout = initialScoutForm()
}

// Submit valida o segundo passo, cria a pessoa e depois a inscrição que a
// referencia. Em caso de falha os dados digitados são preservados para
// nova tentativa e o callback de sucesso não é invocado. Se a criação da
// inscrição falhar depois da pessoa ter sido criada, a pessoa permanece
// persistida sem inscrição associada.
func (e *Enrollment) Submit(ctx context.Context) (*domain.Scout, error) {
	if !e.CanSubmit() {
		return nil, nil
	}

	e.mu.Lock()
	if e.submitting {
		e.mu.Unlock()
		return nil, fmt.Errorf("já existe uma submissão em curso")
	}
	e.submitting = true
	personForm := e.person
	scoutForm := e.scout
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.submitting = false
		e.mu.Unlock()
	}()

	person, err := BuildPerson(personForm)
	if err != nil {
		e.notifyFailure(err)
		return nil, err
	}

	created, err := e.personService.Create(ctx, person)
	if err != nil {
		e.notifyFailure(err)
		return nil, err
	}

	scout := buildScout(*created, scoutForm, e.now())

	createdScout, err := e.scoutService.Create(ctx, scout)
	if err != nil {
		e.notifyFailure(err)
		return nil, err
	}

	e.notifier.Success(domain.Notification{
		Title:       fmt.Sprintf("%s registado com sucesso", created.Name),
		Description: "A inscrição do escuteiro foi criada.",
	})

	e.sendLeaderNotice(created.Name)

	e.mu.Lock()
	e.reset()
	e.mu.Unlock()

	if e.onSuccess != nil {
		e.onSuccess()
	}

	return createdScout, nil
}

func (e *Enrollment) notifyFailure(err error) {
	description := "Tente novamente."
	if err != nil && err.Error() != "" {
		description = err.Error()
	}
	e.notifier.Error(domain.Notification{
		Title:       "Falha ao registar o escuteiro",
		Description: description,
	})
}

// sendLeaderNotice avisa o dirigente do agrupamento, quando configurado.
// Uma falha de envio não afeta a inscrição já criada.
func (e *Enrollment) sendLeaderNotice(name string) {
	if e.mailer == nil || e.leaderEmail == "" {
		return
	}
	body := fmt.Sprintf("<p>O candidato <strong>%s</strong> foi registado na plataforma Escutivel.</p>", name)
	if err := e.mailer.SendEmail(e.leaderEmail, "Nova inscrição de escuteiro", body); err != nil {
		e.logger.Warn("Erro ao enviar aviso de inscrição", zap.Error(err))
	}
}

// BuildPerson converte o formulário na entidade: opcionais em branco
// tornam-se ausentes e as datas são convertidas para valores de calendário
func BuildPerson(form PersonForm) (*domain.Person, error) {
	birthDate, err := ParseDate(form.BirthDate)
	if err != nil {
		return nil, fmt.Errorf("data de nascimento inválida: %s", form.BirthDate)
	}

	person, err := domain.NewPerson(form.Name, birthDate, form.Gender)
	if err != nil {
		return nil, err
	}

	person.BirthPlace = optional(form.BirthPlace)
	person.Province = optional(form.Province)
	person.Municipality = optional(form.Municipality)
	person.Commune = optional(form.Commune)
	person.Address = optional(form.Address)
	person.PhoneNumber = optional(form.PhoneNumber)
	person.BaptismChurch = optional(form.BaptismChurch)

	if form.BaptismDate != "" {
		baptismDate, err := ParseDate(form.BaptismDate)
		if err != nil {
			return nil, fmt.Errorf("data de baptismo inválida: %s", form.BaptismDate)
		}
		person.BaptismDate = &baptismDate
	}

	return person, nil
}

// buildScout associa o formulário à pessoa já criada; a data de registo
// assume o momento atual
func buildScout(person domain.Person, form ScoutForm, now time.Time) *domain.Scout {
	hasContagiousDisease := form.HasContagiousDisease
	hasPhysicalRobustness := form.HasPhysicalRobustness

	return &domain.Scout{
		Person:                person,
		GroupNumber:           optional(form.GroupNumber),
		UnitName:              optional(form.UnitName),
		PreviousScoutUnit:     optional(form.PreviousScoutUnit),
		PreviousAssociation:   optional(form.PreviousAssociation),
		ProposalNumber:        optional(form.ProposalNumber),
		RegistrationDate:      &now,
		HasContagiousDisease:  &hasContagiousDisease,
		HasPhysicalRobustness: &hasPhysicalRobustness,
		MedicalObservations:   optional(form.MedicalObservations),
	}
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
