package application

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Validator contém funções de validação de dados dos formulários
type Validator struct{}

// ValidateName valida que um nome não está vazio e tem formato válido
func (v *Validator) ValidateName(name, fieldName string) error {
	if name == "" {
		return fmt.Errorf("o %s é obrigatório", fieldName)
	}

	if len(strings.TrimSpace(name)) < 2 {
		return fmt.Errorf("o %s deve ter pelo menos 2 caracteres", fieldName)
	}

	return nil
}

// ValidatePhone valida o formato de um telefone
func (v *Validator) ValidatePhone(phone string) error {
	if phone == "" {
		return fmt.Errorf("o telefone é obrigatório")
	}

	// Limpar espaços e hífenes
	cleanPhone := strings.ReplaceAll(phone, " ", "")
	cleanPhone = strings.ReplaceAll(cleanPhone, "-", "")
	cleanPhone = strings.ReplaceAll(cleanPhone, "(", "")
	cleanPhone = strings.ReplaceAll(cleanPhone, ")", "")

	// Apenas dígitos e opcionalmente um +
	phoneRegex := regexp.MustCompile(`^\+?\d{7,15}$`)

	if !phoneRegex.MatchString(cleanPhone) {
		return fmt.Errorf("o telefone '%s' deve ter entre 7 e 15 dígitos", phone)
	}

	return nil
}

// ValidateEmail valida o formato de um email
func (v *Validator) ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("o email é obrigatório")
	}

	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	if !emailRegex.MatchString(email) {
		return fmt.Errorf("o formato do email '%s' não é válido", email)
	}

	return nil
}

// ParseDate converte a representação dos formulários (AAAA-MM-DD) num
// valor de calendário
func ParseDate(input string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(input))
	if err != nil {
		return time.Time{}, fmt.Errorf("data inválida '%s': %w", input, err)
	}
	return t, nil
}
