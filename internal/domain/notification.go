package domain

// Notification é a mensagem curta apresentada ao utilizador após uma
// operação. O núcleo só produz o conteúdo, nunca a renderização.
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Notifier recebe as notificações emitidas pelos fluxos da aplicação
type Notifier interface {
	Success(n Notification)
	Error(n Notification)
}
