package mailer

// Message текстовое письмо
type Message struct {
	To      string
	Subject string
	Body    string
}

// Logger интерфейс логгера
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
