package notifications

import (
	"context"

	"github.com/m04kA/SMC-BeautyService/internal/integrations/mailer"
	"github.com/m04kA/SMC-BeautyService/pkg/linktoken"
)

// Mailer интерфейс отправки писем
type Mailer interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// LinkSigner интерфейс выпуска токенов для ссылок подтверждения/отклонения
type LinkSigner interface {
	Issue(orderID int64, action linktoken.Action) (string, error)
}

// Metrics интерфейс учёта отправленных писем
type Metrics interface {
	ObserveEmail(kind, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
