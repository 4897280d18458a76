package get_availability

import (
	"time"

	"github.com/m04kA/SMC-ArrivalService/internal/domain"
)

// Request модель запроса доступности окон прибытия
type Request struct {
	BranchID int64     // ID филиала
	Date     time.Time // Дата, на которую запрашивается доступность
}

// Response модель ответа со списком окон прибытия
// Slots пуст, если филиал закрыт в этот день или все окна уже прошли
type Response struct {
	BranchID      int64                     // ID филиала
	Date          time.Time                 // Запрошенная дата
	WindowMinutes int                       // Размер окна в минутах
	Slots         []domain.SlotAvailability // Окна с остатком вместимости
}
