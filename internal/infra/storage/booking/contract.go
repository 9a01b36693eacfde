package booking

import (
	"github.com/m04kA/SMC-StudioBooking/pkg/dbmetrics"
)

// DBExecutor интерфейс выполнения запросов, поддерживает *dbmetrics.DB и транзакции из контекста
type DBExecutor = dbmetrics.DBExecutor
