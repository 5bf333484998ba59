package models

const (
	// DefaultPageSize размер страницы по умолчанию для списков бронирований
	DefaultPageSize = 10

	// CallerHeader заголовок с идентификатором пользователя
	CallerHeader = "X-Sharer-User-Id"

	// DefaultRateLimitRequests количество запросов пользователя в окне
	DefaultRateLimitRequests = 120

	// DefaultRateLimitWindow окно ограничения частоты запросов
	DefaultRateLimitWindow = 60 // 1 минута в секундах

	// EventQueueSize размер очереди ретранслятора событий
	EventQueueSize = 1000
)
