// Package rabbitmq содержит подключение к RabbitMQ, объявление топологии
// обмена уведомлений и публикацию событий жизненного цикла.
package rabbitmq

// NotificationsExchange имя обмена, в который публикуются события сервиса.
const NotificationsExchange = "notifications"

// Ключи маршрутизации событий жизненного цикла.
const (
	RoutingKeyRequestClaimed  = "request.claimed"
	RoutingKeyRequestResolved = "request.resolved"
	RoutingKeyFundRecorded    = "fund.recorded"
)

// QueueConfig связка очереди и ключа маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetNotificationQueues возвращает очереди, которые слушает внешний нотификатор.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "notification.request-claimed", RoutingKey: RoutingKeyRequestClaimed},
		{QueueName: "notification.request-resolved", RoutingKey: RoutingKeyRequestResolved},
		{QueueName: "notification.fund-recorded", RoutingKey: RoutingKeyFundRecorded},
	}
}
