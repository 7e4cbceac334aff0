package rabbitmq

const (
	USER_REGISTERED_QUEUE = "notifications.user_registered"
	POST_ACTIVITY_QUEUE   = "post-activity"
)

var queues = []string{
	USER_REGISTERED_QUEUE,
	POST_ACTIVITY_QUEUE,
}
