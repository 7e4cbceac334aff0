package redisrepo

import "fmt"

const (
	USER_EMAIL_KEY = "user-email:%s" // <email>
)

func UserEmailKey(email string) string {
	return fmt.Sprintf(USER_EMAIL_KEY, email)
}
