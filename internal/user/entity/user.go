package entity

import "time"

type User struct {
	ID        int64
	Name      string
	Email     string
	CreatedBy string // user name of the principal that created the user, empty when anonymous
	CreatedAt time.Time
}
