package models

import "time"

type User struct {
	ID        int64     `json:"id" db:"id" yaml:"id"`
	Name      string    `json:"name" db:"name" yaml:"name"`
	Email     string    `json:"email" db:"email" yaml:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at" yaml:"-"`
}
