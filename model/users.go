package model

import "time"

type User struct {
	UserID           string    `bson:"user_id" json:"user_id"`
	Username         string    `bson:"username" json:"username"`
	Email            string    `bson:"email" json:"email"`
	Password         string    `bson:"password" json:"-"` // Argon2 hash, never returned
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
	TwoFactorSecret  string    `bson:"two_factor_secret,omitempty" json:"-"`
	TwoFactorEnabled bool      `bson:"two_factor_enabled" json:"two_factor_enabled"`
}
