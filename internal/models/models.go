package models

import "time"

type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type Solution struct {
	ID           string    `json:"id" db:"id"`
	ImageURL     string    `json:"image_url" db:"image_url"`
	Location     string    `json:"location" db:"location"`
	Power        float64   `json:"power" db:"power"`
	AnnualSaving string    `json:"annual_saving" db:"annual_saving"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type Contact struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Number    string    `json:"number" db:"number"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
