package entity

import "time"

// DateLayout is the wire format of a date of birth, as sent by an HTML date input.
const DateLayout = "2006-01-02"

type User struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	DateOfBirth time.Time `json:"date_of_birth" db:"date_of_birth"`
}

// UserView is a User enriched with fields computed at read time.
type UserView struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	DateOfBirth string `json:"date_of_birth"` // display form, e.g. "28 July 2003"
	Age         int    `json:"age"`
}

// UserInput is the request body of create and update.
type UserInput struct {
	Name        string `json:"name"`
	DateOfBirth string `json:"date_of_birth"`
}

/*
Mysql Schema:
CREATE TABLE IF NOT EXISTS users (
	id INT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(100) NOT NULL,
	date_of_birth DATE NOT NULL
);

ids are kept dense (1..N): deleting a user renumbers every user after it.
*/
