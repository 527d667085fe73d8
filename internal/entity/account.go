package entity

type Account struct {
	ID           int    `json:"-" db:"id"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
}

// Credentials is the request body of register and login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
Mysql Schema:
CREATE TABLE IF NOT EXISTS accounts (
	id INT AUTO_INCREMENT PRIMARY KEY,
	email VARCHAR(255) NOT NULL UNIQUE,
	password_hash VARCHAR(255) NOT NULL
);
*/
