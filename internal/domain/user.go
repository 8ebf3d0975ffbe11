package domain

type User struct {
	ID       int64  `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Email    string `db:"email" json:"email"`
	Password string `db:"password" json:"-"` // bcrypt hash
}

type NewUser struct {
	Name     string
	Email    string
	Password string // plaintext or an existing bcrypt hash
}
