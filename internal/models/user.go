package models

type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleUser       Role = "user"
)

// UserQuota is the number of user-role accounts a single admin may create.
const UserQuota = 4

const StatusActive = "active"

type User struct {
	ID        int64   `db:"id" json:"id"`
	FirstName string  `db:"first_name" json:"first_name"`
	LastName  string  `db:"last_name" json:"last_name"`
	Email     string  `db:"email" json:"email"`
	Password  string  `db:"password" json:"-"`
	Role      Role    `db:"role" json:"role"`
	CreatedBy *int64  `db:"created_by" json:"created_by"`
	Status    *string `db:"status" json:"status"`
}

// UserWithForms is a user row with its form submissions embedded, newest first.
type UserWithForms struct {
	User
	Forms []FormSubmission `json:"forms"`
}

// AdminView is one entry of the superadmin dashboard.
type AdminView struct {
	Admin User   `json:"admin"`
	Users []User `json:"users"`
}

// AdminFullView is AdminView with every user's forms attached.
type AdminFullView struct {
	Admin User            `json:"admin"`
	Users []UserWithForms `json:"users"`
}
