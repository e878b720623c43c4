package models

import "time"

type FormStatus string

const (
	FormDraft FormStatus = "draft"
	FormFinal FormStatus = "final"
)

type FormSubmission struct {
	ID        int64      `db:"id" json:"id"`
	UserID    int64      `db:"user_id" json:"user_id"`
	FormType  string     `db:"form_type" json:"form_type"`
	FormData  string     `db:"form_data" json:"form_data"`
	Status    FormStatus `db:"status" json:"status"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	Notes     *string    `db:"notes" json:"notes"`
}

// FormListing is a submission joined with the submitter's identity.
type FormListing struct {
	FormSubmission
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Email     string `db:"email" json:"email"`
	Role      Role   `db:"role" json:"role"`
}
