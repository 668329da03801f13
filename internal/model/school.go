// internal/model/school.go
package model

type School struct {
	ID    int     `db:"id" json:"id"`
	Name  string  `db:"name" json:"name"`
	City  *string `db:"city" json:"city,omitempty"`
	State *string `db:"state" json:"state,omitempty"`
}
