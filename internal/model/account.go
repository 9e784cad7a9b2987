package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role separates the two account namespaces. Users and admins are stored in
// different collections and the same email may exist in both.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Account is a stored user or admin
type Account struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email" bson:"email"`
	PasswordHash string             `json:"-" bson:"passwordHash"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Profile is the public part of an account; it never includes the hash.
type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (a *Account) Profile() Profile {
	return Profile{ID: a.ID.Hex(), Name: a.Name, Email: a.Email}
}

// SignupRequest is the body of user and admin signup
type SignupRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// AccountUpdate changes any subset of name, email and password. Empty
// fields are left unchanged.
type AccountUpdate struct {
	Name     string `json:"name" validate:"omitempty,max=100"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=6,max=72"`
}
