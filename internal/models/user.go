package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents the application user account. A user becomes a restaurant
// owner by creating a restaurant.
type User struct {
	ID                          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Fullname                    string             `bson:"fullname" json:"fullname"`
	Email                       string             `bson:"email" json:"email"`
	PasswordHash                string             `bson:"passwordHash" json:"-"`
	Contact                     string             `bson:"contact" json:"contact"`
	Address                     string             `bson:"address" json:"address"`
	City                        string             `bson:"city" json:"city"`
	Country                     string             `bson:"country" json:"country"`
	ProfilePicture              string             `bson:"profilePicture" json:"profilePicture"`
	Admin                       bool               `bson:"admin" json:"admin"`
	LastLogin                   *time.Time         `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	IsVerified                  bool               `bson:"isVerified" json:"isVerified"`
	VerificationToken           string             `bson:"verificationToken,omitempty" json:"-"`
	VerificationTokenExpiresAt  *time.Time         `bson:"verificationTokenExpiresAt,omitempty" json:"-"`
	ResetPasswordTokenHash      string             `bson:"resetPasswordTokenHash,omitempty" json:"-"`
	ResetPasswordTokenExpiresAt *time.Time         `bson:"resetPasswordTokenExpiresAt,omitempty" json:"-"`
	CreatedAt                   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt                   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
