package domain

import "time"

type Address struct {
	ID             string    `bson:"_id,omitempty" json:"id"`
	SessionID      string    `bson:"session_id" json:"-"`
	AddressName    string    `bson:"address_name" json:"addressName"`
	Address        string    `bson:"address" json:"address"`
	State          string    `bson:"state" json:"state"`
	LGA            string    `bson:"lga" json:"lga"`
	City           string    `bson:"city" json:"city"`
	Town           string    `bson:"town" json:"town,omitempty"`
	Landmark       string    `bson:"landmark" json:"landmark,omitempty"`
	Zip            string    `bson:"zip" json:"zip,omitempty"`
	AdditionalInfo string    `bson:"additional_info" json:"additionalInfo,omitempty"`
	IsDefault      bool      `bson:"is_default" json:"isDefault"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updatedAt"`
}
