package models

import "time"

// Address is a stored shipping or billing address referenced from a
// PaymentIntent by id.
type Address struct {
	ID               string    `gorm:"column:id;primary_key;type:varchar(64)" json:"id"`
	Line1            *string   `gorm:"column:line1;type:varchar(255)" json:"line1,omitempty"`
	Line2            *string   `gorm:"column:line2;type:varchar(255)" json:"line2,omitempty"`
	Line3            *string   `gorm:"column:line3;type:varchar(255)" json:"line3,omitempty"`
	City             *string   `gorm:"column:city;type:varchar(128)" json:"city,omitempty"`
	State            *string   `gorm:"column:state;type:varchar(128)" json:"state,omitempty"`
	Zip              *string   `gorm:"column:zip;type:varchar(16)" json:"zip,omitempty"`
	Country          *string   `gorm:"column:country;type:varchar(2)" json:"country,omitempty"`
	FirstName        *string   `gorm:"column:first_name;type:varchar(255)" json:"first_name,omitempty"`
	LastName         *string   `gorm:"column:last_name;type:varchar(255)" json:"last_name,omitempty"`
	PhoneNumber      *string   `gorm:"column:phone_number;type:varchar(32)" json:"phone_number,omitempty"`
	PhoneCountryCode *string   `gorm:"column:phone_country_code;type:varchar(8)" json:"phone_country_code,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (Address) TableName() string {
	return "address"
}
