package models

import "time"

// The auth tables below are created for schema parity with the hosted auth provider.
// The application never reads or writes them; admin access is the session cookie.

type User struct {
	ID            string    `json:"id" gorm:"column:id;type:text;primaryKey"`
	Name          string    `json:"name" gorm:"column:name;type:text;not null"`
	Email         string    `json:"email" gorm:"column:email;type:text;not null;unique"`
	EmailVerified bool      `json:"emailVerified" gorm:"column:email_verified;not null;default:false"`
	Image         *string   `json:"image" gorm:"column:image;type:text"`
	CreatedAt     time.Time `json:"createdAt" gorm:"column:created_at;not null"`
	UpdatedAt     time.Time `json:"updatedAt" gorm:"column:updated_at;not null"`
}

func (User) TableName() string {
	return "user"
}

type Session struct {
	ID        string    `json:"id" gorm:"column:id;type:text;primaryKey"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"column:expires_at;not null"`
	Token     string    `json:"token" gorm:"column:token;type:text;not null;unique"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at;not null"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at;not null"`
	IPAddress *string   `json:"ipAddress" gorm:"column:ip_address;type:text"`
	UserAgent *string   `json:"userAgent" gorm:"column:user_agent;type:text"`
	UserID    string    `json:"userId" gorm:"column:user_id;type:text;not null;index"`

	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Session) TableName() string {
	return "session"
}

type Account struct {
	ID                    string     `json:"id" gorm:"column:id;type:text;primaryKey"`
	AccountID             string     `json:"accountId" gorm:"column:account_id;type:text;not null"`
	ProviderID            string     `json:"providerId" gorm:"column:provider_id;type:text;not null"`
	UserID                string     `json:"userId" gorm:"column:user_id;type:text;not null;index"`
	AccessToken           *string    `json:"-" gorm:"column:access_token;type:text"`
	RefreshToken          *string    `json:"-" gorm:"column:refresh_token;type:text"`
	IDToken               *string    `json:"-" gorm:"column:id_token;type:text"`
	AccessTokenExpiresAt  *time.Time `json:"accessTokenExpiresAt" gorm:"column:access_token_expires_at"`
	RefreshTokenExpiresAt *time.Time `json:"refreshTokenExpiresAt" gorm:"column:refresh_token_expires_at"`
	Scope                 *string    `json:"scope" gorm:"column:scope;type:text"`
	Password              *string    `json:"-" gorm:"column:password;type:text"`
	CreatedAt             time.Time  `json:"createdAt" gorm:"column:created_at;not null"`
	UpdatedAt             time.Time  `json:"updatedAt" gorm:"column:updated_at;not null"`

	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Account) TableName() string {
	return "account"
}

type Verification struct {
	ID         string    `json:"id" gorm:"column:id;type:text;primaryKey"`
	Identifier string    `json:"identifier" gorm:"column:identifier;type:text;not null"`
	Value      string    `json:"value" gorm:"column:value;type:text;not null"`
	ExpiresAt  time.Time `json:"expiresAt" gorm:"column:expires_at;not null"`
	CreatedAt  time.Time `json:"createdAt" gorm:"column:created_at;not null"`
	UpdatedAt  time.Time `json:"updatedAt" gorm:"column:updated_at;not null"`
}

func (Verification) TableName() string {
	return "verification"
}
