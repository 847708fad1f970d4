package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User 结构体表示用户模型
type User struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Username       string               `bson:"username" json:"username"`
	Email          string               `bson:"email" json:"email"`
	Password       string               `bson:"password" json:"-"` // 密码哈希不应在JSON中暴露
	FullName       string               `bson:"fullName,omitempty" json:"fullName,omitempty"`
	ProfilePicture string               `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`
	Followers      []primitive.ObjectID `bson:"followers" json:"followers"`
	Following      []primitive.ObjectID `bson:"following" json:"following"`
	IsDeleted      bool                 `bson:"isDeleted" json:"isDeleted"`
	CreatedAt      time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// PublicUser 是注册和登录响应中返回的用户摘要
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// Public 返回用户摘要
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID.Hex(),
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
	}
}

// ProfileUpdate 描述资料更新中提供的字段，nil 表示不修改
type ProfileUpdate struct {
	FullName       *string
	ProfilePicture *string
	Password       *string
}

// Empty 判断是否没有任何需要更新的字段
func (u ProfileUpdate) Empty() bool {
	return u.FullName == nil && u.ProfilePicture == nil && u.Password == nil
}
