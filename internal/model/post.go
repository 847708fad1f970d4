package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Post struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	CreatorID primitive.ObjectID   `bson:"creatorId" json:"creatorId"`
	ImageURL  string               `bson:"imageUrl" json:"imageUrl"`
	Caption   string               `bson:"caption,omitempty" json:"caption,omitempty"`
	Likes     []primitive.ObjectID `bson:"likes" json:"likes"`
	Comments  []Comment            `bson:"comments" json:"comments"`
	IsDeleted bool                 `bson:"isDeleted" json:"isDeleted"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`
}

type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	CreatorID primitive.ObjectID `bson:"creatorId" json:"creatorId"`
	Text      string             `bson:"text" json:"text"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Creator 是帖子中展开的作者公开信息
type Creator struct {
	ID             primitive.ObjectID `bson:"_id" json:"_id"`
	Username       string             `bson:"username" json:"username"`
	ProfilePicture string             `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`
}

// PostDetail 是展开作者后的帖子，JSON 中 creatorId 字段为作者对象
type PostDetail struct {
	Post    `bson:",inline"`
	Creator *Creator `bson:"creator,omitempty" json:"creatorId"`
}
