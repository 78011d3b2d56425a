package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	prefix = "music_"
)

// User 账号表（登录凭证）
// 展示信息放在 Profile（与 User 同 ID），不在这里冗余。
type User struct {
	ID          uint64 `gorm:"primarykey"`
	UID         string `gorm:"size:36;uniqueIndex;not null"`  // 对外用户 ID
	Email       string `gorm:"size:100;uniqueIndex;not null"` // 邮箱（登录账号）
	Password    string `gorm:"size:255;not null"`             // bcrypt 哈希
	LastLoginAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`

	Profile  Profile   `gorm:"foreignKey:ID;references:ID"`
	Ratings  []Rating  `gorm:"foreignKey:UserID"`
	Comments []Comment `gorm:"foreignKey:UserID"`
}

func (User) TableName() string {
	return prefix + "user"
}

// BeforeCreate 未显式指定时自动生成 UID
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UID == "" {
		u.UID = uuid.New().String()
	}
	return nil
}

// Profile 用户展示资料表
// ID 与所属 User.ID 相同（共享主键）。评分/评论展示时按 user_id 左连，
// 查不到回退为 匿名用户。
type Profile struct {
	ID          uint64  `gorm:"primarykey"` // = User.ID
	DisplayName *string `gorm:"size:100"`   // 展示名，可为空
	IsAdmin     bool    `gorm:"default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Profile) TableName() string {
	return prefix + "profile"
}

// Song 歌曲表（每日一首）
// Date 是自然键：一天至多一首，YYYY-MM-DD，同时是路由标识 /songs/{date}。
// 不做软删：date 上有唯一索引，软删记录会一直占住该日期。
type Song struct {
	ID           uint64         `gorm:"primarykey"`
	Date         string         `gorm:"size:10;uniqueIndex;not null"` // YYYY-MM-DD
	Title        string         `gorm:"size:200;not null"`
	Artist       string         `gorm:"size:200;not null"`
	Album        string         `gorm:"size:200"`
	CoverURL     string         `gorm:"size:1000"`
	Description  string         `gorm:"type:text"`
	Lyrics       string         `gorm:"type:text"`
	QQMusicURL   string         `gorm:"size:1000"` // QQ 音乐页面链接，可选
	QQMusicID    string         `gorm:"size:100"`  // songmid，可选
	BilibiliBvid string         `gorm:"size:50"`   // B 站视频 BV 号，可选
	Extra        datatypes.JSON `gorm:"column:extra;type:json"` // 预留的媒体扩展信息
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Ratings  []Rating  `gorm:"foreignKey:SongID"`
	Comments []Comment `gorm:"foreignKey:SongID"`
}

func (Song) TableName() string {
	return prefix + "song"
}

// Rating 评分表
// 只增不改：同一用户对同一首歌可以反复评分，每次都是新纪录（保留历史）。
// 删除是物理删除，且必须带 user_id 条件（所有权由 SQL 谓词兜底）。
type Rating struct {
	ID        uint64 `gorm:"primarykey"`
	SongID    uint64 `gorm:"index;not null"`
	UserID    uint64 `gorm:"index;not null"`
	Score     uint8  `gorm:"type:tinyint;not null"` // 1-10
	CreatedAt time.Time
	UpdatedAt time.Time

	Song Song `gorm:"foreignKey:SongID"`
	User User `gorm:"foreignKey:UserID"`
}

func (Rating) TableName() string {
	return prefix + "rating"
}

// Comment 评论表
// 只增不改，删除同样带 user_id 谓词。内容最长 500 字符（按 rune 计）。
type Comment struct {
	ID        uint64 `gorm:"primarykey"`
	SongID    uint64 `gorm:"index;not null"`
	UserID    uint64 `gorm:"index;not null"`
	Content   string `gorm:"size:500;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Song Song `gorm:"foreignKey:SongID"`
	User User `gorm:"foreignKey:UserID"`
}

func (Comment) TableName() string {
	return prefix + "comment"
}
