package models

// MediaAsset 媒体资源（图片/视频/音频），属于一个租户
// 只保存外部存储的URL，不负责文件内容
type MediaAsset struct {
	BaseModel
	TenantID        uint   `json:"tenant_id" gorm:"not null;index"`
	Type            string `json:"type" gorm:"not null;size:10"`
	OriginalURL     string `json:"original_url" gorm:"not null;size:500"`
	HLSURL          string `json:"hls_url" gorm:"column:hls_url;size:500"`
	PosterURL       string `json:"poster_url" gorm:"size:500"`
	ThumbnailURL    string `json:"thumbnail_url" gorm:"size:500"`
	FileSize        *int64 `json:"file_size"`
	DurationSeconds *int   `json:"duration_seconds"`
	Width           *int   `json:"width"`
	Height          *int   `json:"height"`

	// 关联
	Tenant Tenant `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 表名
func (m *MediaAsset) TableName() string {
	return "media_assets"
}

// 媒体类型常量
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
	MediaTypeAudio = "audio"
)

// ItemMedia 菜品与媒体的关联
// 每个菜品同一kind只允许一条记录（联合唯一索引），绑定时先删后建保证幂等
type ItemMedia struct {
	BaseModel
	ItemID  uint   `json:"item_id" gorm:"not null;index;uniqueIndex:idx_item_media_kind"`
	MediaID uint   `json:"media_id" gorm:"not null;index"`
	Kind    string `json:"kind" gorm:"not null;size:20;uniqueIndex:idx_item_media_kind"`
	Sort    uint   `json:"sort" gorm:"default:0"`

	// 关联
	Item  Item       `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"-"`
	Media MediaAsset `gorm:"foreignKey:MediaID;constraint:OnDelete:CASCADE" json:"media,omitempty"`
}

// TableName 表名
func (im *ItemMedia) TableName() string {
	return "item_media"
}

// 菜品媒体用途常量
const (
	ItemMediaKindPreview = "preview"
	ItemMediaKindFull    = "full"
	ItemMediaKindSound   = "sound"
)
