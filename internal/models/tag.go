package models

// Tag 语言标签，目录固定，由启动时 seed 写入，应用只读
type Tag struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"uniqueIndex;size:32;not null" json:"name"`
	DisplayName string `gorm:"size:64;not null" json:"display_name"`
}

// TagCatalog 预设标签
var TagCatalog = []Tag{
	{Name: "chinese", DisplayName: "Chinese"},
	{Name: "japanese", DisplayName: "Japanese"},
}
