package models

// Data 表示一筆資料紀錄，名稱在整張表中必須唯一
type Data struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// TableName 固定資料表名稱為 data
func (Data) TableName() string {
	return "data"
}
