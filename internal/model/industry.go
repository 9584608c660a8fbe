package model

type Industry struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null" json:"name"`
}

func (Industry) TableName() string {
	return "industries"
}
