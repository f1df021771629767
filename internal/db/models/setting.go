package models

// Setting is a named shop setting, e.g. the shop name or the default currency.
type Setting struct {
	ID    uint64 `gorm:"primaryKey" json:"_id"`
	Name  string `gorm:"size:191;uniqueIndex" json:"name"`
	Value string `gorm:"type:text" json:"value"`
}
