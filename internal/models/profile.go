package models

// Profile представляет набор временных интервалов пар, общий для всех расписаний профиля
type Profile struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"uniqueIndex;not null" json:"name"`
	MaxPairs int    `gorm:"not null" json:"max_pairs"` // Количество пар в день
}

func (Profile) TableName() string { return "profiles" }

// ProfileTime представляет интервал одной пары профиля. Время хранится в формате "HH:MM".
type ProfileTime struct {
	ProfileID  uint   `gorm:"primaryKey;autoIncrement:false" json:"profile_id"`
	PairNumber int    `gorm:"primaryKey;autoIncrement:false" json:"pair_number"`
	StartTime  string `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime    string `gorm:"type:varchar(5);not null" json:"end_time"`
}

func (ProfileTime) TableName() string { return "profile_times" }
