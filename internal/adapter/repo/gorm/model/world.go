package model

import "time"

const TableNameWorld = "worlds"

// World mapped from table <worlds>
type World struct {
	ID               string    `gorm:"column:id;primaryKey" json:"id"`
	Width            int32     `gorm:"column:width;not null" json:"width"`
	Height           int32     `gorm:"column:height;not null" json:"height"`
	WrappingX        bool      `gorm:"column:wrapping_x;not null" json:"wrapping_x"`
	WrappingY        bool      `gorm:"column:wrapping_y;not null" json:"wrapping_y"`
	WaterPercentage  float64   `gorm:"column:water_percentage;not null" json:"water_percentage"`
	Seed             int64     `gorm:"column:seed;not null" json:"seed"`
	LandDistribution string    `gorm:"column:land_distribution;not null" json:"land_distribution"`
	Strategy         string    `gorm:"column:strategy;not null" json:"strategy"`
	ChunkSize        int32     `gorm:"column:chunk_size;not null" json:"chunk_size"`
	Turn             int64     `gorm:"column:turn;not null" json:"turn"`
	Version          int64     `gorm:"column:version;not null" json:"version"`
	CreatedAt        time.Time `gorm:"column:created_at;not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at;not null;default:now()" json:"updated_at"`
}

// TableName World's table name
func (*World) TableName() string {
	return TableNameWorld
}
