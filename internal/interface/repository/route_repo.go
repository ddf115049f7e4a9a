package repository

import (
	"context"
	"fmt"
	"time"

	"flightlist-service/internal/domain/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRouteRepository implements the RouteRepository interface
type GormRouteRepository struct {
	db *gorm.DB
}

// NewGormRouteRepository creates a new GORM route repository
func NewGormRouteRepository(db *gorm.DB) *GormRouteRepository {
	return &GormRouteRepository{
		db: db,
	}
}

// Routes GORM model for database mapping
type Routes struct {
	ID                 uint   `gorm:"primaryKey"`
	Origin             string `gorm:"column:origin;uniqueIndex:idx_route"`
	Destination        string `gorm:"column:destination;uniqueIndex:idx_route"`
	OriginCountry      string `gorm:"column:origin_country"`
	DestinationCountry string `gorm:"column:destination_country"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName overrides the default table name
func (Routes) TableName() string {
	return "m_routes"
}

// List returns all routes in insertion order
func (r *GormRouteRepository) List(ctx context.Context) ([]entity.Route, error) {
	var rows []Routes
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}

	routes := make([]entity.Route, 0, len(rows))
	for _, row := range rows {
		routes = append(routes, entity.Route{
			Origin:             row.Origin,
			Destination:        row.Destination,
			OriginCountry:      row.OriginCountry,
			DestinationCountry: row.DestinationCountry,
		})
	}
	return routes, nil
}

// Seed migrates the table and upserts routes
func (r *GormRouteRepository) Seed(ctx context.Context, routes []entity.Route) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&Routes{}); err != nil {
		return fmt.Errorf("failed to migrate routes table: %w", err)
	}

	rows := make([]Routes, 0, len(routes))
	for _, route := range routes {
		rows = append(rows, Routes{
			Origin:             route.Origin,
			Destination:        route.Destination,
			OriginCountry:      route.OriginCountry,
			DestinationCountry: route.DestinationCountry,
		})
	}
	if len(rows) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "origin"}, {Name: "destination"}},
		DoUpdates: clause.AssignmentColumns([]string{"origin_country", "destination_country", "updated_at"}),
	}).Create(&rows).Error
}
